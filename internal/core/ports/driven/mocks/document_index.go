package mocks

import (
	"context"
	"sync"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

// MockDocumentIndex is an in-memory DocumentIndex for testing.
type MockDocumentIndex struct {
	mu sync.Mutex

	docs map[string]indexEntry

	AddErr    error
	RemoveErr error
	SearchErr error
	ClearErr  error
	HealthErr error

	Matches []domain.SearchMatch

	AddCalls      int
	RemoveCalls   int
	SearchCalls   int
	ClearCalls    int
	LastRemoved   string
	LastRemovedID string
}

type indexEntry struct {
	name string
	path string
}

// NewMockDocumentIndex creates a new MockDocumentIndex.
func NewMockDocumentIndex() *MockDocumentIndex {
	return &MockDocumentIndex{docs: make(map[string]indexEntry)}
}

func (m *MockDocumentIndex) Add(ctx context.Context, filename, content, fileID string, metadata map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCalls++
	if m.AddErr != nil {
		return m.AddErr
	}
	m.docs[fileID] = indexEntry{name: filename, path: metadata["saved_path"]}
	return nil
}

func (m *MockDocumentIndex) RemoveByName(ctx context.Context, documentName, documentPath string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls++
	m.LastRemoved = documentName
	if m.RemoveErr != nil {
		return 0, m.RemoveErr
	}
	removed := 0
	for id, entry := range m.docs {
		if entry.name == documentName || (documentPath != "" && entry.path == documentPath) {
			delete(m.docs, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MockDocumentIndex) RemoveByID(ctx context.Context, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls++
	m.LastRemovedID = fileID
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.docs, fileID)
	return nil
}

func (m *MockDocumentIndex) Search(ctx context.Context, queryText string, topK int, minSimilarity float64) ([]domain.SearchMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCalls++
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Matches, nil
}

func (m *MockDocumentIndex) Stats(ctx context.Context) (*domain.IndexStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &domain.IndexStats{TotalDocuments: len(m.docs), Status: "healthy"}, nil
}

func (m *MockDocumentIndex) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.docs = make(map[string]indexEntry)
	return nil
}

func (m *MockDocumentIndex) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.HealthErr
}

// Size returns the number of indexed documents.
func (m *MockDocumentIndex) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

// MockSpeechSynthesizer is a configurable SpeechSynthesizer for testing.
type MockSpeechSynthesizer struct {
	mu    sync.Mutex
	Audio *domain.PodcastAudio
	Err   error
	Calls int
}

// NewMockSpeechSynthesizer creates a new MockSpeechSynthesizer.
func NewMockSpeechSynthesizer() *MockSpeechSynthesizer {
	return &MockSpeechSynthesizer{}
}

func (m *MockSpeechSynthesizer) SynthesizePodcast(ctx context.Context, selectedText string) (*domain.PodcastAudio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Audio, m.Err
}
