package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

// MockExtractor is a configurable Extractor for testing.
type MockExtractor struct {
	mu sync.Mutex

	// UploadResult is returned by ExtractUpload when UploadFn is nil.
	UploadResult domain.ExtractionResult
	UploadErr    error
	UploadFn     func(ctx context.Context, filename string, file io.Reader) (domain.ExtractionResult, error)

	// PathResult is returned by ExtractPath when PathFn is nil.
	PathResult domain.ExtractionResult
	PathErr    error
	PathFn     func(ctx context.Context, path string) (domain.ExtractionResult, error)

	UploadCalls int
	PathCalls   int
	LastPath    string

	// Block, when non-nil, is received from before ExtractPath returns.
	// Lets tests hold an extraction in flight.
	Block chan struct{}
	// Started, when non-nil, is signalled once ExtractPath begins.
	Started chan struct{}
}

// NewMockExtractor creates a new MockExtractor.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

func (m *MockExtractor) ExtractUpload(ctx context.Context, filename string, file io.Reader) (domain.ExtractionResult, error) {
	m.mu.Lock()
	m.UploadCalls++
	fn := m.UploadFn
	res, err := m.UploadResult, m.UploadErr
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, filename, file)
	}
	return res, err
}

func (m *MockExtractor) ExtractPath(ctx context.Context, path string) (domain.ExtractionResult, error) {
	m.mu.Lock()
	m.PathCalls++
	m.LastPath = path
	fn := m.PathFn
	res, err := m.PathResult, m.PathErr
	started, block := m.Started, m.Block
	m.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if fn != nil {
		return fn(ctx, path)
	}
	return res, err
}

// Calls returns the total number of path extractions performed.
func (m *MockExtractor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PathCalls
}
