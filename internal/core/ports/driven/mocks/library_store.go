package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

// MockLibraryStore is an in-memory LibraryStore for testing.
type MockLibraryStore struct {
	mu      sync.Mutex
	state   []byte // JSON round-trip to mimic real persistence
	SaveErr error
	Saves   int
	Clears  int
}

// NewMockLibraryStore creates a new MockLibraryStore.
func NewMockLibraryStore() *MockLibraryStore {
	return &MockLibraryStore{}
}

func (m *MockLibraryStore) Load(ctx context.Context) (*domain.LibraryState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return &domain.LibraryState{}, nil
	}
	var state domain.LibraryState
	if err := json.Unmarshal(m.state, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *MockLibraryStore) Save(ctx context.Context, state *domain.LibraryState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.state = data
	return nil
}

func (m *MockLibraryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clears++
	m.state = nil
	return nil
}

// Seed installs a persisted state directly, bypassing Save accounting.
func (m *MockLibraryStore) Seed(state *domain.LibraryState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, _ := json.Marshal(state)
	m.state = data
}

// MockResultCacheStore is an in-memory ResultCacheStore for testing.
type MockResultCacheStore struct {
	mu        sync.Mutex
	payloads  map[string][]byte
	prints    map[string]string
	ClearAlls int
}

// NewMockResultCacheStore creates a new MockResultCacheStore.
func NewMockResultCacheStore() *MockResultCacheStore {
	return &MockResultCacheStore{
		payloads: make(map[string][]byte),
		prints:   make(map[string]string),
	}
}

func (m *MockResultCacheStore) Load(ctx context.Context, slot string) ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.payloads[slot]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return payload, m.prints[slot], nil
}

func (m *MockResultCacheStore) Save(ctx context.Context, slot string, payload []byte, fingerprint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[slot] = append([]byte(nil), payload...)
	m.prints[slot] = fingerprint
	return nil
}

func (m *MockResultCacheStore) Clear(ctx context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payloads, slot)
	delete(m.prints, slot)
	return nil
}

func (m *MockResultCacheStore) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearAlls++
	m.payloads = make(map[string][]byte)
	m.prints = make(map[string]string)
	return nil
}

// Has reports whether a slot currently holds a payload.
func (m *MockResultCacheStore) Has(slot string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.payloads[slot]
	return ok
}
