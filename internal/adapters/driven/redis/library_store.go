package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.LibraryStore = (*LibraryStore)(nil)

const libraryStateKey = "docmind:library:state"

// LibraryStore implements driven.LibraryStore using Redis. The whole
// library state is one JSON value, written through on every mutation.
type LibraryStore struct {
	client *redis.Client
}

// NewLibraryStore creates a new Redis-backed LibraryStore.
func NewLibraryStore(client *redis.Client) *LibraryStore {
	return &LibraryStore{client: client}
}

// Load retrieves the persisted library state. An empty store yields an
// empty state, not an error.
func (s *LibraryStore) Load(ctx context.Context) (*domain.LibraryState, error) {
	data, err := s.client.Get(ctx, libraryStateKey).Bytes()
	if err == redis.Nil {
		return &domain.LibraryState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load library state: %w", err)
	}

	var state domain.LibraryState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal library state: %w", err)
	}
	return &state, nil
}

// Save replaces the persisted library state.
func (s *LibraryStore) Save(ctx context.Context, state *domain.LibraryState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal library state: %w", err)
	}
	if err := s.client.Set(ctx, libraryStateKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save library state: %w", err)
	}
	return nil
}

// Clear removes the persisted library state.
func (s *LibraryStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, libraryStateKey).Err(); err != nil {
		return fmt.Errorf("failed to clear library state: %w", err)
	}
	return nil
}
