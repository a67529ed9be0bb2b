package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.LibraryStore = (*LibraryStore)(nil)

// LibraryStore implements driven.LibraryStore using PostgreSQL. The
// library state is one JSONB row under a fixed key.
type LibraryStore struct {
	db *DB
}

// NewLibraryStore creates a new LibraryStore
func NewLibraryStore(db *DB) *LibraryStore {
	return &LibraryStore{db: db}
}

// Load retrieves the persisted library state
func (s *LibraryStore) Load(ctx context.Context) (*domain.LibraryState, error) {
	query := `SELECT state FROM library_state WHERE id = 1`

	var data []byte
	err := s.db.QueryRowContext(ctx, query).Scan(&data)
	if err == sql.ErrNoRows {
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

// Save replaces the persisted library state
func (s *LibraryStore) Save(ctx context.Context, state *domain.LibraryState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal library state: %w", err)
	}

	query := `
		INSERT INTO library_state (id, state, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state,
			updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("failed to save library state: %w", err)
	}
	return nil
}

// Clear removes the persisted library state
func (s *LibraryStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM library_state WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear library state: %w", err)
	}
	return nil
}
