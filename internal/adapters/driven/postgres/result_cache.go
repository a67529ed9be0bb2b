package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResultCacheStore = (*ResultCacheStore)(nil)

// ResultCacheStore implements driven.ResultCacheStore using PostgreSQL,
// one row per result slot.
type ResultCacheStore struct {
	db *DB
}

// NewResultCacheStore creates a new ResultCacheStore
func NewResultCacheStore(db *DB) *ResultCacheStore {
	return &ResultCacheStore{db: db}
}

// Load retrieves the payload and fingerprint for a slot
func (s *ResultCacheStore) Load(ctx context.Context, slot string) ([]byte, string, error) {
	query := `SELECT payload, fingerprint FROM result_cache WHERE slot = $1`

	var payload []byte
	var fingerprint string
	err := s.db.QueryRowContext(ctx, query, slot).Scan(&payload, &fingerprint)
	if err == sql.ErrNoRows {
		return nil, "", domain.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load cache slot %s: %w", slot, err)
	}
	return payload, fingerprint, nil
}

// Save overwrites the slot with a new payload and fingerprint
func (s *ResultCacheStore) Save(ctx context.Context, slot string, payload []byte, fingerprint string) error {
	query := `
		INSERT INTO result_cache (slot, payload, fingerprint, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (slot) DO UPDATE SET
			payload = EXCLUDED.payload,
			fingerprint = EXCLUDED.fingerprint,
			updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, query, slot, payload, fingerprint); err != nil {
		return fmt.Errorf("failed to save cache slot %s: %w", slot, err)
	}
	return nil
}

// Clear removes one slot
func (s *ResultCacheStore) Clear(ctx context.Context, slot string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM result_cache WHERE slot = $1`, slot); err != nil {
		return fmt.Errorf("failed to clear cache slot %s: %w", slot, err)
	}
	return nil
}

// ClearAll removes every slot
func (s *ResultCacheStore) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM result_cache`); err != nil {
		return fmt.Errorf("failed to clear result cache: %w", err)
	}
	return nil
}
