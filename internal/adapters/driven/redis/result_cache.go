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
var _ driven.ResultCacheStore = (*ResultCacheStore)(nil)

const resultCachePrefix = "docmind:cache:"

// cacheEntry pairs a derived-result payload with the document-set
// fingerprint it was generated from.
type cacheEntry struct {
	Payload     json.RawMessage `json:"payload"`
	Fingerprint string          `json:"fingerprint"`
}

// ResultCacheStore implements driven.ResultCacheStore using Redis, one
// key per result slot.
type ResultCacheStore struct {
	client *redis.Client
	slots  []string
}

// NewResultCacheStore creates a new Redis-backed ResultCacheStore.
// slots enumerates every slot ClearAll must cover.
func NewResultCacheStore(client *redis.Client, slots []string) *ResultCacheStore {
	return &ResultCacheStore{client: client, slots: slots}
}

// Load retrieves the payload and fingerprint for a slot.
func (s *ResultCacheStore) Load(ctx context.Context, slot string) ([]byte, string, error) {
	data, err := s.client.Get(ctx, resultCachePrefix+slot).Bytes()
	if err == redis.Nil {
		return nil, "", domain.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load cache slot %s: %w", slot, err)
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal cache slot %s: %w", slot, err)
	}
	return entry.Payload, entry.Fingerprint, nil
}

// Save overwrites the slot with a new payload and fingerprint.
func (s *ResultCacheStore) Save(ctx context.Context, slot string, payload []byte, fingerprint string) error {
	entry := cacheEntry{Payload: payload, Fingerprint: fingerprint}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache slot %s: %w", slot, err)
	}
	if err := s.client.Set(ctx, resultCachePrefix+slot, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cache slot %s: %w", slot, err)
	}
	return nil
}

// Clear removes one slot.
func (s *ResultCacheStore) Clear(ctx context.Context, slot string) error {
	if err := s.client.Del(ctx, resultCachePrefix+slot).Err(); err != nil {
		return fmt.Errorf("failed to clear cache slot %s: %w", slot, err)
	}
	return nil
}

// ClearAll removes every known slot.
func (s *ResultCacheStore) ClearAll(ctx context.Context) error {
	if len(s.slots) == 0 {
		return nil
	}
	keys := make([]string, len(s.slots))
	for i, slot := range s.slots {
		keys[i] = resultCachePrefix + slot
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear cache slots: %w", err)
	}
	return nil
}
