package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driven"
)

// Persisted cache slots, one per derived result type.
const (
	SlotInsights    = "ai_insights"
	SlotConnections = "similarity_connections"
	SlotPodcasts    = "podcast_recommendations"
)

// fingerprintSource is the view of the library a cache needs: the live
// document-set fingerprint and the total record count.
type fingerprintSource interface {
	Fingerprint() string
	DocumentCount() int
}

// DerivedCache is a fingerprinted cache of one AI-derived result. A
// cached value is valid only while the fingerprint it was generated
// under equals the live fingerprint of the document lists; any mismatch
// discards it, in memory and in storage. One instance exists per result
// type; there is one slot, not a map keyed by fingerprint.
type DerivedCache[T any] struct {
	slot     string
	minDocs  int
	store    driven.ResultCacheStore
	library  fingerprintSource
	generate func(ctx context.Context) (*T, error)
	logger   *slog.Logger

	mu          sync.Mutex
	cached      *T
	fingerprint string
}

// NewDerivedCache creates a cache for one result type. minDocs is the
// smallest library size for which generation is allowed.
func NewDerivedCache[T any](
	slot string,
	minDocs int,
	store driven.ResultCacheStore,
	library fingerprintSource,
	generate func(ctx context.Context) (*T, error),
	logger *slog.Logger,
) *DerivedCache[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &DerivedCache[T]{
		slot:     slot,
		minDocs:  minDocs,
		store:    store,
		library:  library,
		generate: generate,
		logger:   logger,
	}
}

// Current returns the cached result if it is still valid for the live
// document set. A persisted result with a stale fingerprint is cleared
// from storage, never returned.
func (c *DerivedCache[T]) Current(ctx context.Context) (*T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.library.Fingerprint()
	if c.library.DocumentCount() == 0 {
		c.clearLocked(ctx)
		return nil, false
	}

	if c.cached != nil {
		if c.fingerprint == live {
			return c.cached, true
		}
		c.clearLocked(ctx)
		return nil, false
	}

	payload, stored, err := c.store.Load(ctx, c.slot)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.logger.Warn("result cache load failed", "slot", c.slot, "error", err)
		}
		return nil, false
	}
	if stored != live {
		c.clearLocked(ctx)
		return nil, false
	}

	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		c.logger.Warn("result cache payload corrupt", "slot", c.slot, "error", err)
		c.clearLocked(ctx)
		return nil, false
	}
	c.cached = &value
	c.fingerprint = stored
	return c.cached, true
}

// Generate runs the generator and caches the result under the
// fingerprint observed when the call started, overwriting any previous
// result. Refresh is the same call: regeneration is always allowed.
func (c *DerivedCache[T]) Generate(ctx context.Context) (*T, error) {
	c.mu.Lock()
	if c.library.DocumentCount() < c.minDocs {
		c.mu.Unlock()
		return nil, domain.ErrNotEnoughDocuments
	}
	fingerprint := c.library.Fingerprint()
	c.mu.Unlock()

	value, err := c.generate(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Save(ctx, c.slot, payload, fingerprint); err != nil {
		c.logger.Error("result cache save failed", "slot", c.slot, "error", err)
	}
	c.cached = value
	c.fingerprint = fingerprint
	return value, nil
}

// Revalidate clears the cache when the document set has changed or
// become empty. The library calls this after every list mutation.
func (c *DerivedCache[T]) Revalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.library.Fingerprint()
	if c.library.DocumentCount() == 0 {
		c.clearLocked(ctx)
		return
	}

	if c.cached != nil {
		if c.fingerprint != live {
			c.clearLocked(ctx)
		}
		return
	}

	// Nothing in memory; drop a stale persisted entry if one exists.
	_, stored, err := c.store.Load(ctx, c.slot)
	if err == nil && stored != live {
		c.clearLocked(ctx)
	}
}

func (c *DerivedCache[T]) clearLocked(ctx context.Context) {
	c.cached = nil
	c.fingerprint = ""
	if err := c.store.Clear(ctx, c.slot); err != nil {
		c.logger.Warn("result cache clear failed", "slot", c.slot, "error", err)
	}
}
