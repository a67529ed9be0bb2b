package driven

import (
	"context"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

// LibraryStore persists the document library across restarts. The
// library service holds state in memory and writes through this port
// after every mutation; Load runs once at startup.
type LibraryStore interface {
	// Load retrieves the persisted library state. A store with no
	// persisted state returns an empty state, not an error.
	Load(ctx context.Context) (*domain.LibraryState, error)

	// Save persists the full library state, replacing what was there.
	Save(ctx context.Context, state *domain.LibraryState) error

	// Clear removes all persisted library state.
	Clear(ctx context.Context) error
}

// ResultCacheStore persists derived result sets, one slot per result
// type, each paired with the document-set fingerprint it was computed
// from. Payloads are opaque JSON; the caches own (de)serialization.
type ResultCacheStore interface {
	// Load retrieves the payload and fingerprint for a slot. An empty
	// slot returns domain.ErrNotFound.
	Load(ctx context.Context, slot string) (payload []byte, fingerprint string, err error)

	// Save stores the payload and fingerprint for a slot, overwriting
	// any previous entry.
	Save(ctx context.Context, slot string, payload []byte, fingerprint string) error

	// Clear removes a single slot.
	Clear(ctx context.Context, slot string) error

	// ClearAll removes every slot.
	ClearAll(ctx context.Context) error
}
