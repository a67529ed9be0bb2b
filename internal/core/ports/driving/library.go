package driving

import (
	"context"
	"io"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

// UploadInput is one file handed to the upload pipeline.
type UploadInput struct {
	Filename string
	Size     int64
	MimeType string
	Body     io.Reader
}

// LibraryService is the single source of truth for what documents
// exist, which is selected and whether setup has completed. State is
// durable across restarts via the injected LibraryStore.
type LibraryService interface {
	// Load restores persisted state, filtering out records from
	// incompatible older storage formats. Runs once at startup.
	Load(ctx context.Context) error

	// State returns a snapshot of the full library state.
	State() domain.LibraryState

	// Fingerprint returns the cache key of the live document set.
	Fingerprint() string

	// DocumentCount returns the total number of records.
	DocumentCount() int

	// IsLoadingContent reports whether an extraction is in flight.
	IsLoadingContent() bool

	// Upload processes a batch of uploaded files sequentially: extract,
	// create records, index best-effort, append to the current list.
	// It returns the created records, failed extractions included.
	Upload(ctx context.Context, files []UploadInput) ([]domain.DocumentRecord, error)

	// AddCurrentFile appends a record to the current-session list.
	AddCurrentFile(ctx context.Context, record domain.DocumentRecord)

	// AddPreviousFiles appends records to the prior-library list.
	AddPreviousFiles(ctx context.Context, records []domain.DocumentRecord)

	// SelectFile makes the record the current selection, extracting its
	// content first if it is missing and the record is extractable. A
	// second call while an extraction is in flight is a no-op.
	SelectFile(ctx context.Context, record domain.DocumentRecord) error

	// ForceRefreshFile discards the record's content and retries
	// extraction, or removes the record entirely if its stored path
	// uses the unsupported legacy format.
	ForceRefreshFile(ctx context.Context, record domain.DocumentRecord) error

	// RemoveCurrentFile removes a record from the current list. The
	// remote index is notified best-effort; local removal always wins.
	RemoveCurrentFile(ctx context.Context, id string) error

	// RemovePreviousFile removes a record from the previous list.
	RemovePreviousFile(ctx context.Context, id string) error

	// CompleteInitialSetup seeds the previous list and flips the
	// one-way setup flag.
	CompleteInitialSetup(ctx context.Context, records []domain.DocumentRecord)

	// ResetAll clears both lists, the selection, both flags, and every
	// persisted key including all derived-result caches.
	ResetAll(ctx context.Context) error

	// FullReset pre-flights the index collaborator's health, clears the
	// remote index, then resets local state. If the remote clear fails
	// the local state is left untouched and ErrIndexClearFailed is
	// returned so the caller can offer a local-only reset.
	FullReset(ctx context.Context) error
}
