package driven

import (
	"context"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

// DocumentIndex is the vector-database collaborator used for semantic
// search. Add and Remove are best-effort from the library's point of
// view: the caller logs and swallows failures, local state is
// authoritative.
type DocumentIndex interface {
	// Add indexes a document's text under the given file ID.
	Add(ctx context.Context, filename, content, fileID string, metadata map[string]string) error

	// RemoveByName evicts all chunks for a document identified by name
	// and stored path. Returns the number of chunks removed.
	RemoveByName(ctx context.Context, documentName, documentPath string) (int, error)

	// RemoveByID evicts a document by its file ID.
	RemoveByID(ctx context.Context, fileID string) error

	// Search finds content semantically similar to the query text.
	Search(ctx context.Context, queryText string, topK int, minSimilarity float64) ([]domain.SearchMatch, error)

	// Stats reports the index's current document count and status.
	Stats(ctx context.Context) (*domain.IndexStats, error)

	// Clear removes every document from the index.
	Clear(ctx context.Context) error

	// HealthCheck verifies the collaborator is reachable, used to
	// pre-flight destructive operations.
	HealthCheck(ctx context.Context) error
}

// SpeechSynthesizer is the text-to-speech collaborator. Synthesis takes
// minutes, so callers pass a generously-budgeted context.
type SpeechSynthesizer interface {
	// SynthesizePodcast turns the selected text into a two-voice audio
	// episode and returns where the audio can be fetched.
	SynthesizePodcast(ctx context.Context, selectedText string) (*domain.PodcastAudio, error)
}
