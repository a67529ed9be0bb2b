package driven

import (
	"context"
	"io"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

// Extractor turns PDFs into text via the external extraction service.
// Failures are returned as data: the result's Kind distinguishes
// timeout, unreachable, not-found and server errors, and DisplayText
// renders any outcome as a string. The error return is reserved for
// programming mistakes (nil reader, cancelled context before dispatch).
type Extractor interface {
	// ExtractUpload extracts text from an uploaded file body.
	ExtractUpload(ctx context.Context, filename string, file io.Reader) (domain.ExtractionResult, error)

	// ExtractPath extracts text from a file the collaborator can reach
	// by path.
	ExtractPath(ctx context.Context, path string) (domain.ExtractionResult, error)
}
