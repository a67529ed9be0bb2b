package domain

import "strings"

// ExtractionKind classifies the outcome of an extraction attempt.
type ExtractionKind string

const (
	ExtractionOK          ExtractionKind = "ok"
	ExtractionTimeout     ExtractionKind = "timeout"
	ExtractionUnreachable ExtractionKind = "unreachable"
	ExtractionNotFound    ExtractionKind = "not_found"
	ExtractionServerError ExtractionKind = "server_error"
)

// ExtractionResult is the tagged outcome of turning a saved path into
// text. Failures carry a kind for programmatic dispatch; DisplayText
// flattens either outcome to a renderable string, so every consumer of
// record content always has something to show.
type ExtractionResult struct {
	Kind     ExtractionKind
	Filename string
	Text     string
	Pages    int
	Detail   string // failure description from the collaborator, if any
}

// OK reports whether extraction succeeded.
func (r ExtractionResult) OK() bool {
	return r.Kind == ExtractionOK
}

// DisplayText returns the extracted text on success, or a human-readable
// diagnostic sentinel on failure. The sentinel vocabulary is fixed: UI
// surfaces pattern-match on these substrings to offer retry affordances.
func (r ExtractionResult) DisplayText() string {
	switch r.Kind {
	case ExtractionOK:
		return r.Text
	case ExtractionTimeout:
		return "Cannot extract content: request timeout after 30 seconds. The extraction service may be overloaded."
	case ExtractionUnreachable:
		return "Cannot extract content: extraction service unreachable. Error: " + r.Detail
	case ExtractionNotFound:
		return "Cannot extract content: File not found at stored path."
	default:
		return "Cannot extract content. Error: " + r.Detail
	}
}

// Fixed sentinel strings stored directly in record content.
const (
	ContentMissingSentinel = "Content Missing: this uploaded file has no stored text. Remove it and upload again."
	FileRemovedSentinel    = "File Removed: this document used an outdated storage format and has been removed from the library."
)

// sentinelMarkers is the recognition vocabulary for failure text stored
// in record content.
var sentinelMarkers = []string{
	"cannot extract content",
	"error:",
	"timeout",
	"file not found",
	"content missing",
	"file removed",
}

// IsSentinelContent reports whether content is a failure sentinel rather
// than extracted text. Matching is case-insensitive substring search
// against the fixed vocabulary.
func IsSentinelContent(content string) bool {
	lower := strings.ToLower(content)
	for _, marker := range sentinelMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
