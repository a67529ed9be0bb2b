package domain

import (
	"sort"
	"strings"
	"time"
)

// Path prefixes recorded at upload time. They encode the extraction
// outcome and gate whether a record may ever be re-extracted.
const (
	UploadedPathPrefix = "uploaded/"
	FailedPathPrefix   = "failed/"
)

// DocumentRecord is a single document known to the library. The ID is
// assigned at upload and never changes; Content, Pages and LastRead are
// the only fields mutated after creation, always together.
type DocumentRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	FolderName string    `json:"folder_name,omitempty"`
	SavedPath  string    `json:"saved_path"`
	Timestamp  time.Time `json:"timestamp"`
	Content    string    `json:"content,omitempty"`
	Pages      int       `json:"pages,omitempty"`
	LastRead   string    `json:"last_read,omitempty"`
}

// IsUploaded reports whether the record was stored at upload time,
// meaning its content is expected to already be present.
func (r *DocumentRecord) IsUploaded() bool {
	return strings.HasPrefix(r.SavedPath, UploadedPathPrefix) ||
		strings.HasPrefix(r.SavedPath, FailedPathPrefix)
}

// HasLegacyPath reports whether the record carries a stored path from a
// previous storage format that can no longer be resolved: an absolute
// filesystem path rather than an uploaded/ or failed/ tag.
func (r *DocumentRecord) HasLegacyPath() bool {
	if r.IsUploaded() {
		return false
	}
	return strings.HasPrefix(r.SavedPath, "/") || strings.Contains(r.SavedPath, ":\\")
}

// NeedsExtraction reports whether the record has no usable text: either
// content is absent or it holds a failure sentinel from an earlier
// extraction attempt.
func (r *DocumentRecord) NeedsExtraction() bool {
	return r.Content == "" || IsSentinelContent(r.Content)
}

// HasValidContent reports whether the record's content is real extracted
// text rather than empty or a failure sentinel.
func (r *DocumentRecord) HasValidContent() bool {
	return r.Content != "" && !IsSentinelContent(r.Content)
}

// LibraryState is the full persisted state of the document library:
// the two ownership lists, the selection and the setup flag. It is the
// unit the LibraryStore port loads and saves.
type LibraryState struct {
	CurrentFiles  []DocumentRecord `json:"current_files"`
	PreviousFiles []DocumentRecord `json:"previous_files"`
	SelectedFile  *DocumentRecord  `json:"selected_file,omitempty"`
	SetupComplete bool             `json:"setup_complete"`
}

// Fingerprint returns the cache key for the current document set: every
// ID across both lists, sorted and comma-joined. It is invariant under
// list reordering and changes whenever any ID is added or removed.
func (s LibraryState) Fingerprint() string {
	ids := make([]string, 0, len(s.CurrentFiles)+len(s.PreviousFiles))
	for _, r := range s.CurrentFiles {
		ids = append(ids, r.ID)
	}
	for _, r := range s.PreviousFiles {
		ids = append(ids, r.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// DocumentCount returns the total number of records across both lists.
func (s LibraryState) DocumentCount() int {
	return len(s.CurrentFiles) + len(s.PreviousFiles)
}

// Find returns a copy of the record with the given ID from either list.
func (s LibraryState) Find(id string) (DocumentRecord, bool) {
	for _, r := range s.CurrentFiles {
		if r.ID == id {
			return r, true
		}
	}
	for _, r := range s.PreviousFiles {
		if r.ID == id {
			return r, true
		}
	}
	return DocumentRecord{}, false
}
