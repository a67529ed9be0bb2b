package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driven"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driving"
)

// Ensure libraryService implements LibraryService
var _ driving.LibraryService = (*libraryService)(nil)

// revalidator is implemented by derived-result caches. The library
// calls it after every list mutation so stale results are cleared as
// soon as the document set changes, not only when next read.
type revalidator interface {
	Revalidate(ctx context.Context)
}

// libraryService implements the LibraryService interface. It is the
// single owner of the document lists; all mutation happens under one
// mutex, with the in-flight extraction released from it so a slow
// collaborator never blocks reads.
type libraryService struct {
	store     driven.LibraryStore
	caches    driven.ResultCacheStore
	extractor driven.Extractor
	index     driven.DocumentIndex
	logger    *slog.Logger

	mu             sync.Mutex
	state          domain.LibraryState
	loadingContent bool
	revalidators   []revalidator
}

// LibraryConfig holds dependencies for the library service.
type LibraryConfig struct {
	Store     driven.LibraryStore
	Caches    driven.ResultCacheStore
	Extractor driven.Extractor
	Index     driven.DocumentIndex
	Logger    *slog.Logger
}

// NewLibraryService creates the document library service.
func NewLibraryService(cfg LibraryConfig) *libraryService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &libraryService{
		store:     cfg.Store,
		caches:    cfg.Caches,
		extractor: cfg.Extractor,
		index:     cfg.Index,
		logger:    logger,
	}
}

// RegisterCache subscribes a derived-result cache to revalidation after
// library mutations.
func (s *libraryService) RegisterCache(r revalidator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revalidators = append(s.revalidators, r)
}

// Load restores persisted state. Records from an incompatible older
// storage format (non-uploaded path and no usable content) are dropped,
// and a selection pointing at a dropped record is cleared.
func (s *libraryService) Load(ctx context.Context) error {
	persisted, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.LibraryState{
		CurrentFiles:  filterStale(persisted.CurrentFiles),
		PreviousFiles: filterStale(persisted.PreviousFiles),
		SetupComplete: persisted.SetupComplete,
	}
	if persisted.SelectedFile != nil {
		if rec, ok := s.state.Find(persisted.SelectedFile.ID); ok {
			s.state.SelectedFile = &rec
		}
	}
	s.autoSelectLocked()
	s.persistLocked(ctx)
	return nil
}

// filterStale drops records that neither carry an uploaded/failed path
// tag nor hold usable extracted text.
func filterStale(records []domain.DocumentRecord) []domain.DocumentRecord {
	kept := make([]domain.DocumentRecord, 0, len(records))
	for _, r := range records {
		if r.IsUploaded() || r.HasValidContent() {
			kept = append(kept, r)
		}
	}
	return kept
}

// State returns a snapshot of the library state.
func (s *libraryService) State() domain.LibraryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *libraryService) snapshotLocked() domain.LibraryState {
	snap := domain.LibraryState{
		CurrentFiles:  append([]domain.DocumentRecord(nil), s.state.CurrentFiles...),
		PreviousFiles: append([]domain.DocumentRecord(nil), s.state.PreviousFiles...),
		SetupComplete: s.state.SetupComplete,
	}
	if s.state.SelectedFile != nil {
		sel := *s.state.SelectedFile
		snap.SelectedFile = &sel
	}
	return snap
}

// Fingerprint returns the cache key of the live document set.
func (s *libraryService) Fingerprint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Fingerprint()
}

// DocumentCount returns the total number of records.
func (s *libraryService) DocumentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DocumentCount()
}

// IsLoadingContent reports whether an extraction is in flight.
func (s *libraryService) IsLoadingContent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingContent
}

// Upload processes a batch of files sequentially. Each file is
// extracted, recorded under a fresh ID, indexed best-effort, and
// appended to the current list. A failed extraction still produces a
// record, tagged failed/ with the diagnostic text as its content.
func (s *libraryService) Upload(ctx context.Context, files []driving.UploadInput) ([]domain.DocumentRecord, error) {
	records := make([]domain.DocumentRecord, 0, len(files))

	for _, f := range files {
		result, err := s.extractor.ExtractUpload(ctx, f.Filename, f.Body)
		if err != nil {
			return records, err
		}

		rec := domain.DocumentRecord{
			ID:        uuid.NewString(),
			Name:      f.Filename,
			Size:      f.Size,
			Type:      f.MimeType,
			Timestamp: time.Now(),
			Content:   result.DisplayText(),
			Pages:     result.Pages,
		}
		if result.OK() {
			rec.SavedPath = domain.UploadedPathPrefix + f.Filename
			rec.LastRead = time.Now().Format("Jan 2, 2006 3:04 PM")
		} else {
			rec.SavedPath = domain.FailedPathPrefix + f.Filename
			rec.Pages = 1
		}

		if result.OK() {
			meta := map[string]string{"saved_path": rec.SavedPath, "upload_source": "current_session"}
			if err := s.index.Add(ctx, rec.Name, result.Text, rec.ID, meta); err != nil {
				s.logger.Warn("document index add failed", "file", rec.Name, "error", err)
			}
		}

		s.AddCurrentFile(ctx, rec)
		records = append(records, rec)
	}

	return records, nil
}

// AddCurrentFile appends a record to the current-session list. When it
// is the only record in the library and nothing is selected, it becomes
// the selection.
func (s *libraryService) AddCurrentFile(ctx context.Context, record domain.DocumentRecord) {
	s.mu.Lock()
	s.state.CurrentFiles = append(s.state.CurrentFiles, record)
	s.autoSelectLocked()
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.revalidateCaches(ctx)
}

// AddPreviousFiles appends records to the prior-library list.
func (s *libraryService) AddPreviousFiles(ctx context.Context, records []domain.DocumentRecord) {
	if len(records) == 0 {
		return
	}
	s.mu.Lock()
	s.state.PreviousFiles = append(s.state.PreviousFiles, records...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.revalidateCaches(ctx)
}

// autoSelectLocked selects the sole record when the current list holds
// exactly one, the previous list is empty, and nothing is selected.
// It never clobbers an existing selection.
func (s *libraryService) autoSelectLocked() {
	if s.state.SelectedFile != nil {
		return
	}
	if len(s.state.CurrentFiles) == 1 && len(s.state.PreviousFiles) == 0 {
		sel := s.state.CurrentFiles[0]
		s.state.SelectedFile = &sel
	}
}

// SelectFile makes the record the current selection. A record with
// usable content is selected as-is. An uploaded/failed record missing
// its content gets the fixed Content Missing sentinel; content is
// expected to have been stored at upload, so absence is corruption, not
// a recoverable network condition. A path-backed record missing content
// is extracted, at most one extraction at a time.
func (s *libraryService) SelectFile(ctx context.Context, record domain.DocumentRecord) error {
	s.mu.Lock()

	missing := record.Content == ""
	sentinel := domain.IsSentinelContent(record.Content)

	if !missing && !sentinel {
		s.setSelectionLocked(ctx, record)
		s.mu.Unlock()
		return nil
	}

	if record.IsUploaded() {
		if missing {
			record.Content = domain.ContentMissingSentinel
		}
		s.setSelectionLocked(ctx, record)
		s.mu.Unlock()
		return nil
	}

	if s.loadingContent {
		// Another extraction is in flight; do not queue or cancel.
		s.mu.Unlock()
		s.logger.Debug("select skipped, extraction in flight", "id", record.ID)
		return nil
	}

	s.loadingContent = true
	s.setSelectionLocked(ctx, record)
	s.mu.Unlock()

	result, err := s.extractor.ExtractPath(ctx, record.SavedPath)

	s.mu.Lock()
	defer func() {
		s.loadingContent = false
		s.persistLocked(ctx)
		s.mu.Unlock()
	}()

	if err != nil {
		return err
	}

	content := result.DisplayText()
	pages := result.Pages
	lastRead := ""
	if result.OK() {
		lastRead = time.Now().Format("Jan 2, 2006 3:04 PM")
	} else if pages == 0 {
		pages = 1
	}
	s.updateRecordLocked(record.ID, content, pages, lastRead)
	return nil
}

// setSelectionLocked stores a value copy as the selection and persists.
func (s *libraryService) setSelectionLocked(ctx context.Context, record domain.DocumentRecord) {
	sel := record
	s.state.SelectedFile = &sel
	s.persistLocked(ctx)
}

// updateRecordLocked rewrites content, pages and lastRead as a unit on
// the matching record in whichever list holds it, and refreshes the
// selection when it points at the same record.
func (s *libraryService) updateRecordLocked(id, content string, pages int, lastRead string) {
	apply := func(r *domain.DocumentRecord) {
		r.Content = content
		r.Pages = pages
		if lastRead != "" {
			r.LastRead = lastRead
		}
	}

	for i := range s.state.CurrentFiles {
		if s.state.CurrentFiles[i].ID == id {
			apply(&s.state.CurrentFiles[i])
		}
	}
	for i := range s.state.PreviousFiles {
		if s.state.PreviousFiles[i].ID == id {
			apply(&s.state.PreviousFiles[i])
		}
	}
	if s.state.SelectedFile != nil && s.state.SelectedFile.ID == id {
		apply(s.state.SelectedFile)
	}
}

// ForceRefreshFile retries extraction for the record, bypassing the
// already-has-content short-circuit. A record with an unsupported
// legacy path cannot be refreshed: it is removed from both lists and
// replaced in the selection by an explanatory tombstone.
func (s *libraryService) ForceRefreshFile(ctx context.Context, record domain.DocumentRecord) error {
	if record.HasLegacyPath() {
		s.mu.Lock()
		s.state.CurrentFiles = removeByID(s.state.CurrentFiles, record.ID)
		s.state.PreviousFiles = removeByID(s.state.PreviousFiles, record.ID)
		tombstone := record
		tombstone.Content = domain.FileRemovedSentinel
		tombstone.Pages = 1
		s.state.SelectedFile = &tombstone
		s.persistLocked(ctx)
		s.mu.Unlock()

		s.revalidateCaches(ctx)
		return nil
	}

	s.mu.Lock()
	s.updateRecordLocked(record.ID, "", record.Pages, "")
	s.mu.Unlock()

	record.Content = ""
	return s.SelectFile(ctx, record)
}

// RemoveCurrentFile removes a record from the current list, notifying
// the remote index first. Index failure is logged and swallowed; local
// removal is never rolled back.
func (s *libraryService) RemoveCurrentFile(ctx context.Context, id string) error {
	return s.remove(ctx, id, true)
}

// RemovePreviousFile removes a record from the previous list.
func (s *libraryService) RemovePreviousFile(ctx context.Context, id string) error {
	return s.remove(ctx, id, false)
}

func (s *libraryService) remove(ctx context.Context, id string, current bool) error {
	s.mu.Lock()
	list := s.state.PreviousFiles
	if current {
		list = s.state.CurrentFiles
	}
	var rec domain.DocumentRecord
	found := false
	for _, r := range list {
		if r.ID == id {
			rec = r
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return domain.ErrNotFound
	}

	// Best-effort remote eviction before touching local state. Records
	// uploaded this session were indexed under their own ID; seeded
	// records are only known to the index by name and path.
	if strings.HasPrefix(rec.SavedPath, domain.UploadedPathPrefix) {
		if err := s.index.RemoveByID(ctx, rec.ID); err != nil {
			s.logger.Warn("document index remove failed", "file", rec.Name, "error", err)
		}
	} else if _, err := s.index.RemoveByName(ctx, rec.Name, rec.SavedPath); err != nil {
		s.logger.Warn("document index remove failed", "file", rec.Name, "error", err)
	}

	s.mu.Lock()
	if current {
		s.state.CurrentFiles = removeByID(s.state.CurrentFiles, id)
	} else {
		s.state.PreviousFiles = removeByID(s.state.PreviousFiles, id)
	}
	if s.state.SelectedFile != nil && s.state.SelectedFile.ID == id {
		s.state.SelectedFile = nil
	}
	s.autoSelectLocked()
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.revalidateCaches(ctx)
	return nil
}

func removeByID(records []domain.DocumentRecord, id string) []domain.DocumentRecord {
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return kept
}

// CompleteInitialSetup seeds the previous list and flips the one-way
// setup flag. Only ResetAll ever clears the flag again.
func (s *libraryService) CompleteInitialSetup(ctx context.Context, records []domain.DocumentRecord) {
	s.mu.Lock()
	s.state.PreviousFiles = append(s.state.PreviousFiles, records...)
	s.state.SetupComplete = true
	s.persistLocked(ctx)
	s.mu.Unlock()

	if len(records) > 0 {
		s.revalidateCaches(ctx)
	}
}

// ResetAll clears all in-memory and persisted state, derived-result
// caches included. Memory is cleared even when persistence fails.
func (s *libraryService) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	s.state = domain.LibraryState{}
	s.loadingContent = false
	s.mu.Unlock()

	var errs []error
	if err := s.store.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.caches.ClearAll(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FullReset clears the remote index, then local state. The index
// collaborator is health-checked first so a dead backend fails fast;
// any remote failure leaves local state untouched and is reported as
// ErrIndexClearFailed so the caller can offer a local-only reset.
func (s *libraryService) FullReset(ctx context.Context) error {
	if err := s.index.HealthCheck(ctx); err != nil {
		return errors.Join(domain.ErrIndexClearFailed, err)
	}
	if err := s.index.Clear(ctx); err != nil {
		return errors.Join(domain.ErrIndexClearFailed, err)
	}
	return s.ResetAll(ctx)
}

// persistLocked writes the current state through the store. Persistence
// failure is logged, not surfaced: local state stays authoritative.
func (s *libraryService) persistLocked(ctx context.Context) {
	if err := s.store.Save(ctx, &s.state); err != nil {
		s.logger.Error("persist library state failed", "error", err)
	}
}

func (s *libraryService) revalidateCaches(ctx context.Context) {
	s.mu.Lock()
	rvs := append([]revalidator(nil), s.revalidators...)
	s.mu.Unlock()
	for _, r := range rvs {
		r.Revalidate(ctx)
	}
}
