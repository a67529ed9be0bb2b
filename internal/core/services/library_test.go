package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driven/mocks"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driving"
)

type libraryFixture struct {
	store     *mocks.MockLibraryStore
	caches    *mocks.MockResultCacheStore
	extractor *mocks.MockExtractor
	index     *mocks.MockDocumentIndex
	svc       *libraryService
}

func newTestLibrary() *libraryFixture {
	f := &libraryFixture{
		store:     mocks.NewMockLibraryStore(),
		caches:    mocks.NewMockResultCacheStore(),
		extractor: mocks.NewMockExtractor(),
		index:     mocks.NewMockDocumentIndex(),
	}
	f.svc = NewLibraryService(LibraryConfig{
		Store:     f.store,
		Caches:    f.caches,
		Extractor: f.extractor,
		Index:     f.index,
	})
	return f
}

func uploadedRecord(id, name, content string) domain.DocumentRecord {
	return domain.DocumentRecord{
		ID:        id,
		Name:      name,
		SavedPath: domain.UploadedPathPrefix + name,
		Content:   content,
		Pages:     3,
		Timestamp: time.Now(),
	}
}

func TestLibraryService_Upload_Success(t *testing.T) {
	f := newTestLibrary()
	f.extractor.UploadResult = domain.ExtractionResult{
		Kind:     domain.ExtractionOK,
		Filename: "report.pdf",
		Text:     "extracted body text",
		Pages:    12,
	}

	records, err := f.svc.Upload(context.Background(), []driving.UploadInput{
		{Filename: "report.pdf", Size: 2048, MimeType: "application/pdf", Body: strings.NewReader("%PDF")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.ID == "" {
		t.Error("expected generated ID")
	}
	if rec.SavedPath != "uploaded/report.pdf" {
		t.Errorf("expected uploaded/ path, got %s", rec.SavedPath)
	}
	if rec.Content != "extracted body text" {
		t.Errorf("unexpected content %q", rec.Content)
	}
	if rec.Pages != 12 {
		t.Errorf("expected 12 pages, got %d", rec.Pages)
	}
	if rec.LastRead == "" {
		t.Error("expected last-read timestamp on success")
	}
	if f.index.Size() != 1 {
		t.Errorf("expected 1 indexed document, got %d", f.index.Size())
	}

	state := f.svc.State()
	if len(state.CurrentFiles) != 1 {
		t.Fatalf("expected 1 current file, got %d", len(state.CurrentFiles))
	}
	if state.SelectedFile == nil || state.SelectedFile.ID != rec.ID {
		t.Error("expected sole uploaded file to be auto-selected")
	}
}

func TestLibraryService_Upload_ExtractionFailure(t *testing.T) {
	f := newTestLibrary()
	f.extractor.UploadResult = domain.ExtractionResult{
		Kind:   domain.ExtractionServerError,
		Detail: "boom",
	}

	records, err := f.svc.Upload(context.Background(), []driving.UploadInput{
		{Filename: "broken.pdf", Body: strings.NewReader("x")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := records[0]
	if rec.SavedPath != "failed/broken.pdf" {
		t.Errorf("expected failed/ path, got %s", rec.SavedPath)
	}
	if !domain.IsSentinelContent(rec.Content) {
		t.Errorf("expected sentinel content, got %q", rec.Content)
	}
	if rec.Pages != 1 {
		t.Errorf("expected pages fallback 1, got %d", rec.Pages)
	}
	if f.index.AddCalls != 0 {
		t.Error("failed extraction must not be indexed")
	}
}

func TestLibraryService_Upload_IndexFailureIsSwallowed(t *testing.T) {
	f := newTestLibrary()
	f.extractor.UploadResult = domain.ExtractionResult{Kind: domain.ExtractionOK, Text: "text", Pages: 1}
	f.index.AddErr = errors.New("index down")

	records, err := f.svc.Upload(context.Background(), []driving.UploadInput{
		{Filename: "a.pdf", Body: strings.NewReader("x")},
	})
	if err != nil {
		t.Fatalf("index failure must not fail the upload: %v", err)
	}
	if len(records) != 1 || records[0].Content != "text" {
		t.Error("expected record despite index failure")
	}
}

func TestLibraryService_Fingerprint_OrderInvariant(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()

	f.svc.AddCurrentFile(ctx, uploadedRecord("b", "b.pdf", "text b"))
	f.svc.AddCurrentFile(ctx, uploadedRecord("a", "a.pdf", "text a"))
	first := f.svc.Fingerprint()

	g := newTestLibrary()
	g.svc.AddCurrentFile(ctx, uploadedRecord("a", "a.pdf", "text a"))
	g.svc.AddPreviousFiles(ctx, []domain.DocumentRecord{uploadedRecord("b", "b.pdf", "text b")})
	second := g.svc.Fingerprint()

	if first != second {
		t.Errorf("fingerprint must be order and list invariant: %q vs %q", first, second)
	}
	if first != "a,b" {
		t.Errorf("expected sorted join, got %q", first)
	}
}

func TestLibraryService_SelectFile_WithContentIsImmediate(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	rec := uploadedRecord("doc-1", "a.pdf", "real content")
	f.svc.AddCurrentFile(ctx, rec)

	if err := f.svc.SelectFile(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.extractor.Calls() != 0 {
		t.Error("record with content must not trigger extraction")
	}
	state := f.svc.State()
	if state.SelectedFile == nil || state.SelectedFile.ID != "doc-1" {
		t.Error("expected selection to be set")
	}
}

func TestLibraryService_SelectFile_UploadedMissingContent(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	rec := uploadedRecord("doc-1", "a.pdf", "")
	f.svc.AddCurrentFile(ctx, rec)

	if err := f.svc.SelectFile(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.extractor.Calls() != 0 {
		t.Error("uploaded record must never be re-extracted")
	}
	state := f.svc.State()
	if state.SelectedFile == nil || state.SelectedFile.Content != domain.ContentMissingSentinel {
		t.Error("expected content-missing sentinel on selection")
	}
}

func TestLibraryService_SelectFile_PathExtraction(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	rec := domain.DocumentRecord{ID: "doc-1", Name: "a.pdf", SavedPath: "docs/a.pdf"}
	f.svc.AddCurrentFile(ctx, rec)
	f.extractor.PathResult = domain.ExtractionResult{Kind: domain.ExtractionOK, Text: "fetched", Pages: 7}

	if err := f.svc.SelectFile(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.extractor.Calls() != 1 {
		t.Fatalf("expected 1 extraction, got %d", f.extractor.Calls())
	}
	if f.extractor.LastPath != "docs/a.pdf" {
		t.Errorf("expected stored path to be extracted, got %s", f.extractor.LastPath)
	}

	state := f.svc.State()
	if state.SelectedFile.Content != "fetched" || state.SelectedFile.Pages != 7 {
		t.Errorf("selection not updated: %+v", state.SelectedFile)
	}
	if state.CurrentFiles[0].Content != "fetched" {
		t.Error("list record not updated alongside selection")
	}
	if f.svc.IsLoadingContent() {
		t.Error("loading flag must be cleared after extraction")
	}
}

func TestLibraryService_SelectFile_TimeoutSentinel(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	rec := domain.DocumentRecord{ID: "doc-1", Name: "a.pdf", SavedPath: "docs/a.pdf"}
	f.svc.AddCurrentFile(ctx, rec)
	f.extractor.PathResult = domain.ExtractionResult{Kind: domain.ExtractionTimeout}

	if err := f.svc.SelectFile(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := f.svc.State()
	got := state.SelectedFile.Content
	if !strings.Contains(got, "timeout after 30 seconds") {
		t.Errorf("expected timeout sentinel, got %q", got)
	}
	if !domain.IsSentinelContent(got) {
		t.Error("timeout text must be recognized as sentinel")
	}
	if state.SelectedFile.Pages != 1 {
		t.Errorf("expected pages fallback 1, got %d", state.SelectedFile.Pages)
	}
	if state.SelectedFile.LastRead != "" {
		t.Error("failed extraction must not set last-read")
	}
}

func TestLibraryService_SelectFile_SingleInFlight(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	first := domain.DocumentRecord{ID: "doc-1", Name: "a.pdf", SavedPath: "docs/a.pdf"}
	second := domain.DocumentRecord{ID: "doc-2", Name: "b.pdf", SavedPath: "docs/b.pdf"}
	f.svc.AddCurrentFile(ctx, first)
	f.svc.AddCurrentFile(ctx, second)

	f.extractor.Started = make(chan struct{})
	f.extractor.Block = make(chan struct{})
	f.extractor.PathResult = domain.ExtractionResult{Kind: domain.ExtractionOK, Text: "done", Pages: 1}

	done := make(chan error, 1)
	go func() { done <- f.svc.SelectFile(ctx, first) }()
	<-f.extractor.Started

	if !f.svc.IsLoadingContent() {
		t.Fatal("expected loading flag during extraction")
	}

	// Second select while the first is in flight is a silent no-op.
	if err := f.svc.SelectFile(ctx, second); err != nil {
		t.Fatalf("concurrent select must not error: %v", err)
	}
	if f.extractor.Calls() != 1 {
		t.Fatalf("expected exactly 1 extraction in flight, got %d", f.extractor.Calls())
	}

	close(f.extractor.Block)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.svc.IsLoadingContent() {
		t.Error("loading flag must be cleared")
	}
	if f.extractor.Calls() != 1 {
		t.Errorf("blocked select must not have queued a retry, got %d calls", f.extractor.Calls())
	}
}

func TestLibraryService_ForceRefreshFile_Reextracts(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	rec := domain.DocumentRecord{ID: "doc-1", Name: "a.pdf", SavedPath: "docs/a.pdf", Content: "stale text", Pages: 2}
	f.svc.AddCurrentFile(ctx, rec)
	f.extractor.PathResult = domain.ExtractionResult{Kind: domain.ExtractionOK, Text: "fresh text", Pages: 5}

	if err := f.svc.ForceRefreshFile(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.extractor.Calls() != 1 {
		t.Fatalf("expected forced extraction, got %d calls", f.extractor.Calls())
	}
	state := f.svc.State()
	if state.CurrentFiles[0].Content != "fresh text" {
		t.Errorf("expected refreshed content, got %q", state.CurrentFiles[0].Content)
	}
}

func TestLibraryService_ForceRefreshFile_LegacyPath(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	rec := domain.DocumentRecord{ID: "doc-1", Name: "old.pdf", SavedPath: "/tmp/uploads/old.pdf"}
	f.svc.AddCurrentFile(ctx, rec)

	if err := f.svc.ForceRefreshFile(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.extractor.Calls() != 0 {
		t.Error("legacy path must not be extracted")
	}
	state := f.svc.State()
	if len(state.CurrentFiles) != 0 {
		t.Error("legacy record must be removed from the list")
	}
	if state.SelectedFile == nil || state.SelectedFile.Content != domain.FileRemovedSentinel {
		t.Error("expected file-removed tombstone in selection")
	}
}

func TestLibraryService_RemoveCurrentFile(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	rec := uploadedRecord("doc-1", "a.pdf", "text")
	f.svc.AddCurrentFile(ctx, rec)
	_ = f.index.Add(ctx, rec.Name, rec.Content, rec.ID, map[string]string{"saved_path": rec.SavedPath})

	if err := f.svc.RemoveCurrentFile(ctx, "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := f.svc.State()
	if len(state.CurrentFiles) != 0 {
		t.Error("expected record removed")
	}
	if state.SelectedFile != nil {
		t.Error("selection pointing at removed record must be cleared")
	}
	if f.index.Size() != 0 {
		t.Error("expected remote index eviction")
	}
}

func TestLibraryService_RemoveCurrentFile_IndexFailureNotRolledBack(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))
	f.index.RemoveErr = errors.New("index down")

	if err := f.svc.RemoveCurrentFile(ctx, "doc-1"); err != nil {
		t.Fatalf("index failure must not fail local removal: %v", err)
	}
	if len(f.svc.State().CurrentFiles) != 0 {
		t.Error("local removal must proceed despite index failure")
	}
}

func TestLibraryService_Remove_AutoSelectsSurvivor(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))
	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-2", "b.pdf", "text"))

	// doc-1 was auto-selected as the first record; removing it leaves
	// exactly one current file, no previous files and no selection.
	if err := f.svc.RemoveCurrentFile(ctx, "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := f.svc.State()
	if state.SelectedFile == nil || state.SelectedFile.ID != "doc-2" {
		t.Errorf("expected surviving sole record to be auto-selected, got %+v", state.SelectedFile)
	}

	// With previous files in the library the survivor stays unselected.
	g := newTestLibrary()
	g.svc.AddPreviousFiles(ctx, []domain.DocumentRecord{uploadedRecord("doc-9", "z.pdf", "text")})
	g.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))
	g.svc.AddCurrentFile(ctx, uploadedRecord("doc-2", "b.pdf", "text"))
	if err := g.svc.RemoveCurrentFile(ctx, "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.svc.State().SelectedFile != nil {
		t.Error("auto-select after removal requires an empty previous list")
	}
}

func TestLibraryService_Remove_EvictionKey(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()

	// Session uploads are indexed under their record ID.
	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))
	if err := f.svc.RemoveCurrentFile(ctx, "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.index.LastRemovedID != "doc-1" {
		t.Errorf("expected ID-based eviction for uploaded record, got %q", f.index.LastRemovedID)
	}

	// Seeded records are only known to the index by name and path.
	seeded := domain.DocumentRecord{ID: "doc-2", Name: "b.pdf", SavedPath: "docs/b.pdf", Content: "text"}
	f.svc.AddPreviousFiles(ctx, []domain.DocumentRecord{seeded})
	if err := f.svc.RemovePreviousFile(ctx, "doc-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.index.LastRemoved != "b.pdf" {
		t.Errorf("expected name-based eviction for seeded record, got %q", f.index.LastRemoved)
	}
}

func TestLibraryService_Remove_NotFound(t *testing.T) {
	f := newTestLibrary()
	err := f.svc.RemoveCurrentFile(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if f.index.RemoveCalls != 0 {
		t.Error("unknown record must not touch the index")
	}
}

func TestLibraryService_AutoSelect_OnlyForSoleRecord(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()

	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))
	if sel := f.svc.State().SelectedFile; sel == nil || sel.ID != "doc-1" {
		t.Fatal("expected sole record to be auto-selected")
	}

	// A second record never steals an existing selection.
	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-2", "b.pdf", "text"))
	if sel := f.svc.State().SelectedFile; sel == nil || sel.ID != "doc-1" {
		t.Error("existing selection must be preserved")
	}

	// With previous files present, no auto-select happens.
	g := newTestLibrary()
	g.svc.AddPreviousFiles(ctx, []domain.DocumentRecord{uploadedRecord("doc-9", "z.pdf", "text")})
	g.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))
	if g.svc.State().SelectedFile != nil {
		t.Error("auto-select requires an empty previous list")
	}
}

func TestLibraryService_Load_FiltersStaleRecords(t *testing.T) {
	f := newTestLibrary()
	stale := domain.DocumentRecord{ID: "old-1", Name: "old.pdf", SavedPath: "C:\\docs\\old.pdf"}
	kept := uploadedRecord("doc-1", "a.pdf", "text")
	pathBacked := domain.DocumentRecord{ID: "doc-2", Name: "b.pdf", SavedPath: "docs/b.pdf", Content: "valid text"}
	f.store.Seed(&domain.LibraryState{
		CurrentFiles:  []domain.DocumentRecord{stale, kept},
		PreviousFiles: []domain.DocumentRecord{pathBacked},
		SelectedFile:  &stale,
		SetupComplete: true,
	})

	if err := f.svc.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := f.svc.State()
	if len(state.CurrentFiles) != 1 || state.CurrentFiles[0].ID != "doc-1" {
		t.Errorf("expected stale record dropped, got %+v", state.CurrentFiles)
	}
	if len(state.PreviousFiles) != 1 {
		t.Error("path-backed record with content must survive load")
	}
	if state.SelectedFile != nil {
		t.Error("selection pointing at a dropped record must be cleared")
	}
	if !state.SetupComplete {
		t.Error("setup flag must survive load")
	}
}

func TestLibraryService_CompleteInitialSetup(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	f.svc.CompleteInitialSetup(ctx, []domain.DocumentRecord{uploadedRecord("doc-1", "a.pdf", "text")})

	state := f.svc.State()
	if !state.SetupComplete {
		t.Error("expected setup flag set")
	}
	if len(state.PreviousFiles) != 1 {
		t.Error("expected seeded previous files")
	}

	// The flag is one-way: more uploads never clear it.
	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-2", "b.pdf", "text"))
	if !f.svc.State().SetupComplete {
		t.Error("setup flag must be one-way")
	}
}

func TestLibraryService_ResetAll(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))
	f.svc.CompleteInitialSetup(ctx, nil)
	_ = f.caches.Save(ctx, SlotInsights, []byte(`{}`), "doc-1")

	if err := f.svc.ResetAll(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := f.svc.State()
	if state.DocumentCount() != 0 || state.SelectedFile != nil || state.SetupComplete {
		t.Errorf("expected empty state after reset, got %+v", state)
	}
	if f.store.Clears != 1 {
		t.Error("expected persisted state cleared")
	}
	if f.caches.Has(SlotInsights) {
		t.Error("expected derived caches cleared")
	}
}

func TestLibraryService_ResetAll_ClearsMemoryOnStoreFailure(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))
	f.store.SaveErr = errors.New("redis down") // Save inside mutations is swallowed
	f.store.Clears = 0

	if f.svc.State().DocumentCount() != 1 {
		t.Fatal("setup failed")
	}
	_ = f.svc.ResetAll(ctx)
	if f.svc.State().DocumentCount() != 0 {
		t.Error("memory must be cleared even when persistence fails")
	}
}

func TestLibraryService_FullReset(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))
	_ = f.index.Add(ctx, "a.pdf", "text", "doc-1", nil)

	if err := f.svc.FullReset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.index.Size() != 0 {
		t.Error("expected index cleared")
	}
	if f.svc.State().DocumentCount() != 0 {
		t.Error("expected local state cleared")
	}
}

func TestLibraryService_FullReset_IndexFailureLeavesStateIntact(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()
	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))

	f.index.HealthErr = errors.New("unreachable")
	err := f.svc.FullReset(ctx)
	if !errors.Is(err, domain.ErrIndexClearFailed) {
		t.Fatalf("expected ErrIndexClearFailed, got %v", err)
	}
	if f.svc.State().DocumentCount() != 1 {
		t.Error("local state must be untouched when the index cannot be cleared")
	}

	f.index.HealthErr = nil
	f.index.ClearErr = errors.New("clear refused")
	err = f.svc.FullReset(ctx)
	if !errors.Is(err, domain.ErrIndexClearFailed) {
		t.Fatalf("expected ErrIndexClearFailed, got %v", err)
	}
	if f.svc.State().DocumentCount() != 1 {
		t.Error("local state must be untouched when the index clear fails")
	}
}

func TestLibraryService_RemovalRevalidatesCaches(t *testing.T) {
	f := newTestLibrary()
	ctx := context.Background()

	engine := mocks.NewMockInsightEngine()
	engine.InsightReport = &domain.InsightReport{Summary: "s"}
	_, cache := NewInsightsService(engine, f.caches, f.svc, nil)
	f.svc.RegisterCache(cache)

	f.svc.AddCurrentFile(ctx, uploadedRecord("doc-1", "a.pdf", "text"))
	if _, err := cache.Generate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.Current(ctx); !ok {
		t.Fatal("expected cached report")
	}

	if err := f.svc.RemoveCurrentFile(ctx, "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.Current(ctx); ok {
		t.Error("cache must be invalidated when the document set changes")
	}
	if f.caches.Has(SlotInsights) {
		t.Error("persisted cache entry must be cleared too")
	}
}
