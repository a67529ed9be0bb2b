package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// maxUploadMemory bounds how much of a multipart upload is held in RAM.
const maxUploadMemory = 32 << 20

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns readiness, checking the persistence backend when configured
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Persistence unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "persistence unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Library endpoints

// libraryResponse is the full library state plus derived flags the
// frontend polls for.
type libraryResponse struct {
	CurrentFiles   []domain.DocumentRecord `json:"current_files"`
	PreviousFiles  []domain.DocumentRecord `json:"previous_files"`
	SelectedFile   *domain.DocumentRecord  `json:"selected_file,omitempty"`
	SetupComplete  bool                    `json:"setup_complete"`
	LoadingContent bool                    `json:"loading_content"`
	DocumentCount  int                     `json:"document_count"`
}

// handleGetLibrary godoc
// @Summary      Get library state
// @Description  Returns both document lists, the selection and status flags
// @Tags         Library
// @Produce      json
// @Success      200  {object}  libraryResponse
// @Router       /api/v1/library [get]
func (s *Server) handleGetLibrary(w http.ResponseWriter, r *http.Request) {
	state := s.libraryService.State()
	writeJSON(w, http.StatusOK, libraryResponse{
		CurrentFiles:   state.CurrentFiles,
		PreviousFiles:  state.PreviousFiles,
		SelectedFile:   state.SelectedFile,
		SetupComplete:  state.SetupComplete,
		LoadingContent: s.libraryService.IsLoadingContent(),
		DocumentCount:  state.DocumentCount(),
	})
}

// handleUpload godoc
// @Summary      Upload documents
// @Description  Accepts multipart PDF uploads, extracts their text and adds them to the current session
// @Tags         Library
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "PDF files"
// @Success      200  {array}   domain.DocumentRecord
// @Failure      400  {object}  ErrorResponse  "No files in request"
// @Failure      500  {object}  ErrorResponse  "Upload failed"
// @Router       /api/v1/documents [post]
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		writeError(w, http.StatusBadRequest, "no files in request")
		return
	}

	inputs := make([]driving.UploadInput, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}
		defer file.Close()
		inputs = append(inputs, driving.UploadInput{
			Filename: fh.Filename,
			Size:     fh.Size,
			MimeType: fh.Header.Get("Content-Type"),
			Body:     file,
		})
	}

	records, err := s.libraryService.Upload(r.Context(), inputs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleAddPrevious godoc
// @Summary      Add previous-library documents
// @Tags         Library
// @Accept       json
// @Produce      json
// @Param        request  body      []domain.DocumentRecord  true  "Records to add"
// @Success      200      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Router       /api/v1/documents/previous [post]
func (s *Server) handleAddPrevious(w http.ResponseWriter, r *http.Request) {
	var records []domain.DocumentRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.libraryService.AddPreviousFiles(r.Context(), records)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSelect godoc
// @Summary      Select a document
// @Description  Makes the document the current selection, extracting its content first when needed
// @Tags         Library
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  libraryResponse
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Selection failed"
// @Router       /api/v1/documents/{id}/select [post]
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	state := s.libraryService.State()
	record, ok := state.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	if err := s.libraryService.SelectFile(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "selection failed")
		return
	}
	s.handleGetLibrary(w, r)
}

// handleRefresh godoc
// @Summary      Force refresh a document
// @Description  Discards stored content and retries extraction; legacy-format documents are removed instead
// @Tags         Library
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  libraryResponse
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Refresh failed"
// @Router       /api/v1/documents/{id}/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	state := s.libraryService.State()
	record, ok := state.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	if err := s.libraryService.ForceRefreshFile(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "refresh failed")
		return
	}
	s.handleGetLibrary(w, r)
}

// handleRemoveCurrent godoc
// @Summary      Remove a current-session document
// @Tags         Library
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Router       /api/v1/documents/current/{id} [delete]
func (s *Server) handleRemoveCurrent(w http.ResponseWriter, r *http.Request) {
	s.removeDocument(w, r, s.libraryService.RemoveCurrentFile)
}

// handleRemovePrevious godoc
// @Summary      Remove a previous-library document
// @Tags         Library
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Router       /api/v1/documents/previous/{id} [delete]
func (s *Server) handleRemovePrevious(w http.ResponseWriter, r *http.Request) {
	s.removeDocument(w, r, s.libraryService.RemovePreviousFile)
}

func (s *Server) removeDocument(w http.ResponseWriter, r *http.Request, remove func(ctx context.Context, id string) error) {
	id := r.PathValue("id")
	if err := remove(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "removal failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Setup and reset

// handleCompleteSetup godoc
// @Summary      Complete initial setup
// @Description  Seeds the previous-library list and flips the one-way setup flag
// @Tags         Setup
// @Accept       json
// @Produce      json
// @Param        request  body      []domain.DocumentRecord  false  "Seed records"
// @Success      200      {object}  StatusResponse
// @Router       /api/v1/setup/complete [post]
func (s *Server) handleCompleteSetup(w http.ResponseWriter, r *http.Request) {
	var records []domain.DocumentRecord
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	s.libraryService.CompleteInitialSetup(r.Context(), records)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleFullReset godoc
// @Summary      Reset everything
// @Description  Clears the remote document index, then all local and persisted state. When the index cannot be cleared nothing is touched and the response offers a local-only reset.
// @Tags         Setup
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      502  {object}  ErrorResponse  "Index clear failed, local state untouched"
// @Router       /api/v1/reset [post]
func (s *Server) handleFullReset(w http.ResponseWriter, r *http.Request) {
	if err := s.libraryService.FullReset(r.Context()); err != nil {
		if errors.Is(err, domain.ErrIndexClearFailed) {
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"error":    "could not clear the document index",
				"fallback": "/api/v1/reset/local",
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLocalReset godoc
// @Summary      Reset local state only
// @Description  Clears local and persisted state without touching the remote index
// @Tags         Setup
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /api/v1/reset/local [post]
func (s *Server) handleLocalReset(w http.ResponseWriter, r *http.Request) {
	if err := s.libraryService.ResetAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Derived results

// handleGetInsights godoc
// @Summary      Get cached insights
// @Description  Returns the cached insight report if it still matches the live document set
// @Tags         Insights
// @Produce      json
// @Success      200  {object}  domain.InsightReport
// @Failure      404  {object}  ErrorResponse  "No valid cached report"
// @Router       /api/v1/insights [get]
func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	report, ok := s.insightsService.Current(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no cached insights for the current documents")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleGenerateInsights godoc
// @Summary      Generate insights
// @Tags         Insights
// @Produce      json
// @Success      200  {object}  domain.InsightReport
// @Failure      400  {object}  ErrorResponse  "Not enough documents"
// @Failure      502  {object}  ErrorResponse  "Insight engine unavailable"
// @Router       /api/v1/insights [post]
func (s *Server) handleGenerateInsights(w http.ResponseWriter, r *http.Request) {
	report, err := s.insightsService.Generate(r.Context())
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleGetConnections godoc
// @Summary      Get cached connections
// @Tags         Connections
// @Produce      json
// @Success      200  {object}  domain.SimilarityReport
// @Failure      404  {object}  ErrorResponse  "No valid cached report"
// @Router       /api/v1/connections [get]
func (s *Server) handleGetConnections(w http.ResponseWriter, r *http.Request) {
	report, ok := s.connectionsService.Current(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no cached connections for the current documents")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleGenerateConnections godoc
// @Summary      Generate connections
// @Description  Finds semantic connections across documents; needs at least two in the library
// @Tags         Connections
// @Produce      json
// @Success      200  {object}  domain.SimilarityReport
// @Failure      400  {object}  ErrorResponse  "Not enough documents"
// @Failure      502  {object}  ErrorResponse  "Insight engine unavailable"
// @Router       /api/v1/connections [post]
func (s *Server) handleGenerateConnections(w http.ResponseWriter, r *http.Request) {
	report, err := s.connectionsService.Generate(r.Context())
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleGetPodcasts godoc
// @Summary      Get cached podcast recommendations
// @Tags         Podcasts
// @Produce      json
// @Success      200  {object}  domain.PodcastReport
// @Failure      404  {object}  ErrorResponse  "No valid cached report"
// @Router       /api/v1/podcasts [get]
func (s *Server) handleGetPodcasts(w http.ResponseWriter, r *http.Request) {
	report, ok := s.podcastsService.Current(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no cached recommendations for the current documents")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleGeneratePodcasts godoc
// @Summary      Generate podcast recommendations
// @Tags         Podcasts
// @Produce      json
// @Success      200  {object}  domain.PodcastReport
// @Failure      400  {object}  ErrorResponse  "Not enough documents"
// @Failure      502  {object}  ErrorResponse  "Insight engine unavailable"
// @Router       /api/v1/podcasts [post]
func (s *Server) handleGeneratePodcasts(w http.ResponseWriter, r *http.Request) {
	report, err := s.podcastsService.Generate(r.Context())
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Selection-driven operations

// selectionRequest carries the viewer's text selection plus optional
// document context.
type selectionRequest struct {
	SelectedText    string `json:"selected_text"`
	DocumentContext string `json:"document_context,omitempty"`
}

// handleSelectionInsights godoc
// @Summary      Analyze a text selection
// @Tags         Reader
// @Accept       json
// @Produce      json
// @Param        request  body      selectionRequest  true  "Selected text"
// @Success      200      {object}  domain.SelectionInsights
// @Failure      400      {object}  ErrorResponse  "Empty selection"
// @Failure      502      {object}  ErrorResponse  "Insight engine unavailable"
// @Router       /api/v1/selection/insights [post]
func (s *Server) handleSelectionInsights(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	insights, err := s.readerService.AnalyzeSelection(r.Context(), req.SelectedText, req.DocumentContext)
	if err != nil {
		writeReaderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

// searchSelectionRequest is a similarity search over the selection.
type searchSelectionRequest struct {
	QueryText     string  `json:"query_text"`
	TopK          int     `json:"top_k"`
	MinSimilarity float64 `json:"min_similarity"`
}

// handleSelectionSimilar godoc
// @Summary      Find passages similar to a selection
// @Tags         Reader
// @Accept       json
// @Produce      json
// @Param        request  body      searchSelectionRequest  true  "Query"
// @Success      200      {array}   domain.SearchMatch
// @Failure      400      {object}  ErrorResponse  "Empty query"
// @Failure      502      {object}  ErrorResponse  "Vector database unavailable"
// @Router       /api/v1/selection/similar [post]
func (s *Server) handleSelectionSimilar(w http.ResponseWriter, r *http.Request) {
	var req searchSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	matches, err := s.readerService.FindSimilar(r.Context(), req.QueryText, req.TopK, req.MinSimilarity)
	if err != nil {
		writeReaderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// handleSelectionConnections godoc
// @Summary      Analyze connections for a text selection
// @Description  Searches the index for similar passages and explains how they relate to the selection. Returns a fixed empty-state analysis when nothing similar exists.
// @Tags         Reader
// @Accept       json
// @Produce      json
// @Param        request  body      selectionRequest  true  "Selected text"
// @Success      200      {object}  domain.SelectionConnections
// @Failure      400      {object}  ErrorResponse  "Empty selection"
// @Failure      502      {object}  ErrorResponse  "Collaborator unavailable"
// @Router       /api/v1/selection/connections [post]
func (s *Server) handleSelectionConnections(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	analysis, err := s.readerService.ConnectionAnalysis(r.Context(), req.SelectedText, req.DocumentContext)
	if err != nil {
		writeReaderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// handleSelectionSummary godoc
// @Summary      Summarize a text selection
// @Tags         Reader
// @Accept       json
// @Produce      json
// @Param        request  body      selectionRequest  true  "Selected text"
// @Success      200      {object}  domain.QuickSummary
// @Failure      400      {object}  ErrorResponse  "Empty selection"
// @Router       /api/v1/selection/summary [post]
func (s *Server) handleSelectionSummary(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	summary, err := s.readerService.Summarize(r.Context(), req.SelectedText)
	if err != nil {
		writeReaderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// chatRequest is a question about the open document.
type chatRequest struct {
	Question   string `json:"question"`
	PDFContent string `json:"pdf_content"`
	PDFName    string `json:"pdf_name"`
}

// handleSelectionChat godoc
// @Summary      Ask a question about the open document
// @Tags         Reader
// @Accept       json
// @Produce      json
// @Param        request  body      chatRequest  true  "Question and document"
// @Success      200      {object}  domain.ChatAnswer
// @Failure      400      {object}  ErrorResponse  "Empty question"
// @Failure      502      {object}  ErrorResponse  "Insight engine unavailable"
// @Router       /api/v1/selection/chat [post]
func (s *Server) handleSelectionChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	answer, err := s.readerService.Chat(r.Context(), req.Question, req.PDFContent, req.PDFName)
	if err != nil {
		writeReaderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

// handleSelectionPodcast godoc
// @Summary      Generate a podcast script for a selection
// @Tags         Reader
// @Accept       json
// @Produce      json
// @Param        request  body      selectionRequest  true  "Selected text, at least 10 characters"
// @Success      200      {object}  domain.PodcastScript
// @Failure      400      {object}  ErrorResponse  "Selection too short"
// @Router       /api/v1/selection/podcast [post]
func (s *Server) handleSelectionPodcast(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	script, err := s.readerService.PodcastScript(r.Context(), req.SelectedText)
	if err != nil {
		writeReaderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, script)
}

// handleSelectionPodcastAudio godoc
// @Summary      Synthesize a podcast episode for a selection
// @Description  Slow: synthesis takes minutes. The selection must be at least 50 characters.
// @Tags         Reader
// @Accept       json
// @Produce      json
// @Param        request  body      selectionRequest  true  "Selected text, at least 50 characters"
// @Success      200      {object}  domain.PodcastAudio
// @Failure      400      {object}  ErrorResponse  "Selection too short"
// @Failure      502      {object}  ErrorResponse  "TTS service unavailable"
// @Router       /api/v1/selection/podcast/audio [post]
func (s *Server) handleSelectionPodcastAudio(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	audio, err := s.readerService.PodcastAudio(r.Context(), req.SelectedText)
	if err != nil {
		writeReaderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, audio)
}

// handleIndexStats godoc
// @Summary      Get document index statistics
// @Tags         Index
// @Produce      json
// @Success      200  {object}  domain.IndexStats
// @Failure      502  {object}  ErrorResponse  "Vector database unavailable"
// @Router       /api/v1/index/stats [get]
func (s *Server) handleIndexStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.readerService.IndexStats(r.Context())
	if err != nil {
		writeReaderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Error mapping helpers

func writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotEnoughDocuments):
		writeError(w, http.StatusBadRequest, "not enough documents")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusBadGateway, "insight engine unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "generation failed")
	}
}

func writeReaderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "empty selection")
	case errors.Is(err, domain.ErrSelectionTooShort):
		writeError(w, http.StatusBadRequest, "selection too short")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusBadGateway, "service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "request failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
