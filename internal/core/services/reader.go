package services

import (
	"context"
	"strings"
	"time"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driven"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driving"
)

// Ensure readerService implements ReaderService
var _ driving.ReaderService = (*readerService)(nil)

// Minimum selection lengths accepted by the generation collaborators.
const (
	minScriptSelection = 10
	minAudioSelection  = 50
)

// Search parameters for the connection analysis pipeline. Wider and
// looser than the viewer's similar-passage search so the explanation
// has enough material to work with.
const (
	connectionTopK          = 8
	connectionMinSimilarity = 0.25
)

// readerService implements the selection-driven viewer operations.
// Everything here is a validated pass-through; results go straight back
// to the caller and are never cached.
type readerService struct {
	engine driven.InsightEngine
	index  driven.DocumentIndex
	speech driven.SpeechSynthesizer
}

// NewReaderService creates the reader service.
func NewReaderService(
	engine driven.InsightEngine,
	index driven.DocumentIndex,
	speech driven.SpeechSynthesizer,
) driving.ReaderService {
	return &readerService{
		engine: engine,
		index:  index,
		speech: speech,
	}
}

func (s *readerService) AnalyzeSelection(ctx context.Context, selectedText, docContext string) (*domain.SelectionInsights, error) {
	if strings.TrimSpace(selectedText) == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.engine.AnalyzeSelection(ctx, selectedText, docContext)
}

func (s *readerService) FindSimilar(ctx context.Context, queryText string, topK int, minSimilarity float64) ([]domain.SearchMatch, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, domain.ErrInvalidInput
	}
	if topK <= 0 {
		topK = 10
	}
	if minSimilarity <= 0 {
		minSimilarity = 0.3
	}
	return s.index.Search(ctx, queryText, topK, minSimilarity)
}

// ConnectionAnalysis searches the index for passages similar to the
// selection and has the engine explain how they relate. When nothing
// similar exists the engine is skipped and a fixed empty-state analysis
// is returned instead of an error.
func (s *readerService) ConnectionAnalysis(ctx context.Context, selectedText, docContext string) (*domain.SelectionConnections, error) {
	if strings.TrimSpace(selectedText) == "" {
		return nil, domain.ErrInvalidInput
	}

	matches, err := s.index.Search(ctx, selectedText, connectionTopK, connectionMinSimilarity)
	if err != nil {
		return nil, err
	}

	result := &domain.SelectionConnections{
		SelectedText:     selectedText,
		SimilarDocuments: len(matches),
		GeneratedAt:      time.Now(),
	}

	if len(matches) == 0 {
		result.Analysis = domain.ConnectionAnalysis{
			Summary:           "No similar content found in the document library.",
			Connections:       []domain.DocumentConnection{},
			KeyInsights:       []string{"This appears to be unique content"},
			SuggestedFollowUp: "Consider uploading more related documents to find connections",
		}
		return result, nil
	}

	analysis, err := s.engine.AnalyzeConnections(ctx, selectedText, docContext)
	if err != nil {
		return nil, err
	}
	result.Analysis = *analysis
	return result, nil
}

// IndexStats reports the remote index's document count and status.
func (s *readerService) IndexStats(ctx context.Context) (*domain.IndexStats, error) {
	return s.index.Stats(ctx)
}

func (s *readerService) Summarize(ctx context.Context, text string) (*domain.QuickSummary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.engine.QuickSummary(ctx, text)
}

func (s *readerService) Chat(ctx context.Context, question, pdfContent, pdfName string) (*domain.ChatAnswer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.engine.Chat(ctx, question, pdfContent, pdfName)
}

func (s *readerService) PodcastScript(ctx context.Context, selectedText string) (*domain.PodcastScript, error) {
	if len(strings.TrimSpace(selectedText)) < minScriptSelection {
		return nil, domain.ErrSelectionTooShort
	}
	return s.engine.GeneratePodcastScript(ctx, selectedText)
}

func (s *readerService) PodcastAudio(ctx context.Context, selectedText string) (*domain.PodcastAudio, error) {
	if len(strings.TrimSpace(selectedText)) < minAudioSelection {
		return nil, domain.ErrSelectionTooShort
	}
	return s.speech.SynthesizePodcast(ctx, selectedText)
}
