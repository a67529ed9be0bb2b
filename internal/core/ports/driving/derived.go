package driving

import (
	"context"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

// InsightsService owns the fingerprinted cache of library-wide insights.
type InsightsService interface {
	// Current returns the cached report if its fingerprint still
	// matches the live document set; ok is false otherwise.
	Current(ctx context.Context) (report *domain.InsightReport, ok bool)

	// Generate calls the insight engine and caches the result under the
	// live fingerprint, overwriting any previous report.
	Generate(ctx context.Context) (*domain.InsightReport, error)
}

// ConnectionsService owns the fingerprinted cache of cross-document
// similarity connections.
type ConnectionsService interface {
	Current(ctx context.Context) (report *domain.SimilarityReport, ok bool)

	// Generate refuses with domain.ErrNotEnoughDocuments when the
	// library holds fewer than two documents.
	Generate(ctx context.Context) (*domain.SimilarityReport, error)
}

// PodcastsService owns the fingerprinted cache of podcast
// recommendations.
type PodcastsService interface {
	Current(ctx context.Context) (report *domain.PodcastReport, ok bool)
	Generate(ctx context.Context) (*domain.PodcastReport, error)
}

// ReaderService groups the selection-driven operations issued from the
// document viewer. Results are returned directly and never cached.
type ReaderService interface {
	// AnalyzeSelection generates insights for the selected text.
	AnalyzeSelection(ctx context.Context, selectedText, docContext string) (*domain.SelectionInsights, error)

	// FindSimilar runs a semantic search for the selected text.
	FindSimilar(ctx context.Context, queryText string, topK int, minSimilarity float64) ([]domain.SearchMatch, error)

	// ConnectionAnalysis searches for similar passages and explains how
	// they relate to the selection. An empty library yields a fixed
	// no-connections analysis, not an error.
	ConnectionAnalysis(ctx context.Context, selectedText, docContext string) (*domain.SelectionConnections, error)

	// IndexStats reports the remote index's size and status.
	IndexStats(ctx context.Context) (*domain.IndexStats, error)

	// Summarize produces a quick summary of the selected text.
	Summarize(ctx context.Context, text string) (*domain.QuickSummary, error)

	// Chat answers a question about the open document.
	Chat(ctx context.Context, question, pdfContent, pdfName string) (*domain.ChatAnswer, error)

	// PodcastScript writes a two-speaker script about the selection.
	PodcastScript(ctx context.Context, selectedText string) (*domain.PodcastScript, error)

	// PodcastAudio synthesizes a spoken episode for the selection.
	PodcastAudio(ctx context.Context, selectedText string) (*domain.PodcastAudio, error)
}
