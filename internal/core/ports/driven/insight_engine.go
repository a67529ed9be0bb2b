package driven

import (
	"context"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

// InsightEngine is the LLM-backed analysis collaborator. All methods
// block until the remote call resolves or the context is done; failures
// are returned as errors and surfaced to the caller, never cached.
type InsightEngine interface {
	// GenerateInsights analyses the whole library and returns strategic
	// insights.
	GenerateInsights(ctx context.Context) (*domain.InsightReport, error)

	// GenerateSimilarities finds semantic connections between library
	// documents. The collaborator needs at least two documents indexed.
	GenerateSimilarities(ctx context.Context) (*domain.SimilarityReport, error)

	// GeneratePodcastRecommendations produces suggested episodes with
	// scripts from the library.
	GeneratePodcastRecommendations(ctx context.Context) (*domain.PodcastReport, error)

	// GeneratePodcastScript writes a two-speaker script about the
	// selected text.
	GeneratePodcastScript(ctx context.Context, selectedText string) (*domain.PodcastScript, error)

	// AnalyzeSelection generates insights scoped to one text selection.
	AnalyzeSelection(ctx context.Context, selectedText, docContext string) (*domain.SelectionInsights, error)

	// AnalyzeConnections explains how the selected text relates to
	// similar content elsewhere in the library.
	AnalyzeConnections(ctx context.Context, selectedText, docContext string) (*domain.ConnectionAnalysis, error)

	// QuickSummary summarizes a piece of text.
	QuickSummary(ctx context.Context, text string) (*domain.QuickSummary, error)

	// Chat answers a question about one document's content.
	Chat(ctx context.Context, question, pdfContent, pdfName string) (*domain.ChatAnswer, error)
}
