package mocks

import (
	"context"
	"sync"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

// MockInsightEngine is a configurable InsightEngine for testing.
type MockInsightEngine struct {
	mu sync.Mutex

	InsightReport    *domain.InsightReport
	SimilarityReport *domain.SimilarityReport
	PodcastReport    *domain.PodcastReport
	Script           *domain.PodcastScript
	Selection        *domain.SelectionInsights
	Connections      *domain.ConnectionAnalysis
	Summary          *domain.QuickSummary
	Answer           *domain.ChatAnswer
	Err              error

	InsightCalls    int
	SimilarityCalls int
	PodcastCalls    int
	ConnectionCalls int
}

// NewMockInsightEngine creates a new MockInsightEngine.
func NewMockInsightEngine() *MockInsightEngine {
	return &MockInsightEngine{}
}

func (m *MockInsightEngine) GenerateInsights(ctx context.Context) (*domain.InsightReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsightCalls++
	return m.InsightReport, m.Err
}

func (m *MockInsightEngine) GenerateSimilarities(ctx context.Context) (*domain.SimilarityReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SimilarityCalls++
	return m.SimilarityReport, m.Err
}

func (m *MockInsightEngine) GeneratePodcastRecommendations(ctx context.Context) (*domain.PodcastReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PodcastCalls++
	return m.PodcastReport, m.Err
}

func (m *MockInsightEngine) GeneratePodcastScript(ctx context.Context, selectedText string) (*domain.PodcastScript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Script, m.Err
}

func (m *MockInsightEngine) AnalyzeSelection(ctx context.Context, selectedText, docContext string) (*domain.SelectionInsights, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Selection, m.Err
}

func (m *MockInsightEngine) AnalyzeConnections(ctx context.Context, selectedText, docContext string) (*domain.ConnectionAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConnectionCalls++
	return m.Connections, m.Err
}

func (m *MockInsightEngine) QuickSummary(ctx context.Context, text string) (*domain.QuickSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Summary, m.Err
}

func (m *MockInsightEngine) Chat(ctx context.Context, question, pdfContent, pdfName string) (*domain.ChatAnswer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Answer, m.Err
}
