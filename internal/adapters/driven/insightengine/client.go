package insightengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driven"
)

// Ensure Client implements InsightEngine
var _ driven.InsightEngine = (*Client)(nil)

// DefaultTimeout bounds one LLM generation call. Library-wide runs
// fan out over every document and routinely take over a minute.
const DefaultTimeout = 120 * time.Second

// Client implements the InsightEngine port against the AI analysis
// service's HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new insight engine client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) GenerateInsights(ctx context.Context) (*domain.InsightReport, error) {
	var report domain.InsightReport
	if err := c.post(ctx, "/generate-ai-insights", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) GenerateSimilarities(ctx context.Context) (*domain.SimilarityReport, error) {
	var report domain.SimilarityReport
	if err := c.post(ctx, "/generate-similarities", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) GeneratePodcastRecommendations(ctx context.Context) (*domain.PodcastReport, error) {
	var report domain.PodcastReport
	if err := c.post(ctx, "/generate-podcast-recommendations", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) GeneratePodcastScript(ctx context.Context, selectedText string) (*domain.PodcastScript, error) {
	req := map[string]string{"selected_text": selectedText}
	var script domain.PodcastScript
	if err := c.post(ctx, "/generate-podcast", req, &script); err != nil {
		return nil, err
	}
	return &script, nil
}

func (c *Client) AnalyzeSelection(ctx context.Context, selectedText, docContext string) (*domain.SelectionInsights, error) {
	req := map[string]string{
		"selected_text": selectedText,
		"context":       docContext,
	}
	var insights domain.SelectionInsights
	if err := c.post(ctx, "/ai-insights", req, &insights); err != nil {
		return nil, err
	}
	return &insights, nil
}

func (c *Client) AnalyzeConnections(ctx context.Context, selectedText, docContext string) (*domain.ConnectionAnalysis, error) {
	req := map[string]string{
		"selected_text": selectedText,
		"context":       docContext,
	}
	// The service wraps the analysis with echo fields the caller
	// reconstructs itself; only the analysis is kept.
	var resp struct {
		Analysis domain.ConnectionAnalysis `json:"analysis"`
	}
	if err := c.post(ctx, "/similarity-analysis", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Analysis, nil
}

func (c *Client) QuickSummary(ctx context.Context, text string) (*domain.QuickSummary, error) {
	req := map[string]string{"text": text}
	var summary domain.QuickSummary
	if err := c.post(ctx, "/quick-summary", req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) Chat(ctx context.Context, question, pdfContent, pdfName string) (*domain.ChatAnswer, error) {
	req := map[string]string{
		"question":    question,
		"pdf_content": pdfContent,
		"pdf_name":    pdfName,
	}
	var answer domain.ChatAnswer
	if err := c.post(ctx, "/api/pdf-chat", req, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// post sends a JSON request and decodes the JSON response into out.
// A nil body sends an empty JSON object; the generation endpoints take
// no parameters but still expect POST.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	if body == nil {
		body = struct{}{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: insight engine returned status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
