package vectordb

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

// Ensure Client implements DocumentIndex
var _ driven.DocumentIndex = (*Client)(nil)

// DefaultTimeout bounds one index call. Adding a large document chunks
// and embeds it server-side, which dominates the budget.
const DefaultTimeout = 60 * time.Second

// Client implements the DocumentIndex port against the vector database
// service's HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new vector database client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// addRequest is the payload for indexing one document.
type addRequest struct {
	Filename string            `json:"filename"`
	Content  string            `json:"content"`
	FileID   string            `json:"file_id"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (c *Client) Add(ctx context.Context, filename, content, fileID string, metadata map[string]string) error {
	req := addRequest{
		Filename: filename,
		Content:  content,
		FileID:   fileID,
		Metadata: metadata,
	}
	return c.do(ctx, "POST", "/add-document", req, nil)
}

// removeResponse is the vector database's removal acknowledgment.
type removeResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RemovedCount int    `json:"removed_count"`
}

func (c *Client) RemoveByName(ctx context.Context, documentName, documentPath string) (int, error) {
	req := map[string]string{
		"document_name": documentName,
		"document_path": documentPath,
	}
	var resp removeResponse
	if err := c.do(ctx, "POST", "/api/remove-document", req, &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, fmt.Errorf("vector db refused removal: %s", resp.Message)
	}
	return resp.RemovedCount, nil
}

func (c *Client) RemoveByID(ctx context.Context, fileID string) error {
	return c.do(ctx, "DELETE", "/remove-document/"+fileID, nil, nil)
}

// searchRequest is the payload for a similarity query.
type searchRequest struct {
	QueryText     string  `json:"query_text"`
	TopK          int     `json:"top_k"`
	MinSimilarity float64 `json:"min_similarity"`
}

// searchResponse wraps the ranked hits.
type searchResponse struct {
	Results []domain.SearchMatch `json:"results"`
}

func (c *Client) Search(ctx context.Context, queryText string, topK int, minSimilarity float64) ([]domain.SearchMatch, error) {
	req := searchRequest{
		QueryText:     queryText,
		TopK:          topK,
		MinSimilarity: minSimilarity,
	}
	var resp searchResponse
	if err := c.do(ctx, "POST", "/similarity-search", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) Stats(ctx context.Context) (*domain.IndexStats, error) {
	var stats domain.IndexStats
	if err := c.do(ctx, "GET", "/vector-db-stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, "DELETE", "/clear-vector-db", nil, nil)
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, "GET", "/health", nil, nil)
}

// do sends one JSON request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: vector db returned status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
