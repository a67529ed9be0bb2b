package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"time"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/ports/driven"
)

// Ensure Client implements Extractor
var _ driven.Extractor = (*Client)(nil)

// DefaultTimeout bounds one extraction call. Large scanned PDFs can
// take tens of seconds on the collaborator side.
const DefaultTimeout = 30 * time.Second

// Client implements the Extractor port against the PDF extraction
// service's HTTP API. Extraction failures are returned as classified
// ExtractionResult values, not errors: the caller always gets something
// it can store in a record.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new extraction service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// extractResponse is the extraction service's success payload.
type extractResponse struct {
	Filename  string `json:"filename"`
	PageCount int    `json:"page_count"`
	Text      string `json:"text"`
	Error     string `json:"error,omitempty"`
}

// ExtractUpload streams an uploaded file to the extraction service as
// multipart form data.
func (c *Client) ExtractUpload(ctx context.Context, filename string, file io.Reader) (domain.ExtractionResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/extract-pdf", &buf)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, filename)
}

// ExtractPath asks the extraction service to read a file it already
// holds by stored path.
func (c *Client) ExtractPath(ctx context.Context, path string) (domain.ExtractionResult, error) {
	body, err := json.Marshal(map[string]string{"file_path": path})
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/extract-pdf-path", bytes.NewReader(body))
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path)
}

// do executes the request and classifies the outcome. Transport and
// status failures become tagged results; only malformed success payloads
// surface as errors.
func (c *Client) do(req *http.Request, name string) (domain.ExtractionResult, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return classifyTransportError(err, name), nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return domain.ExtractionResult{Kind: domain.ExtractionNotFound, Filename: name}, nil
	default:
		return domain.ExtractionResult{
			Kind:     domain.ExtractionServerError,
			Filename: name,
			Detail:   fmt.Sprintf("extraction service returned status %d", resp.StatusCode),
		}, nil
	}

	var payload extractResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if payload.Error != "" {
		return domain.ExtractionResult{
			Kind:     domain.ExtractionServerError,
			Filename: name,
			Detail:   payload.Error,
		}, nil
	}

	return domain.ExtractionResult{
		Kind:     domain.ExtractionOK,
		Filename: payload.Filename,
		Text:     payload.Text,
		Pages:    payload.PageCount,
	}, nil
}

// classifyTransportError maps a client-side failure to a result kind.
func classifyTransportError(err error, name string) domain.ExtractionResult {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.ExtractionResult{Kind: domain.ExtractionTimeout, Filename: name}
	}
	return domain.ExtractionResult{
		Kind:     domain.ExtractionUnreachable,
		Filename: name,
		Detail:   err.Error(),
	}
}
