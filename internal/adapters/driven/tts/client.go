package tts

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

// Ensure Client implements SpeechSynthesizer
var _ driven.SpeechSynthesizer = (*Client)(nil)

// DefaultTimeout bounds one synthesis call. The collaborator writes a
// script, voices every segment and stitches the audio, so a full
// episode takes minutes.
const DefaultTimeout = 5 * time.Minute

// Client implements the SpeechSynthesizer port against the
// text-to-speech service's HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new speech synthesis client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// synthesizeResponse is the synthesis service's payload.
type synthesizeResponse struct {
	AudioURL            string  `json:"audio_url"`
	Title               string  `json:"title"`
	DurationSeconds     float64 `json:"duration_seconds"`
	SegmentsCount       int     `json:"segments_count"`
	FileSizeMB          float64 `json:"file_size_mb"`
	GenerationTimestamp string  `json:"generation_timestamp"`
	Error               string  `json:"error,omitempty"`
}

func (c *Client) SynthesizePodcast(ctx context.Context, selectedText string) (*domain.PodcastAudio, error) {
	payload, err := json.Marshal(map[string]string{"selected_text": selectedText})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/generate-tts-podcast", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tts service returned status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}

	var synth synthesizeResponse
	if err := json.Unmarshal(respBody, &synth); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if synth.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrServiceUnavailable, synth.Error)
	}

	generatedAt := time.Now()
	if ts, err := time.Parse(time.RFC3339, synth.GenerationTimestamp); err == nil {
		generatedAt = ts
	}

	return &domain.PodcastAudio{
		AudioURL:      synth.AudioURL,
		Title:         synth.Title,
		Duration:      synth.DurationSeconds,
		SegmentsCount: synth.SegmentsCount,
		FileSizeMB:    synth.FileSizeMB,
		GeneratedAt:   generatedAt,
	}, nil
}
