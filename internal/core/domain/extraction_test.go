package domain

import (
	"strings"
	"testing"
)

func TestExtractionResult_DisplayText(t *testing.T) {
	tests := []struct {
		name   string
		result ExtractionResult
		want   string
	}{
		{
			"success returns text",
			ExtractionResult{Kind: ExtractionOK, Text: "extracted body"},
			"extracted body",
		},
		{
			"timeout",
			ExtractionResult{Kind: ExtractionTimeout},
			"timeout after 30 seconds",
		},
		{
			"unreachable carries detail",
			ExtractionResult{Kind: ExtractionUnreachable, Detail: "connection refused"},
			"connection refused",
		},
		{
			"not found",
			ExtractionResult{Kind: ExtractionNotFound},
			"File not found",
		},
		{
			"server error carries detail",
			ExtractionResult{Kind: ExtractionServerError, Detail: "encrypted PDF"},
			"encrypted PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.DisplayText()
			if !strings.Contains(got, tt.want) {
				t.Errorf("DisplayText() = %q, expected it to contain %q", got, tt.want)
			}
			if tt.result.OK() && got != tt.result.Text {
				t.Errorf("success must return the raw text, got %q", got)
			}
			if !tt.result.OK() && !IsSentinelContent(got) {
				t.Errorf("failure text %q must be recognized as sentinel", got)
			}
		})
	}
}

func TestIsSentinelContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		sentinel bool
	}{
		{"real text", "The grid operator reported stable load.", false},
		{"empty", "", false},
		{"timeout marker", "request TIMEOUT while reading", true},
		{"error marker", "Error: something broke", true},
		{"content missing sentinel", ContentMissingSentinel, true},
		{"file removed sentinel", FileRemovedSentinel, true},
		{"case insensitive", "CANNOT EXTRACT CONTENT at all", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSentinelContent(tt.content); got != tt.sentinel {
				t.Errorf("IsSentinelContent(%q) = %v, expected %v", tt.content, got, tt.sentinel)
			}
		})
	}
}
