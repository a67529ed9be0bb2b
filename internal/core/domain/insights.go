package domain

import "time"

// Insight is one strategic finding produced by the insight engine from
// the whole document library.
type Insight struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Confidence      int      `json:"confidence"` // 0-100
	Impact          string   `json:"impact"`     // Low, Medium, High, Critical, Strategic
	Source          string   `json:"source"`
	Implications    []string `json:"implications"`
	Recommendations []string `json:"recommendations"`
}

// InsightReport is the full result of a library-wide insight run.
type InsightReport struct {
	Insights          []Insight `json:"insights"`
	DocumentsAnalyzed int       `json:"documents_analyzed"`
	Summary           string    `json:"summary"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// SelectionInsights is the result of analysing one text selection
// against the document library. Unlike InsightReport it is never cached.
type SelectionInsights struct {
	SelectedText     string    `json:"selected_text"`
	Summary          string    `json:"summary"`
	Insights         []Insight `json:"insights"`
	RelatedDocuments int       `json:"related_documents"`
}

// QuickSummary is a short AI summary of a piece of text.
type QuickSummary struct {
	OriginalLength int    `json:"original_length"`
	Summary        string `json:"summary"`
}

// ChatAnswer is the reply to a question asked about one document's text.
type ChatAnswer struct {
	Answer      string  `json:"answer"`
	Confidence  float64 `json:"confidence"`
	IsRelevant  bool    `json:"is_relevant"`
	ContextUsed string  `json:"context_used,omitempty"`
}
