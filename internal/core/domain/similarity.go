package domain

import "time"

// SimilarityMatch is one semantic connection found between two documents
// in the library.
type SimilarityMatch struct {
	Concept         string   `json:"concept"`
	Description     string   `json:"description"`
	SourceDocument  string   `json:"source_document"`
	TargetDocument  string   `json:"target_document"`
	SimilarityScore float64  `json:"similarity_score"`
	KeyPhrases      []string `json:"key_phrases"`
}

// SimilarityReport is the full result of a library-wide connection run.
type SimilarityReport struct {
	Similarities     []SimilarityMatch `json:"similarities"`
	TotalComparisons int               `json:"total_comparisons"`
	Message          string            `json:"message"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// SearchMatch is one ranked hit from a similarity search against the
// document index.
type SearchMatch struct {
	Content         string            `json:"content"`
	Metadata        map[string]string `json:"metadata"`
	SimilarityScore float64           `json:"similarity_score"`
}

// DocumentConnection is one explained link between a text selection and
// a passage found elsewhere in the library.
type DocumentConnection struct {
	Title        string `json:"title"`
	Document     string `json:"document"`
	Snippet      string `json:"snippet"`
	Relationship string `json:"relationship"`
	Strength     string `json:"strength"`
	Type         string `json:"type"`
}

// ConnectionAnalysis is the AI explanation of how a selection relates
// to similar content across the library.
type ConnectionAnalysis struct {
	Summary           string               `json:"summary"`
	Connections       []DocumentConnection `json:"connections"`
	KeyInsights       []string             `json:"key_insights"`
	SuggestedFollowUp string               `json:"suggested_follow_up"`
}

// SelectionConnections pairs a connection analysis with the selection
// it was run for and how many similar passages backed it.
type SelectionConnections struct {
	SelectedText     string             `json:"selected_text"`
	Analysis         ConnectionAnalysis `json:"analysis"`
	SimilarDocuments int                `json:"similar_documents"`
	GeneratedAt      time.Time          `json:"analysis_timestamp"`
}

// IndexStats describes the state of the remote document index.
type IndexStats struct {
	TotalDocuments int    `json:"total_documents"`
	Status         string `json:"status"`
}
