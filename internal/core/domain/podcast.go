package domain

import "time"

// PodcastRecommendation is one suggested episode derived from the
// document library, script included.
type PodcastRecommendation struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Duration       string   `json:"duration"`
	Category       string   `json:"category"`
	Script         string   `json:"script"`
	KeyTopics      []string `json:"key_topics"`
	TargetAudience string   `json:"target_audience"`
}

// PodcastReport is the full result of a recommendation run.
type PodcastReport struct {
	Recommendations  []PodcastRecommendation `json:"recommendations"`
	BasedOnDocuments int                     `json:"based_on_documents"`
	Summary          string                  `json:"summary"`
	GeneratedAt      time.Time               `json:"generated_at"`
}

// PodcastScript is a two-speaker script generated for a text selection.
type PodcastScript struct {
	Script          string `json:"script"`
	RelatedDocsUsed int    `json:"related_documents_used"`
}

// PodcastAudio describes a synthesized audio episode produced by the
// speech collaborator.
type PodcastAudio struct {
	AudioURL      string    `json:"audio_url"`
	Title         string    `json:"title"`
	Duration      float64   `json:"duration_seconds"`
	SegmentsCount int       `json:"segments_count"`
	FileSizeMB    float64   `json:"file_size_mb"`
	GeneratedAt   time.Time `json:"generated_at"`
}
