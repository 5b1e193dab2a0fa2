package types

import "time"

// Priority classifies how urgent an improvement is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns a sortable ordinal for the priority (lower sorts first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Improvement is a single actionable suggestion in an analysis report.
type Improvement struct {
	Category   string   `json:"category"`
	Priority   Priority `json:"priority"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
	Example    string   `json:"example,omitempty"`
}

// SectionCompleteness holds presence flags for the canonical resume sections.
type SectionCompleteness struct {
	ContactInfo bool `json:"contact_info"`
	Summary     bool `json:"summary"`
	Experience  bool `json:"experience"`
	Education   bool `json:"education"`
	Skills      bool `json:"skills"`
}

// AnalysisReport is the structured portion of an analysis result persisted
// alongside the numeric scores.
type AnalysisReport struct {
	Strengths           []string            `json:"strengths"`
	Improvements        []Improvement       `json:"improvements"`
	SectionCompleteness SectionCompleteness `json:"section_completeness"`
	DetailedFeedback    string              `json:"detailed_feedback"`
}

// AnalysisResult is the full output of analyzing one resume text.
type AnalysisResult struct {
	OverallScore        int                 `json:"overall_score"`
	ATSCompatibility    int                 `json:"ats_compatibility"`
	Strengths           []string            `json:"strengths"`
	Improvements        []Improvement       `json:"improvements"`
	SectionCompleteness SectionCompleteness `json:"section_completeness"`
	DetailedFeedback    string              `json:"detailed_feedback"`
	AnalyzedAt          time.Time           `json:"analyzed_at"`
}

// Report extracts the persistable structured portion of the result.
func (r *AnalysisResult) Report() *AnalysisReport {
	return &AnalysisReport{
		Strengths:           r.Strengths,
		Improvements:        r.Improvements,
		SectionCompleteness: r.SectionCompleteness,
		DetailedFeedback:    r.DetailedFeedback,
	}
}
