// Package analysis turns extracted resume text into a quality score, an
// improvement report, and an ATS-compatibility estimate.
//
// Analyze is a pure function of its input: given identical text it produces
// identical results except for the AnalyzedAt timestamp. Section and signal
// detection are declarative rule tables (sections.go, signals.go); the
// scoring arithmetic lives separately in score.go.
package analysis

import (
	"strings"
	"time"

	"github.com/jonathan/resume-review/internal/types"
)

// Analyze scores resume text and builds the full report. Empty or
// whitespace-only text is the only hard failure; short or badly structured
// text simply scores low.
func Analyze(text string) (*types.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &Error{Message: "text is empty"}
	}

	normalized := normalizeText(text)
	sections := detectSections(normalized)
	sig := extractSignals(normalized)

	score := computeOverallScore(sections, sig)
	strengths := buildStrengths(sections, sig)
	improvements := buildImprovements(sections, sig)

	return &types.AnalysisResult{
		OverallScore:        score,
		ATSCompatibility:    computeATSScore(sections, sig),
		Strengths:           strengths,
		Improvements:        improvements,
		SectionCompleteness: sections,
		DetailedFeedback:    buildFeedback(score, len(strengths), len(improvements)),
		AnalyzedAt:          time.Now().UTC(),
	}, nil
}
