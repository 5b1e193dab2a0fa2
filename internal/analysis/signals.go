package analysis

import (
	"regexp"
	"strings"
)

// Signal thresholds.
const (
	minWordCount            = 300
	maxWordCount            = 1200
	actionVerbTarget        = 5
	quantifiableTarget      = 3
	bulletLineTarget        = 3
	keywordDensityThreshold = 0.02
)

// actionVerbs is the fixed vocabulary of strong resume verbs, matched
// whole-word and case-insensitive.
var actionVerbs = []string{
	"achieved", "accelerated", "automated", "built", "collaborated", "coordinated",
	"created", "delivered", "designed", "developed", "directed", "drove", "established",
	"executed", "expanded", "founded", "generated", "implemented", "improved",
	"increased", "initiated", "launched", "led", "managed", "mentored", "negotiated",
	"optimized", "organized", "oversaw", "reduced", "resolved", "spearheaded",
	"streamlined", "strengthened", "supervised", "transformed",
}

// professionalKeywords feed the keyword-density signal shared by the skills
// bonus and the ATS estimate.
var professionalKeywords = []string{
	"analysis", "budget", "client", "communication", "cross-functional", "customer",
	"data", "deadline", "efficiency", "initiative", "leadership", "management",
	"operations", "performance", "planning", "process", "product", "project",
	"quality", "reporting", "results", "revenue", "stakeholder", "strategy",
	"team", "training",
}

var (
	actionVerbPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(actionVerbs, "|") + `)\b`)
	keywordPattern    = regexp.MustCompile(`(?i)\b(` + strings.Join(professionalKeywords, "|") + `)\b`)

	// quantifiablePatterns recognize measurable-achievement phrasing.
	quantifiablePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+(\.\d+)?\s?%`),
		regexp.MustCompile(`[$€£]\s?\d`),
		regexp.MustCompile(`(?i)\b\d+\+?\s+(years?|months?|weeks?)\b`),
		regexp.MustCompile(`(?i)\b(increased|decreased|reduced|improved|grew|cut|boosted|saved)\b[^.\n]{0,40}\bby\s+\d`),
		regexp.MustCompile(`(?i)\b\d[\d,]*\+?\s+(people|customers|clients|users|employees|engineers|accounts|projects|team members)\b`),
	}

	bulletLinePattern = regexp.MustCompile(`^\s*([-*•·]|\d+[.)])\s+`)
	dateRangePattern  = regexp.MustCompile(`(?i)\b((jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4})\s*(-|–|—|to)\s*((jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4}|present|current)\b`)

	// Artifacts left behind by text extraction from documents that embed
	// tables or images, both of which hurt ATS parsing.
	tableLinePattern = regexp.MustCompile(`\|[^|\n]*\|`)
	imagePattern     = regexp.MustCompile(`(?i)(\[image[^\]]*\]|<img\b|\.(png|jpe?g|gif|bmp)\b)`)
)

// signals holds every quality measurement extracted from normalized text.
type signals struct {
	wordCount         int
	actionVerbCount   int
	quantifiableCount int
	bulletLineCount   int
	keywordDensity    float64
	hasDateRanges     bool
	hasTables         bool
	hasImages         bool
}

func (s signals) lengthOK() bool {
	return s.wordCount >= minWordCount && s.wordCount <= maxWordCount
}

func (s signals) keywordsSufficient() bool {
	return s.keywordDensity >= keywordDensityThreshold
}

func (s signals) formattingConsistent() bool {
	return s.bulletLineCount >= bulletLineTarget
}

func (s signals) textOnly() bool {
	return !s.hasTables && !s.hasImages
}

// extractSignals computes every quality signal in one pass over the text.
func extractSignals(text string) signals {
	sig := signals{
		wordCount:       countWords(text),
		actionVerbCount: len(actionVerbPattern.FindAllString(text, -1)),
		hasDateRanges:   dateRangePattern.MatchString(text),
		hasTables:       tableLinePattern.MatchString(text),
		hasImages:       imagePattern.MatchString(text),
	}

	for _, p := range quantifiablePatterns {
		sig.quantifiableCount += len(p.FindAllString(text, -1))
	}

	for _, line := range strings.Split(text, "\n") {
		if bulletLinePattern.MatchString(line) {
			sig.bulletLineCount++
		}
	}

	if sig.wordCount > 0 {
		hits := len(keywordPattern.FindAllString(text, -1))
		sig.keywordDensity = float64(hits) / float64(sig.wordCount)
	}

	return sig
}
