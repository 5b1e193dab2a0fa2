package analysis

import (
	"regexp"

	"github.com/jonathan/resume-review/internal/types"
)

// Contact-info detectors. Either one present counts as contact info.
var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d[\d\s().\-]{7,}\d)`)
)

// sectionRule declares how one canonical resume section is recognized. The
// rule set is plain data so it can be tested and extended without touching
// the scoring arithmetic.
type sectionRule struct {
	name     string
	patterns []*regexp.Regexp
}

var sectionRules = []sectionRule{
	{
		name: "summary",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^\s*(professional summary|summary|career objective|objective|profile|about me)\b`),
		},
	},
	{
		name: "experience",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^\s*(work experience|professional experience|experience|employment history|work history|career history)\b`),
		},
	},
	{
		name: "education",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^\s*(education|academic background|academic qualifications|qualifications)\b`),
			regexp.MustCompile(`(?i)\b(bachelor|master|ph\.?d|b\.?sc|m\.?sc|mba|university|college|diploma)\b`),
		},
	},
	{
		name: "skills",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^\s*(skills|technical skills|core competencies|competencies|technologies|areas of expertise|proficiencies)\b`),
		},
	},
}

// detectSections runs the declarative rule table over normalized text and
// returns presence flags for the canonical sections.
func detectSections(text string) types.SectionCompleteness {
	found := map[string]bool{}
	for _, rule := range sectionRules {
		for _, p := range rule.patterns {
			if p.MatchString(text) {
				found[rule.name] = true
				break
			}
		}
	}
	return types.SectionCompleteness{
		ContactInfo: emailPattern.MatchString(text) || phonePattern.MatchString(text),
		Summary:     found["summary"],
		Experience:  found["experience"],
		Education:   found["education"],
		Skills:      found["skills"],
	}
}
