package analysis

import "github.com/jonathan/resume-review/internal/types"

// Overall rubric weights. The fixed allocations sum to 100.
const (
	contactWeight      = 10
	summaryWeight      = 15
	experienceWeight   = 15
	actionVerbBonus    = 5
	quantifiableBonus  = 5
	educationWeight    = 10
	skillsWeight       = 10
	keywordBonus       = 5
	atsSectionsBonus   = 5
	atsTextOnlyBonus   = 5
	atsKeywordBonus    = 5
	lengthWeight       = 4
	bulletWeight       = 3
	dateFormatWeight   = 3
)

// ATS sub-score weights (separate 100-point rubric).
const (
	atsHeaderPoints   = 25
	atsFontPoints     = 15
	atsNoTablePoints  = 15
	atsNoImagePoints  = 15
	atsKeywordPoints  = 20
	atsDatePoints     = 10
)

// computeOverallScore applies the fixed point-allocation rubric and clamps
// the result to [0,100].
func computeOverallScore(sections types.SectionCompleteness, sig signals) int {
	score := 0

	if sections.ContactInfo {
		score += contactWeight
	}
	if sections.Summary {
		score += summaryWeight
	}
	if sections.Experience {
		score += experienceWeight
		if sig.actionVerbCount >= actionVerbTarget {
			score += actionVerbBonus
		}
		if sig.quantifiableCount >= quantifiableTarget {
			score += quantifiableBonus
		}
	}
	if sections.Education {
		score += educationWeight
	}
	if sections.Skills {
		score += skillsWeight
		if sig.keywordsSufficient() {
			score += keywordBonus
		}
	}

	// ATS-related bonus.
	if sections.Experience && sections.Education && sections.Skills {
		score += atsSectionsBonus
	}
	if sig.textOnly() {
		score += atsTextOnlyBonus
	}
	if sig.keywordsSufficient() {
		score += atsKeywordBonus
	}

	// Formatting and structure.
	if sig.lengthOK() {
		score += lengthWeight
	}
	if sig.formattingConsistent() {
		score += bulletWeight
	}
	if sig.hasDateRanges {
		score += dateFormatWeight
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// computeATSScore estimates how well the document survives applicant
// tracking systems, capped at 100. Fonts are always considered standard
// because scoring runs on extracted plain text.
func computeATSScore(sections types.SectionCompleteness, sig signals) int {
	score := atsFontPoints

	if sections.Experience && sections.Education && sections.Skills {
		score += atsHeaderPoints
	}
	if !sig.hasTables {
		score += atsNoTablePoints
	}
	if !sig.hasImages {
		score += atsNoImagePoints
	}
	if sig.keywordsSufficient() {
		score += atsKeywordPoints
	}
	if sig.hasDateRanges {
		score += atsDatePoints
	}

	if score > 100 {
		score = 100
	}
	return score
}
