package analysis

import (
	"fmt"
	"sort"

	"github.com/jonathan/resume-review/internal/types"
)

// maxImprovements caps the report at the highest-priority items.
const maxImprovements = 8

// buildImprovements emits one entry per failing signal, in detection order,
// then stably sorts high → medium → low and truncates.
func buildImprovements(sections types.SectionCompleteness, sig signals) []types.Improvement {
	var items []types.Improvement

	if !sections.ContactInfo {
		items = append(items, types.Improvement{
			Category:   "Contact Information",
			Priority:   types.PriorityHigh,
			Issue:      "No email address or phone number was found",
			Suggestion: "Add a professional email address and phone number at the top of your resume",
			Example:    "jane.doe@example.com | (555) 123-4567",
		})
	}
	if !sections.Summary {
		items = append(items, types.Improvement{
			Category:   "Professional Summary",
			Priority:   types.PriorityHigh,
			Issue:      "No professional summary section was found",
			Suggestion: "Open with a 2-3 sentence summary of your experience and what you bring to the role",
		})
	}
	if !sections.Experience {
		items = append(items, types.Improvement{
			Category:   "Work Experience",
			Priority:   types.PriorityHigh,
			Issue:      "No work experience section was found",
			Suggestion: "Add a work experience section listing roles in reverse-chronological order",
		})
	}
	if !sections.Education {
		items = append(items, types.Improvement{
			Category:   "Education",
			Priority:   types.PriorityHigh,
			Issue:      "No education section was found",
			Suggestion: "Add an education section with your degrees, institutions, and graduation years",
		})
	}
	if !sections.Skills {
		items = append(items, types.Improvement{
			Category:   "Skills",
			Priority:   types.PriorityHigh,
			Issue:      "No skills section was found",
			Suggestion: "Add a dedicated skills section listing the tools and competencies relevant to your target role",
		})
	}

	if sig.actionVerbCount < actionVerbTarget {
		items = append(items, types.Improvement{
			Category:   "Action Verbs",
			Priority:   types.PriorityMedium,
			Issue:      fmt.Sprintf("Only %d strong action verbs were found (aim for at least %d)", sig.actionVerbCount, actionVerbTarget),
			Suggestion: "Start each bullet point with a strong action verb",
			Example:    "Led a team of five engineers to deliver the billing migration",
		})
	}
	if sig.quantifiableCount < quantifiableTarget {
		items = append(items, types.Improvement{
			Category:   "Quantifiable Achievements",
			Priority:   types.PriorityMedium,
			Issue:      fmt.Sprintf("Only %d quantified results were found (aim for at least %d)", sig.quantifiableCount, quantifiableTarget),
			Suggestion: "Back your achievements with numbers: percentages, money, time saved, or people affected",
			Example:    "Reduced deployment time by 40%",
		})
	}
	if !sig.keywordsSufficient() {
		items = append(items, types.Improvement{
			Category:   "ATS Keywords",
			Priority:   types.PriorityMedium,
			Issue:      "The density of professional keywords is low, which weakens automated screening results",
			Suggestion: "Mirror the vocabulary of the job postings you target: leadership, strategy, stakeholder, and similar terms",
		})
	}
	if !sig.textOnly() {
		items = append(items, types.Improvement{
			Category:   "ATS Formatting",
			Priority:   types.PriorityMedium,
			Issue:      "Tables or image artifacts were detected, which many applicant tracking systems cannot parse",
			Suggestion: "Replace tables and graphics with plain text and simple bullet lists",
		})
	}

	if !sig.lengthOK() {
		issue := fmt.Sprintf("Your resume is %d words, which reads as too short", sig.wordCount)
		suggestion := "Expand your experience bullets until the resume reaches roughly one full page"
		if sig.wordCount > maxWordCount {
			issue = fmt.Sprintf("Your resume is %d words, which reads as too long", sig.wordCount)
			suggestion = "Trim older or less relevant roles; most screeners expect one to two pages"
		}
		items = append(items, types.Improvement{
			Category:   "Resume Length",
			Priority:   types.PriorityLow,
			Issue:      issue,
			Suggestion: suggestion,
		})
	}
	if !sig.formattingConsistent() {
		items = append(items, types.Improvement{
			Category:   "Formatting",
			Priority:   types.PriorityLow,
			Issue:      "Too few bullet points were found to establish a consistent structure",
			Suggestion: "Format your experience as bullet lists with at least three bullets per role",
		})
	}
	if !sig.hasDateRanges {
		items = append(items, types.Improvement{
			Category:   "Date Formatting",
			Priority:   types.PriorityLow,
			Issue:      "No recognizable employment date ranges were found",
			Suggestion: "Add a date range to every role",
			Example:    "Jan 2021 - Present",
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority.Rank() < items[j].Priority.Rank()
	})
	if len(items) > maxImprovements {
		items = items[:maxImprovements]
	}
	return items
}

// buildStrengths derives up to five positives from the same signals. The list
// is never empty: a generic placeholder is emitted when nothing qualifies.
func buildStrengths(sections types.SectionCompleteness, sig signals) []string {
	var strengths []string

	if sections.Experience && sections.Education && sections.Skills {
		strengths = append(strengths, "All core sections (experience, education, skills) are present")
	}
	if sig.actionVerbCount >= actionVerbTarget {
		strengths = append(strengths, fmt.Sprintf("Strong action verbs used throughout (%d found)", sig.actionVerbCount))
	}
	if sig.quantifiableCount >= quantifiableTarget {
		strengths = append(strengths, fmt.Sprintf("Achievements are backed by numbers (%d quantified results)", sig.quantifiableCount))
	}
	if sig.keywordsSufficient() {
		strengths = append(strengths, "Good density of professional keywords for automated screening")
	}
	if sig.lengthOK() {
		strengths = append(strengths, "Resume length sits in the recommended range")
	}
	if sig.formattingConsistent() {
		strengths = append(strengths, "Consistent bullet-point formatting")
	}
	if sig.hasDateRanges {
		strengths = append(strengths, "Employment dates are clearly formatted")
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "Your resume provides a foundation to build on")
	}
	if len(strengths) > 5 {
		strengths = strengths[:5]
	}
	return strengths
}
