package analysis

import "fmt"

// Score bands for narrative feedback.
const (
	bandExcellent = 85
	bandStrong    = 70
	bandFair      = 50
)

// buildFeedback selects a narrative template by score band and appends a
// strength/improvement count summary.
func buildFeedback(score, strengthCount, improvementCount int) string {
	var narrative string
	switch {
	case score >= bandExcellent:
		narrative = "Excellent resume. It covers every core section, reads actively, and should pass automated screening comfortably."
	case score >= bandStrong:
		narrative = "Strong resume with a solid structure. A few targeted changes would push it into the top tier."
	case score >= bandFair:
		narrative = "Decent starting point, but several sections need attention before this resume competes well."
	default:
		narrative = "This resume needs significant work. Focus on the high-priority improvements first: missing sections cost the most."
	}
	return fmt.Sprintf("%s We identified %d strengths and %d suggested improvements.",
		narrative, strengthCount, improvementCount)
}
