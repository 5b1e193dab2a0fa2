package schemas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-review/internal/types"
)

func validResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		OverallScore:     72,
		ATSCompatibility: 80,
		Strengths:        []string{"Consistent bullet-point formatting"},
		Improvements: []types.Improvement{
			{Category: "ATS Keywords", Priority: types.PriorityMedium, Issue: "Low keyword density", Suggestion: "Mirror terms from the job posting"},
		},
		SectionCompleteness: types.SectionCompleteness{ContactInfo: true, Experience: true},
		DetailedFeedback:    "Decent starting point.",
		AnalyzedAt:          time.Now().UTC(),
	}
}

func TestValidateAnalysisResult_Valid(t *testing.T) {
	assert.NoError(t, ValidateAnalysisResult(validResult()))
}

func TestValidateAnalysisResult_ScoreOutOfRange(t *testing.T) {
	result := validResult()
	result.OverallScore = 101

	err := ValidateAnalysisResult(result)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)
	assert.Equal(t, "overall_score", verr.Errors[0].Field)
}

func TestValidateAnalysisResult_EmptyStrengths(t *testing.T) {
	result := validResult()
	result.Strengths = []string{}

	var verr *ValidationError
	require.ErrorAs(t, ValidateAnalysisResult(result), &verr)
}

func TestValidateAnalysisResult_BadPriority(t *testing.T) {
	result := validResult()
	result.Improvements[0].Priority = "urgent"

	var verr *ValidationError
	require.ErrorAs(t, ValidateAnalysisResult(result), &verr)
}

func TestValidateAnalysisResult_TooManyImprovements(t *testing.T) {
	result := validResult()
	for i := 0; i < 9; i++ {
		result.Improvements = append(result.Improvements, types.Improvement{
			Category: "Formatting", Priority: types.PriorityLow, Issue: "x", Suggestion: "y",
		})
	}

	var verr *ValidationError
	require.ErrorAs(t, ValidateAnalysisResult(result), &verr)
}

func TestValidationError_MessageListsFields(t *testing.T) {
	verr := &ValidationError{Errors: []FieldError{
		{Field: "overall_score", Message: "Must be less than or equal to 100"},
		{Field: "strengths", Message: "Array must have at least 1 items"},
	}}
	msg := verr.Error()
	assert.Contains(t, msg, "overall_score")
	assert.Contains(t, msg, "strengths")
}
