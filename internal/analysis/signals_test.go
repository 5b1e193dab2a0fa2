package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSignals_ActionVerbsWholeWordCaseInsensitive(t *testing.T) {
	sig := extractSignals("LED the team. Managed projects. The misled intern left.")
	// "misled" must not count; "LED" and "Managed" must.
	assert.Equal(t, 2, sig.actionVerbCount)
}

func TestExtractSignals_QuantifiablePatterns(t *testing.T) {
	text := strings.Join([]string{
		"Increased revenue by 25%",
		"Saved $50,000 per quarter",
		"3 years of service",
		"Supported 200 customers",
	}, "\n")
	sig := extractSignals(text)
	assert.GreaterOrEqual(t, sig.quantifiableCount, 4)
}

func TestExtractSignals_BulletLines(t *testing.T) {
	text := "- first\n- second\n* third\n1. fourth\nplain line"
	sig := extractSignals(text)
	assert.Equal(t, 4, sig.bulletLineCount)
	assert.True(t, sig.formattingConsistent())
}

func TestExtractSignals_DateRanges(t *testing.T) {
	assert.True(t, extractSignals("Jan 2019 - Present").hasDateRanges)
	assert.True(t, extractSignals("2015 to 2018").hasDateRanges)
	assert.True(t, extractSignals("03/2020 - 11/2022").hasDateRanges)
	assert.False(t, extractSignals("worked for several years").hasDateRanges)
}

func TestExtractSignals_TableAndImageArtifacts(t *testing.T) {
	sig := extractSignals("| Skill | Level |\nSee photo.jpg for headshot")
	assert.True(t, sig.hasTables)
	assert.True(t, sig.hasImages)
	assert.False(t, sig.textOnly())
}

func TestExtractSignals_KeywordDensity(t *testing.T) {
	// 2 keyword hits in 10 words is well above the 2% threshold.
	sig := extractSignals("strong leadership and clear strategy across all ten words here")
	assert.True(t, sig.keywordsSufficient())

	sparse := extractSignals(strings.Repeat("lorem ipsum dolor sit amet ", 20))
	assert.False(t, sparse.keywordsSufficient())
}

func TestExtractSignals_LengthBand(t *testing.T) {
	short := extractSignals("only a few words")
	assert.False(t, short.lengthOK())

	mid := extractSignals(strings.Repeat("word ", 500))
	assert.True(t, mid.lengthOK())

	long := extractSignals(strings.Repeat("word ", 1500))
	assert.False(t, long.lengthOK())
}

func TestNormalizeText_UnifiesWhitespace(t *testing.T) {
	got := normalizeText("a\tb\r\nc   d\re")
	assert.Equal(t, "a b\nc d\ne", got)
}
