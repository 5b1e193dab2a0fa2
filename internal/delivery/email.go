package delivery

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/jonathan/resume-review/internal/types"
)

// ReportSubject is the fixed subject line for review report emails.
const ReportSubject = "Your resume review is ready"

type emailData struct {
	FirstName        string
	OverallScore     int
	ATSCompatibility int
	Strengths        []string
	Improvements     []types.Improvement
	DetailedFeedback string
}

var htmlTemplate = htmltemplate.Must(htmltemplate.New("report").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222; max-width: 640px; margin: 0 auto;">
  <h1>Hi {{.FirstName}}, your resume review is ready</h1>
  <p class="scores">
    Overall score: <strong>{{.OverallScore}}/100</strong><br>
    ATS compatibility: <strong>{{.ATSCompatibility}}/100</strong>
  </p>
  <p>{{.DetailedFeedback}}</p>
  <h2>What works well</h2>
  <ul class="strengths">
  {{range .Strengths}}<li>{{.}}</li>
  {{end}}</ul>
  <h2>Suggested improvements</h2>
  <ol class="improvements">
  {{range .Improvements}}<li>
    <strong>{{.Category}}</strong> ({{.Priority}} priority): {{.Issue}}.<br>
    {{.Suggestion}}.{{if .Example}}<br><em>Example: {{.Example}}</em>{{end}}
  </li>
  {{end}}</ol>
</body>
</html>
`))

var textTemplate = texttemplate.Must(texttemplate.New("report").Parse(`Hi {{.FirstName}},

Your resume review is ready.

Overall score: {{.OverallScore}}/100
ATS compatibility: {{.ATSCompatibility}}/100

{{.DetailedFeedback}}

What works well:
{{range .Strengths}}  * {{.}}
{{end}}
Suggested improvements:
{{range .Improvements}}  * [{{.Priority}}] {{.Category}}: {{.Issue}}. {{.Suggestion}}.{{if .Example}} Example: {{.Example}}{{end}}
{{end}}`))

// renderReportEmail builds the HTML and plain-text bodies for a submission's
// report email. The submission must be analyzed.
func renderReportEmail(sub *types.Submission) (htmlBody, textBody string, err error) {
	result := sub.AnalysisResult()
	if result == nil {
		return "", "", &ErrNotAnalyzed{SubmissionID: sub.ID}
	}

	data := emailData{
		FirstName:        sub.FirstName,
		OverallScore:     result.OverallScore,
		ATSCompatibility: result.ATSCompatibility,
		Strengths:        result.Strengths,
		Improvements:     result.Improvements,
		DetailedFeedback: result.DetailedFeedback,
	}

	var html strings.Builder
	if err := htmlTemplate.Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML body: %w", err)
	}
	var text strings.Builder
	if err := textTemplate.Execute(&text, data); err != nil {
		return "", "", fmt.Errorf("failed to render text body: %w", err)
	}
	return html.String(), text.String(), nil
}
