// Package types provides type definitions for structured data used throughout the resume-review system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DeliveryStatus tracks where a submission sits in the report-delivery lifecycle.
type DeliveryStatus string

const (
	DeliveryNotQueued DeliveryStatus = "not_queued"
	DeliveryQueued    DeliveryStatus = "queued"
	DeliveryRetrying  DeliveryStatus = "retrying"
	DeliverySent      DeliveryStatus = "sent"
	DeliveryFailed    DeliveryStatus = "failed"
)

// ApplicantInfo holds the applicant fields captured at upload time.
// These are immutable after the submission is created.
type ApplicantInfo struct {
	FirstName string `json:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name" validate:"required,min=1"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
}

// Validate validates the ApplicantInfo using the validator.
func (a *ApplicantInfo) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// FileMetadata describes the uploaded document as declared by the client.
type FileMetadata struct {
	OriginalFilename string `json:"original_filename" validate:"required"`
	MimeType         string `json:"mime_type" validate:"required"`
	Size             int64  `json:"size" validate:"required,gt=0"`
}

// Validate validates the FileMetadata using the validator.
func (m *FileMetadata) Validate() error {
	validate := validator.New()
	return validate.Struct(m)
}

// Submission is the central durable entity: one uploaded resume plus its
// analysis report and delivery state. Analysis fields are either all nil
// (not yet analyzed) or all set. Review fields are owned by the admin
// workflow and passed through untouched.
type Submission struct {
	ID         int64     `json:"-"`
	ExternalID uuid.UUID `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`

	OriginalFilename string `json:"original_filename"`
	StoredPath       string `json:"stored_path"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`

	OverallScore     *int            `json:"overall_score,omitempty"`
	ATSCompatibility *int            `json:"ats_compatibility,omitempty"`
	Report           *AnalysisReport `json:"report,omitempty"`
	AnalyzedAt       *time.Time      `json:"analyzed_at,omitempty"`

	ReviewStatus string     `json:"review_status"`
	AdminNotes   string     `json:"admin_notes,omitempty"`
	ReviewedBy   *string    `json:"reviewed_by,omitempty"`
	Converted    bool       `json:"converted"`
	ConvertedAt  *time.Time `json:"converted_at,omitempty"`

	DeliveryStatus    DeliveryStatus `json:"delivery_status"`
	ScheduledSendAt   *time.Time     `json:"scheduled_send_at,omitempty"`
	DeliveryAttempts  int            `json:"delivery_attempts"`
	LastAttemptAt     *time.Time     `json:"last_attempt_at,omitempty"`
	SentAt            *time.Time     `json:"sent_at,omitempty"`
	LastDeliveryError *string        `json:"last_delivery_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Analyzed reports whether the analysis fields are populated.
func (s *Submission) Analyzed() bool {
	return s.OverallScore != nil && s.ATSCompatibility != nil && s.Report != nil && s.AnalyzedAt != nil
}

// AnalysisResult reconstructs the full result from the submission's
// analysis columns. Returns nil when the submission is not yet analyzed.
func (s *Submission) AnalysisResult() *AnalysisResult {
	if !s.Analyzed() {
		return nil
	}
	return &AnalysisResult{
		OverallScore:        *s.OverallScore,
		ATSCompatibility:    *s.ATSCompatibility,
		Strengths:           s.Report.Strengths,
		Improvements:        s.Report.Improvements,
		SectionCompleteness: s.Report.SectionCompleteness,
		DetailedFeedback:    s.Report.DetailedFeedback,
		AnalyzedAt:          *s.AnalyzedAt,
	}
}
