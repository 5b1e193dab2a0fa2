// Package pipeline provides the high-level orchestration for processing one
// resume submission: store, extract, analyze, persist, schedule.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-review/internal/analysis"
	"github.com/jonathan/resume-review/internal/delivery"
	"github.com/jonathan/resume-review/internal/schemas"
	"github.com/jonathan/resume-review/internal/storage"
	"github.com/jonathan/resume-review/internal/types"
	"github.com/jonathan/resume-review/pkg/events"
	"github.com/jonathan/resume-review/pkg/metrics"
)

// Extractor turns stored document bytes into plain text. Extraction failures
// are passed through, never retried here.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Store is the persistence surface the pipeline needs. *db.DB satisfies it.
type Store interface {
	CreateSubmission(ctx context.Context, sub *types.Submission) error
	SaveAnalysis(ctx context.Context, id int64, result *types.AnalysisResult) error
	GetSubmissionByID(ctx context.Context, id int64) (*types.Submission, error)
}

// UploadResult is what the upload path returns to the caller.
type UploadResult struct {
	SubmissionID uuid.UUID             `json:"submission_id"`
	InternalID   int64                 `json:"-"`
	Analysis     *types.AnalysisResult `json:"analysis,omitempty"`
}

// Service wires the storage engine, analyzer, persistence, and delivery
// scheduler into the synchronous upload path.
type Service struct {
	engine    *storage.Engine
	store     Store
	extractor Extractor
	scheduler *delivery.Scheduler
	sink      events.Sink
}

// NewService creates a Service. sink may be nil.
func NewService(engine *storage.Engine, store Store, extractor Extractor, scheduler *delivery.Scheduler, sink events.Sink) *Service {
	if sink == nil {
		sink = events.NewNop()
	}
	return &Service{engine: engine, store: store, extractor: extractor, scheduler: scheduler, sink: sink}
}

// StoreAndAnalyze runs the full synchronous pipeline for one upload.
//
// The submission record persists even when text extraction or analysis fails:
// in that case the returned UploadResult still carries the new submission ID,
// the analysis fields stay absent, delivery is not scheduled, and the
// extraction or analysis error is returned alongside the result so the caller
// can surface it. ReanalyzeByID covers the out-of-band retry.
func (s *Service) StoreAndAnalyze(ctx context.Context, data []byte, meta types.FileMetadata, applicant types.ApplicantInfo) (*UploadResult, error) {
	if err := applicant.Validate(); err != nil {
		return nil, fmt.Errorf("invalid applicant data: %w", err)
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid file metadata: %w", err)
	}

	relPath, err := s.engine.Store(ctx, data, meta)
	if err != nil {
		metrics.RecordUpload(uploadOutcome(err))
		return nil, err
	}
	metrics.RecordUpload("stored")

	sub := &types.Submission{
		FirstName:        applicant.FirstName,
		LastName:         applicant.LastName,
		Email:            applicant.Email,
		Phone:            applicant.Phone,
		OriginalFilename: meta.OriginalFilename,
		StoredPath:       relPath,
		FileSize:         meta.Size,
		MimeType:         meta.MimeType,
	}
	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to persist submission: %w", err)
	}

	result := &UploadResult{SubmissionID: sub.ExternalID, InternalID: sub.ID}

	analysisResult, err := s.analyzeAndPersist(ctx, sub.ID, sub.ExternalID, data, meta.MimeType)
	if err != nil {
		return result, err
	}
	result.Analysis = analysisResult

	if err := s.scheduler.Schedule(ctx, sub.ID, delivery.DefaultDelayHours); err != nil {
		return result, fmt.Errorf("failed to schedule report delivery: %w", err)
	}
	return result, nil
}

// Download retrieves stored document bytes by relative path.
func (s *Service) Download(ctx context.Context, relativePath string) ([]byte, error) {
	return s.engine.Retrieve(ctx, relativePath)
}

// ReanalyzeByID re-runs extraction and analysis for a persisted submission
// whose earlier analysis failed, then schedules delivery if the record was
// never queued.
func (s *Service) ReanalyzeByID(ctx context.Context, id int64) (*types.AnalysisResult, error) {
	sub, err := s.store.GetSubmissionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	if sub == nil {
		return nil, fmt.Errorf("submission not found: %d", id)
	}

	data, err := s.engine.Retrieve(ctx, sub.StoredPath)
	if err != nil {
		return nil, err
	}

	result, err := s.analyzeAndPersist(ctx, sub.ID, sub.ExternalID, data, sub.MimeType)
	if err != nil {
		return nil, err
	}

	if sub.DeliveryStatus == types.DeliveryNotQueued {
		if err := s.scheduler.Schedule(ctx, sub.ID, delivery.DefaultDelayHours); err != nil {
			return result, fmt.Errorf("failed to schedule report delivery: %w", err)
		}
	}
	return result, nil
}

func (s *Service) analyzeAndPersist(ctx context.Context, id int64, externalID uuid.UUID, data []byte, mimeType string) (*types.AnalysisResult, error) {
	text, err := s.extractor.ExtractText(ctx, data, mimeType)
	if err != nil {
		metrics.RecordAnalysis("failed")
		s.sink.Analysis(ctx, externalID.String(), 0, err)
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	result, err := analysis.Analyze(text)
	if err != nil {
		metrics.RecordAnalysis("failed")
		s.sink.Analysis(ctx, externalID.String(), 0, err)
		return nil, err
	}

	if err := schemas.ValidateAnalysisResult(result); err != nil {
		metrics.RecordAnalysis("failed")
		s.sink.Analysis(ctx, externalID.String(), result.OverallScore, err)
		return nil, fmt.Errorf("analysis produced an invalid report: %w", err)
	}

	if err := s.store.SaveAnalysis(ctx, id, result); err != nil {
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	metrics.RecordAnalysis("ok")
	s.sink.Analysis(ctx, externalID.String(), result.OverallScore, nil)
	return result, nil
}

func uploadOutcome(err error) string {
	switch err.(type) {
	case *storage.ErrFileTooLarge:
		return "rejected_size"
	case *storage.ErrInvalidFileType:
		return "rejected_type"
	default:
		return "error"
	}
}
