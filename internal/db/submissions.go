package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-review/internal/types"
)

// submissionColumns is the canonical column list shared by every read path.
const submissionColumns = `id, external_id, first_name, last_name, email, phone,
	original_filename, stored_path, file_size, mime_type,
	overall_score, ats_score, report, analyzed_at,
	review_status, admin_notes, reviewed_by, converted, converted_at,
	delivery_status, scheduled_send_at, delivery_attempts, last_attempt_at, sent_at, last_delivery_error,
	created_at`

// CreateSubmission inserts a new submission row and fills in its generated
// identifiers and creation time. A fresh external UUID is assigned unless the
// caller already set one.
func (db *DB) CreateSubmission(ctx context.Context, sub *types.Submission) error {
	if sub.ExternalID == uuid.Nil {
		sub.ExternalID = uuid.New()
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO submissions
		 (external_id, first_name, last_name, email, phone,
		  original_filename, stored_path, file_size, mime_type,
		  review_status, delivery_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending', 'not_queued')
		 RETURNING id, created_at`,
		sub.ExternalID, sub.FirstName, sub.LastName, sub.Email, sub.Phone,
		sub.OriginalFilename, sub.StoredPath, sub.FileSize, sub.MimeType,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	sub.ReviewStatus = "pending"
	sub.DeliveryStatus = types.DeliveryNotQueued
	return nil
}

// GetSubmissionByID retrieves a submission by internal id. Returns nil when
// no row exists.
func (db *DB) GetSubmissionByID(ctx context.Context, id int64) (*types.Submission, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	return scanSubmission(row)
}

// GetSubmissionByExternalID retrieves a submission by its public identifier.
// Returns nil when no row exists.
func (db *DB) GetSubmissionByExternalID(ctx context.Context, externalID uuid.UUID) (*types.Submission, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE external_id = $1`, externalID)
	return scanSubmission(row)
}

// SaveAnalysis persists the analysis fields as one unit so a submission is
// always either fully analyzed or not analyzed at all.
func (db *DB) SaveAnalysis(ctx context.Context, id int64, result *types.AnalysisResult) error {
	reportJSON, err := json.Marshal(result.Report())
	if err != nil {
		return fmt.Errorf("failed to marshal analysis report: %w", err)
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE submissions
		 SET overall_score = $1, ats_score = $2, report = $3, analyzed_at = $4
		 WHERE id = $5`,
		result.OverallScore, result.ATSCompatibility, reportJSON, result.AnalyzedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("submission not found: %d", id)
	}
	return nil
}

// SubmissionFilters holds optional filters for listing submissions
type SubmissionFilters struct {
	DeliveryStatus types.DeliveryStatus
	ReviewStatus   string
	Limit          int
}

// ListSubmissions retrieves submissions with optional filters, most recent
// first. This read path serves the external admin layer.
func (db *DB) ListSubmissions(ctx context.Context, filters SubmissionFilters) ([]types.Submission, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.DeliveryStatus != "" {
		query += fmt.Sprintf(" AND delivery_status = $%d", argNum)
		args = append(args, string(filters.DeliveryStatus))
		argNum++
	}
	if filters.ReviewStatus != "" {
		query += fmt.Sprintf(" AND review_status = $%d", argNum)
		args = append(args, filters.ReviewStatus)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []types.Submission
	for rows.Next() {
		sub, err := scanSubmissionRow(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

// SetSchedule queues a submission for delivery at the given time. The guard
// on delivery_status makes scheduling idempotent: only a not-queued record
// can be queued, so a double-submit can never reset the attempt count.
// Returns false when the record was not in the not-queued state.
func (db *DB) SetSchedule(ctx context.Context, id int64, at time.Time) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE submissions
		 SET delivery_status = 'queued', scheduled_send_at = $1
		 WHERE id = $2 AND delivery_status = 'not_queued'`,
		at, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to schedule submission: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ClaimDue atomically claims up to limit due submissions: status moves to
// retrying and the attempt count is consumed before any send is attempted,
// inside a single statement. FOR UPDATE SKIP LOCKED makes the claim race-free
// under concurrent workers, and counting the attempt at claim time bounds
// total retries even if the process crashes mid-send.
func (db *DB) ClaimDue(ctx context.Context, maxAttempts, limit int) ([]types.Submission, error) {
	rows, err := db.pool.Query(ctx,
		`UPDATE submissions
		 SET delivery_status = 'retrying',
		     delivery_attempts = delivery_attempts + 1,
		     last_attempt_at = NOW()
		 WHERE id IN (
		     SELECT id FROM submissions
		     WHERE delivery_status IN ('queued', 'retrying')
		       AND scheduled_send_at <= NOW()
		       AND delivery_attempts < $1
		     ORDER BY scheduled_send_at ASC
		     LIMIT $2
		     FOR UPDATE SKIP LOCKED)
		 RETURNING `+submissionColumns,
		maxAttempts, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due submissions: %w", err)
	}
	defer rows.Close()

	var subs []types.Submission
	for rows.Next() {
		sub, err := scanSubmissionRow(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}

	// UPDATE ... RETURNING does not preserve the subquery order.
	sort.SliceStable(subs, func(i, j int) bool {
		switch {
		case subs[i].ScheduledSendAt == nil:
			return false
		case subs[j].ScheduledSendAt == nil:
			return true
		default:
			return subs[i].ScheduledSendAt.Before(*subs[j].ScheduledSendAt)
		}
	})
	return subs, nil
}

// ClaimByID claims a single queued or retrying submission regardless of its
// scheduled time, consuming one attempt. Returns nil when the record is not
// claimable.
func (db *DB) ClaimByID(ctx context.Context, id int64, maxAttempts int) (*types.Submission, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE submissions
		 SET delivery_status = 'retrying',
		     delivery_attempts = delivery_attempts + 1,
		     last_attempt_at = NOW()
		 WHERE id = $1
		   AND delivery_status IN ('queued', 'retrying')
		   AND delivery_attempts < $2
		 RETURNING `+submissionColumns,
		id, maxAttempts,
	)
	return scanSubmission(row)
}

// MarkSent finalizes a successful delivery and clears the last error.
func (db *DB) MarkSent(ctx context.Context, id int64) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE submissions
		 SET delivery_status = 'sent', sent_at = NOW(), last_delivery_error = NULL
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark submission sent: %w", err)
	}
	return nil
}

// MarkRetry records a failed attempt and reschedules the next one.
func (db *DB) MarkRetry(ctx context.Context, id int64, errMsg string, next time.Time) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE submissions
		 SET delivery_status = 'retrying', scheduled_send_at = $1, last_delivery_error = $2
		 WHERE id = $3`,
		next, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark submission for retry: %w", err)
	}
	return nil
}

// MarkFailed records terminal delivery failure after retries are exhausted.
func (db *DB) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE submissions
		 SET delivery_status = 'failed', last_delivery_error = $1
		 WHERE id = $2`,
		errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark submission failed: %w", err)
	}
	return nil
}

// ResetDeliveryForRetry zeroes the attempt count and queues the submission
// for immediate delivery. Admin override path. Only an analyzed record that
// has not already been delivered is eligible: a submission with no report
// would just burn its attempts on render failures, and re-queueing a sent
// record would email the applicant twice. Returns false when the record is
// missing or ineligible.
func (db *DB) ResetDeliveryForRetry(ctx context.Context, id int64) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE submissions
		 SET delivery_status = 'queued', delivery_attempts = 0, scheduled_send_at = NOW()
		 WHERE id = $1
		   AND analyzed_at IS NOT NULL
		   AND delivery_status <> 'sent'`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to reset delivery state: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanSubmission scans a single-row query, mapping pgx.ErrNoRows to nil.
func scanSubmission(row pgx.Row) (*types.Submission, error) {
	sub, err := scanSubmissionRow(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

func scanSubmissionRow(row pgx.Row) (*types.Submission, error) {
	var sub types.Submission
	var reportJSON []byte
	var phone, adminNotes *string
	var deliveryStatus string

	err := row.Scan(
		&sub.ID, &sub.ExternalID, &sub.FirstName, &sub.LastName, &sub.Email, &phone,
		&sub.OriginalFilename, &sub.StoredPath, &sub.FileSize, &sub.MimeType,
		&sub.OverallScore, &sub.ATSCompatibility, &reportJSON, &sub.AnalyzedAt,
		&sub.ReviewStatus, &adminNotes, &sub.ReviewedBy, &sub.Converted, &sub.ConvertedAt,
		&deliveryStatus, &sub.ScheduledSendAt, &sub.DeliveryAttempts, &sub.LastAttemptAt, &sub.SentAt, &sub.LastDeliveryError,
		&sub.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan submission: %w", err)
	}

	if phone != nil {
		sub.Phone = *phone
	}
	if adminNotes != nil {
		sub.AdminNotes = *adminNotes
	}
	sub.DeliveryStatus = types.DeliveryStatus(deliveryStatus)
	if len(reportJSON) > 0 {
		var report types.AnalysisReport
		if err := json.Unmarshal(reportJSON, &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis report: %w", err)
		}
		sub.Report = &report
	}
	return &sub, nil
}
