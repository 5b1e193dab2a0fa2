// Package delivery schedules review report emails far in the future and
// drives them to completion with bounded retries.
package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-review/internal/types"
)

// Store is the persistence surface the scheduler and worker need. *db.DB
// satisfies it.
type Store interface {
	GetSubmissionByID(ctx context.Context, id int64) (*types.Submission, error)
	SetSchedule(ctx context.Context, id int64, at time.Time) (bool, error)
	ClaimDue(ctx context.Context, maxAttempts, limit int) ([]types.Submission, error)
	ClaimByID(ctx context.Context, id int64, maxAttempts int) (*types.Submission, error)
	MarkSent(ctx context.Context, id int64) error
	MarkRetry(ctx context.Context, id int64, errMsg string, next time.Time) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
	ResetDeliveryForRetry(ctx context.Context, id int64) (bool, error)
}

// DefaultDelayHours is how far in the future reports are scheduled.
const DefaultDelayHours = 24

// Scheduler queues analyzed submissions for future delivery.
type Scheduler struct {
	store Store
	now   func() time.Time
}

// NewScheduler creates a Scheduler over the given store.
func NewScheduler(store Store) *Scheduler {
	return &Scheduler{store: store, now: time.Now}
}

// Schedule queues a submission's report for delivery delayHours from now
// (DefaultDelayHours when delayHours <= 0). A record that is already queued,
// retrying, sent, or failed is rejected with ErrAlreadyScheduled so that a
// duplicate call can never reset the attempt count. An unanalyzed record
// cannot be queued.
func (s *Scheduler) Schedule(ctx context.Context, submissionID int64, delayHours int) error {
	if delayHours <= 0 {
		delayHours = DefaultDelayHours
	}

	sub, err := s.store.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("failed to load submission: %w", err)
	}
	if sub == nil {
		return fmt.Errorf("submission not found: %d", submissionID)
	}
	if !sub.Analyzed() {
		return &ErrNotAnalyzed{SubmissionID: submissionID}
	}
	if sub.DeliveryStatus != types.DeliveryNotQueued {
		return &ErrAlreadyScheduled{SubmissionID: submissionID, Status: sub.DeliveryStatus}
	}

	sendAt := s.now().Add(time.Duration(delayHours) * time.Hour)
	ok, err := s.store.SetSchedule(ctx, submissionID, sendAt)
	if err != nil {
		return fmt.Errorf("failed to schedule delivery: %w", err)
	}
	if !ok {
		// Lost a race with another scheduler; the guard in the store kept
		// the existing state intact.
		return &ErrAlreadyScheduled{SubmissionID: submissionID, Status: sub.DeliveryStatus}
	}
	return nil
}
