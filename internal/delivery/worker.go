package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-review/internal/alerting"
	"github.com/jonathan/resume-review/internal/types"
	"github.com/jonathan/resume-review/pkg/events"
	"github.com/jonathan/resume-review/pkg/metrics"
)

// Worker defaults.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 30 * time.Minute
	DefaultBatchSize   = 100
	DefaultSendTimeout = 30 * time.Second
)

// WorkerConfig tunes the delivery worker. Zero values select defaults.
type WorkerConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
	BatchSize   int
	SendTimeout time.Duration
}

// Stats summarizes one ProcessDue run.
type Stats struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Worker delivers due report emails with bounded retries. Records are
// processed sequentially in scheduled-time order; each record's state
// transition is scoped to its own row, so no global lock is needed.
type Worker struct {
	store  Store
	mailer Mailer
	sink   events.Sink
	alerts *alerting.Service
	cfg    WorkerConfig
	now    func() time.Time
}

// NewWorker creates a Worker. sink and alerts may be nil.
func NewWorker(store Store, mailer Mailer, sink events.Sink, alerts *alerting.Service, cfg WorkerConfig) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}
	if sink == nil {
		sink = events.NewNop()
	}
	if alerts == nil {
		alerts = alerting.NewService(sink, 0)
	}
	return &Worker{store: store, mailer: mailer, sink: sink, alerts: alerts, cfg: cfg, now: time.Now}
}

// ProcessDue claims every due submission (status queued or retrying,
// scheduled time passed, attempts remaining) and attempts delivery for each.
// The claim itself consumes the attempt, so a crash between claim and send
// still counts against the retry budget. Transient failures are recorded and
// rescheduled, never returned; the error return covers only store access.
func (w *Worker) ProcessDue(ctx context.Context) (Stats, error) {
	var stats Stats

	batch, err := w.store.ClaimDue(ctx, w.cfg.MaxAttempts, w.cfg.BatchSize)
	if err != nil {
		return stats, fmt.Errorf("failed to claim due submissions: %w", err)
	}
	metrics.RecordDeliveryBatch(len(batch))

	for i := range batch {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if w.deliver(ctx, &batch[i]) {
			stats.Sent++
		} else {
			stats.Failed++
		}
	}
	return stats, nil
}

// RetryNow resets a submission's attempt count and forces an immediate
// delivery attempt, bypassing the schedule. Admin override. Returns whether
// the email was sent.
func (w *Worker) RetryNow(ctx context.Context, submissionID int64) (bool, error) {
	ok, err := w.store.ResetDeliveryForRetry(ctx, submissionID)
	if err != nil {
		return false, fmt.Errorf("failed to reset delivery state: %w", err)
	}
	if !ok {
		return false, nil
	}

	sub, err := w.store.ClaimByID(ctx, submissionID, w.cfg.MaxAttempts)
	if err != nil {
		return false, fmt.Errorf("failed to claim submission: %w", err)
	}
	if sub == nil {
		return false, nil
	}
	return w.deliver(ctx, sub), nil
}

// deliver attempts one send for an already-claimed submission and records the
// outcome. Reports whether the send succeeded.
func (w *Worker) deliver(ctx context.Context, sub *types.Submission) bool {
	err := w.sendReport(ctx, sub)
	if err == nil {
		if markErr := w.store.MarkSent(ctx, sub.ID); markErr != nil {
			w.sink.Delivery(ctx, sub.ExternalID.String(), sub.DeliveryAttempts, "mark_sent_error", markErr)
		}
		w.sink.Delivery(ctx, sub.ExternalID.String(), sub.DeliveryAttempts, string(types.DeliverySent), nil)
		metrics.RecordDeliveryAttempt("sent")
		return true
	}

	failure := &ErrDeliveryFailed{Message: "send attempt failed", Cause: err}
	if sub.DeliveryAttempts >= w.cfg.MaxAttempts {
		exhausted := &ErrDeliveryExhausted{SubmissionID: sub.ID, Attempts: sub.DeliveryAttempts}
		if markErr := w.store.MarkFailed(ctx, sub.ID, failure.Error()); markErr != nil {
			w.sink.Delivery(ctx, sub.ExternalID.String(), sub.DeliveryAttempts, "mark_failed_error", markErr)
		}
		w.sink.Delivery(ctx, sub.ExternalID.String(), sub.DeliveryAttempts, string(types.DeliveryFailed), exhausted)
		w.alerts.DeliveryExhausted(ctx, sub.ExternalID.String(), sub.DeliveryAttempts, failure)
		metrics.RecordDeliveryAttempt("exhausted")
		return false
	}

	next := w.now().Add(w.cfg.RetryDelay)
	if markErr := w.store.MarkRetry(ctx, sub.ID, failure.Error(), next); markErr != nil {
		w.sink.Delivery(ctx, sub.ExternalID.String(), sub.DeliveryAttempts, "mark_retry_error", markErr)
	}
	w.sink.Delivery(ctx, sub.ExternalID.String(), sub.DeliveryAttempts, string(types.DeliveryRetrying), failure)
	metrics.RecordDeliveryAttempt("retrying")
	return false
}

// sendReport renders the report email and invokes the mailer under a
// per-send timeout so one hung transport call cannot stall the batch.
func (w *Worker) sendReport(ctx context.Context, sub *types.Submission) error {
	htmlBody, textBody, err := renderReportEmail(sub)
	if err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.cfg.SendTimeout)
	defer cancel()
	return w.mailer.Send(sendCtx, sub.Email, ReportSubject, htmlBody, textBody)
}
