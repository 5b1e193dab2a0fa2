package delivery

import (
	"fmt"

	"github.com/jonathan/resume-review/internal/types"
)

// ErrAlreadyScheduled indicates a schedule request for a record that is not
// in the not-queued state. Scheduling never silently resets delivery state.
type ErrAlreadyScheduled struct {
	SubmissionID int64
	Status       types.DeliveryStatus
}

func (e *ErrAlreadyScheduled) Error() string {
	return fmt.Sprintf("submission %d already scheduled: delivery status is %q", e.SubmissionID, e.Status)
}

// Code returns the machine-readable error code.
func (e *ErrAlreadyScheduled) Code() string { return "already_scheduled" }

// ErrNotAnalyzed indicates an attempt to queue a submission that has no
// analysis report to deliver.
type ErrNotAnalyzed struct {
	SubmissionID int64
}

func (e *ErrNotAnalyzed) Error() string {
	return fmt.Sprintf("submission %d has no analysis result to deliver", e.SubmissionID)
}

// Code returns the machine-readable error code.
func (e *ErrNotAnalyzed) Code() string { return "not_analyzed" }

// ErrDeliveryFailed represents one transient send failure. It is recorded on
// the submission row and never propagated upstream; the worker owns retries.
type ErrDeliveryFailed struct {
	Message string
	Cause   error
}

func (e *ErrDeliveryFailed) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("delivery failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("delivery failed: %s", e.Message)
}

func (e *ErrDeliveryFailed) Unwrap() error {
	return e.Cause
}

// Code returns the machine-readable error code.
func (e *ErrDeliveryFailed) Code() string { return "delivery_failed" }

// ErrDeliveryExhausted indicates terminal failure after the maximum number of
// attempts. Surfaced through the event sink and alerting, never as a panic
// path to any upstream caller.
type ErrDeliveryExhausted struct {
	SubmissionID int64
	Attempts     int
}

func (e *ErrDeliveryExhausted) Error() string {
	return fmt.Sprintf("delivery exhausted for submission %d after %d attempts", e.SubmissionID, e.Attempts)
}

// Code returns the machine-readable error code.
func (e *ErrDeliveryExhausted) Code() string { return "delivery_exhausted" }
