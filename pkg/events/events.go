// Package events provides the structured event sink the pipeline reports into.
//
// The core emits file-operation, analysis, and delivery events fire-and-forget;
// sinks must never block or fail the calling operation.
package events

import (
	"context"
	"io"
	"log/slog"
)

// Sink accepts observability events from the submission pipeline.
type Sink interface {
	// FileOp records a storage operation (store, retrieve, delete).
	FileOp(ctx context.Context, op, path string, size int64, err error)

	// Analysis records one analysis run for a submission.
	Analysis(ctx context.Context, submissionID string, score int, err error)

	// Delivery records one delivery attempt, including the attempt number.
	Delivery(ctx context.Context, submissionID string, attempt int, status string, err error)
}

// slogSink implements Sink using slog with JSON output.
type slogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a Sink writing JSON events to w.
func NewSlogSink(w io.Writer) Sink {
	return &slogSink{logger: slog.New(slog.NewJSONHandler(w, nil))}
}

func (s *slogSink) FileOp(ctx context.Context, op, path string, size int64, err error) {
	attrs := []slog.Attr{
		slog.String("event", "file_op"),
		slog.String("op", op),
		slog.String("path", path),
		slog.Int64("size", size),
	}
	level := slog.LevelInfo
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, "file operation", attrs...)
}

func (s *slogSink) Analysis(ctx context.Context, submissionID string, score int, err error) {
	attrs := []slog.Attr{
		slog.String("event", "analysis"),
		slog.String("submission_id", submissionID),
		slog.Int("score", score),
	}
	level := slog.LevelInfo
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, "analysis completed", attrs...)
}

func (s *slogSink) Delivery(ctx context.Context, submissionID string, attempt int, status string, err error) {
	attrs := []slog.Attr{
		slog.String("event", "delivery"),
		slog.String("submission_id", submissionID),
		slog.Int("attempt", attempt),
		slog.String("status", status),
	}
	level := slog.LevelInfo
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, "delivery attempt", attrs...)
}

// nopSink discards all events. Useful for tests.
type nopSink struct{}

// NewNop creates a Sink that discards everything.
func NewNop() Sink { return nopSink{} }

func (nopSink) FileOp(context.Context, string, string, int64, error) {}
func (nopSink) Analysis(context.Context, string, int, error)         {}
func (nopSink) Delivery(context.Context, string, int, string, error) {}
