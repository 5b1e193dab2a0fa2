// Package alerting emits operational alerts with a per-type cooldown so a
// burst of identical failures produces one alert, not hundreds.
package alerting

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/resume-review/pkg/events"
)

// AlertType identifies a class of alert sharing one cooldown window.
type AlertType string

// AlertDeliveryExhausted fires when a submission's report delivery fails
// terminally.
const AlertDeliveryExhausted AlertType = "delivery_exhausted"

// DefaultCooldown is the minimum gap between two alerts of the same type.
const DefaultCooldown = time.Hour

// Service tracks last-alert times per type. The map is owned by the instance
// and injected where needed, so cooldown behavior is testable and resettable.
type Service struct {
	mu             sync.Mutex
	lastAlertTimes map[AlertType]time.Time
	cooldown       time.Duration
	sink           events.Sink
	now            func() time.Time
}

// NewService creates a Service emitting into sink. cooldown <= 0 selects
// DefaultCooldown.
func NewService(sink events.Sink, cooldown time.Duration) *Service {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if sink == nil {
		sink = events.NewNop()
	}
	return &Service{
		lastAlertTimes: make(map[AlertType]time.Time),
		cooldown:       cooldown,
		sink:           sink,
		now:            time.Now,
	}
}

// DeliveryExhausted raises an exhaustion alert for a submission unless one of
// the same type fired within the cooldown window. Returns whether the alert
// was emitted.
func (s *Service) DeliveryExhausted(ctx context.Context, submissionID string, attempts int, cause error) bool {
	if !s.claim(AlertDeliveryExhausted) {
		return false
	}
	s.sink.Delivery(ctx, submissionID, attempts, "exhausted", cause)
	return true
}

// Reset clears all cooldown state.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAlertTimes = make(map[AlertType]time.Time)
}

func (s *Service) claim(typ AlertType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if last, ok := s.lastAlertTimes[typ]; ok && now.Sub(last) < s.cooldown {
		return false
	}
	s.lastAlertTimes[typ] = now
	return true
}
