package delivery

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-review/internal/types"
)

// fakeStore is an in-memory Store mirroring the semantics of the SQL
// implementation: claims consume an attempt and flip status to retrying.
type fakeStore struct {
	mu   sync.Mutex
	subs map[int64]*types.Submission
	now  func() time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{subs: make(map[int64]*types.Submission), now: time.Now}
}

func (f *fakeStore) add(sub *types.Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[sub.ID] = sub
}

func (f *fakeStore) get(id int64) *types.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs[id]
}

func (f *fakeStore) GetSubmissionByID(_ context.Context, id int64) (*types.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok {
		return nil, nil
	}
	copied := *sub
	return &copied, nil
}

func (f *fakeStore) SetSchedule(_ context.Context, id int64, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok || sub.DeliveryStatus != types.DeliveryNotQueued {
		return false, nil
	}
	sub.DeliveryStatus = types.DeliveryQueued
	sub.ScheduledSendAt = &at
	return true, nil
}

func (f *fakeStore) ClaimDue(_ context.Context, maxAttempts, limit int) ([]types.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	var due []*types.Submission
	for _, sub := range f.subs {
		claimable := (sub.DeliveryStatus == types.DeliveryQueued || sub.DeliveryStatus == types.DeliveryRetrying) &&
			sub.ScheduledSendAt != nil && !sub.ScheduledSendAt.After(now) &&
			sub.DeliveryAttempts < maxAttempts
		if claimable {
			due = append(due, sub)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].ScheduledSendAt.Before(*due[j].ScheduledSendAt)
	})
	if len(due) > limit {
		due = due[:limit]
	}

	claimed := make([]types.Submission, 0, len(due))
	for _, sub := range due {
		sub.DeliveryStatus = types.DeliveryRetrying
		sub.DeliveryAttempts++
		attemptAt := now
		sub.LastAttemptAt = &attemptAt
		claimed = append(claimed, *sub)
	}
	return claimed, nil
}

func (f *fakeStore) ClaimByID(_ context.Context, id int64, maxAttempts int) (*types.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok {
		return nil, nil
	}
	claimable := (sub.DeliveryStatus == types.DeliveryQueued || sub.DeliveryStatus == types.DeliveryRetrying) &&
		sub.DeliveryAttempts < maxAttempts
	if !claimable {
		return nil, nil
	}
	sub.DeliveryStatus = types.DeliveryRetrying
	sub.DeliveryAttempts++
	attemptAt := f.now()
	sub.LastAttemptAt = &attemptAt
	copied := *sub
	return &copied, nil
}

func (f *fakeStore) MarkSent(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := f.subs[id]
	sub.DeliveryStatus = types.DeliverySent
	sentAt := f.now()
	sub.SentAt = &sentAt
	sub.LastDeliveryError = nil
	return nil
}

func (f *fakeStore) MarkRetry(_ context.Context, id int64, errMsg string, next time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := f.subs[id]
	sub.DeliveryStatus = types.DeliveryRetrying
	sub.ScheduledSendAt = &next
	sub.LastDeliveryError = &errMsg
	return nil
}

func (f *fakeStore) MarkFailed(_ context.Context, id int64, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := f.subs[id]
	sub.DeliveryStatus = types.DeliveryFailed
	sub.LastDeliveryError = &errMsg
	return nil
}

func (f *fakeStore) ResetDeliveryForRetry(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok || !sub.Analyzed() || sub.DeliveryStatus == types.DeliverySent {
		return false, nil
	}
	sub.DeliveryStatus = types.DeliveryQueued
	sub.DeliveryAttempts = 0
	at := f.now()
	sub.ScheduledSendAt = &at
	return true, nil
}

// fakeMailer records sends and fails according to failures remaining.
type fakeMailer struct {
	mu        sync.Mutex
	sent      []string // recipient per successful send
	failWith  error
	failCount int // fail this many sends, then succeed; -1 fails forever
}

func (m *fakeMailer) Send(_ context.Context, to, _, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCount != 0 && m.failWith != nil {
		if m.failCount > 0 {
			m.failCount--
		}
		return m.failWith
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// analyzedSubmission builds a queued, due, analyzed submission for tests.
func analyzedSubmission(id int64, email string, scheduledAgo time.Duration) *types.Submission {
	score := 72
	ats := 80
	analyzedAt := time.Now().Add(-time.Hour)
	scheduledAt := time.Now().Add(-scheduledAgo)
	return &types.Submission{
		ID:               id,
		ExternalID:       uuid.New(),
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            email,
		OriginalFilename: "resume.pdf",
		StoredPath:       "2026/08/x-resume.pdf",
		FileSize:         1024,
		MimeType:         "application/pdf",
		OverallScore:     &score,
		ATSCompatibility: &ats,
		Report: &types.AnalysisReport{
			Strengths: []string{"Consistent bullet-point formatting"},
			Improvements: []types.Improvement{
				{Category: "Action Verbs", Priority: types.PriorityMedium, Issue: "Few action verbs", Suggestion: "Use stronger verbs"},
			},
			SectionCompleteness: types.SectionCompleteness{ContactInfo: true},
			DetailedFeedback:    "Decent starting point.",
		},
		AnalyzedAt:      &analyzedAt,
		ReviewStatus:    "pending",
		DeliveryStatus:  types.DeliveryQueued,
		ScheduledSendAt: &scheduledAt,
		CreatedAt:       time.Now().Add(-2 * time.Hour),
	}
}
