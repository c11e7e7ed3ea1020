// Package alerts computes document lifecycle alerts and guarantees each
// alert is surfaced at most once per user session. Stored document
// status is advisory; the buckets here are derived from dates at read
// time.
package alerts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Alert Types
// ---------------------------------------------------------------------------

// Bucket classifies a document alert.
type Bucket string

const (
	BucketPendingValidation Bucket = "pending_validation"
	BucketExpired           Bucket = "expired"
	BucketExpiringSoon      Bucket = "expiring_soon"
	BucketReviewDue         Bucket = "review_due"
)

// Alert is a single surfaced document alert.
type Alert struct {
	ID           string     `json:"id"`
	Bucket       Bucket     `json:"bucket"`
	DocumentID   string     `json:"document_id"`
	DocumentCode string     `json:"document_code"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Document is the slice of a QHSE document the alert engine needs.
// Callers map their own document type into it.
type Document struct {
	ID           string
	Code         string
	Title        string
	Status       string
	ValidityDate *time.Time
	ReviewDate   *time.Time
}

// ---------------------------------------------------------------------------
// Bucket Evaluation
// ---------------------------------------------------------------------------

// Evaluate derives alert buckets for the given documents. The window is
// the look-ahead in days for expiring and review-due alerts. Only
// archived documents never alert; any other stored status is advisory,
// so an obsolete document with a past validity date still expires. A
// document lands in at most one validity bucket; an expired document is
// not also expiring soon.
func Evaluate(docs []Document, now time.Time, windowDays int) []Alert {
	horizon := now.AddDate(0, 0, windowDays)
	var out []Alert

	for _, d := range docs {
		if d.Status == "archive" {
			continue
		}

		if d.Status == "en_validation" {
			out = append(out, newAlert(BucketPendingValidation, d, nil, now,
				fmt.Sprintf("Le document %s est en attente de validation", d.Code)))
		}

		switch {
		case d.ValidityDate != nil && d.ValidityDate.Before(now):
			out = append(out, newAlert(BucketExpired, d, d.ValidityDate, now,
				fmt.Sprintf("Le document %s a expiré le %s", d.Code, d.ValidityDate.Format("2006-01-02"))))
		case d.ValidityDate != nil && !d.ValidityDate.After(horizon):
			out = append(out, newAlert(BucketExpiringSoon, d, d.ValidityDate, now,
				fmt.Sprintf("Le document %s expire le %s", d.Code, d.ValidityDate.Format("2006-01-02"))))
		}

		if d.ReviewDate != nil && !d.ReviewDate.After(horizon) {
			out = append(out, newAlert(BucketReviewDue, d, d.ReviewDate, now,
				fmt.Sprintf("Le document %s doit être révisé avant le %s", d.Code, d.ReviewDate.Format("2006-01-02"))))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return bucketRank(out[i].Bucket) < bucketRank(out[j].Bucket)
	})
	return out
}

func newAlert(bucket Bucket, d Document, due *time.Time, now time.Time, msg string) Alert {
	return Alert{
		ID:           uuid.New().String(),
		Bucket:       bucket,
		DocumentID:   d.ID,
		DocumentCode: d.Code,
		Title:        d.Title,
		Message:      msg,
		DueDate:      due,
		CreatedAt:    now,
	}
}

// ValidBucket reports whether b is a known bucket value.
func ValidBucket(b Bucket) bool {
	switch b {
	case BucketPendingValidation, BucketExpired, BucketExpiringSoon, BucketReviewDue:
		return true
	}
	return false
}

// bucketRank orders alerts by urgency for display.
func bucketRank(b Bucket) int {
	switch b {
	case BucketExpired:
		return 0
	case BucketExpiringSoon:
		return 1
	case BucketReviewDue:
		return 2
	case BucketPendingValidation:
		return 3
	default:
		return 4
	}
}

// ---------------------------------------------------------------------------
// Session Journal
// ---------------------------------------------------------------------------

// Journal records which alerts a session has already been shown.
type Journal interface {
	Seen(ctx context.Context, sessionID, alertKey string) (bool, error)
	MarkSeen(ctx context.Context, sessionID, alertKey string) error
}

// alertKey identifies an alert independently of its generated ID, so a
// refetch of the same document produces the same key.
func alertKey(a Alert) string {
	return string(a.Bucket) + ":" + a.DocumentID
}

// ---------------------------------------------------------------------------
// Manager
// ---------------------------------------------------------------------------

// Observer is notified once per newly surfaced alert.
type Observer interface {
	ObserveAlert(bucket string)
}

// Option configures a Manager.
type Option func(*Manager)

// WithObserver attaches an alert observer.
func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observer = o }
}

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager evaluates document alerts and filters out those the session
// has already seen.
type Manager struct {
	journal    Journal
	windowDays int
	observer   Observer
	now        func() time.Time
}

// NewManager constructs a Manager. The journal may be nil, in which
// case every call surfaces all current alerts.
func NewManager(journal Journal, windowDays int, opts ...Option) *Manager {
	m := &Manager{
		journal:    journal,
		windowDays: windowDays,
		now:        time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// ForSession evaluates alerts over docs and returns only those not yet
// shown to the session, marking them as seen. A journal read failure
// fails open: the alert is surfaced but not recorded.
func (m *Manager) ForSession(ctx context.Context, sessionID string, docs []Document) ([]Alert, error) {
	all := Evaluate(docs, m.now(), m.windowDays)
	if m.journal == nil || sessionID == "" {
		m.observe(all)
		return all, nil
	}

	fresh := make([]Alert, 0, len(all))
	for _, a := range all {
		key := alertKey(a)
		seen, err := m.journal.Seen(ctx, sessionID, key)
		if err != nil {
			fresh = append(fresh, a)
			continue
		}
		if seen {
			continue
		}
		if err := m.journal.MarkSeen(ctx, sessionID, key); err != nil {
			return nil, fmt.Errorf("alerts: mark seen: %w", err)
		}
		fresh = append(fresh, a)
	}
	m.observe(fresh)
	return fresh, nil
}

// Acknowledge records a single alert as seen for the session so it is
// not surfaced again, whether or not ForSession already returned it.
// A no-op when the seen-guard is disabled.
func (m *Manager) Acknowledge(ctx context.Context, sessionID string, bucket Bucket, documentID string) error {
	if m.journal == nil || sessionID == "" {
		return nil
	}
	key := alertKey(Alert{Bucket: bucket, DocumentID: documentID})
	if err := m.journal.MarkSeen(ctx, sessionID, key); err != nil {
		return fmt.Errorf("alerts: acknowledge: %w", err)
	}
	return nil
}

func (m *Manager) observe(list []Alert) {
	if m.observer == nil {
		return
	}
	for _, a := range list {
		m.observer.ObserveAlert(string(a.Bucket))
	}
}
