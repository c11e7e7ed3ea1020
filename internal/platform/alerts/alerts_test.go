package alerts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

var testNow = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func TestEvaluateBuckets(t *testing.T) {
	docs := []Document{
		{ID: "d1", Code: "PRO-001", Status: "valide", ValidityDate: datePtr(testNow.AddDate(0, 0, -5))},
		{ID: "d2", Code: "PRO-002", Status: "valide", ValidityDate: datePtr(testNow.AddDate(0, 0, 10))},
		{ID: "d3", Code: "PRO-003", Status: "valide", ReviewDate: datePtr(testNow.AddDate(0, 0, 20))},
		{ID: "d4", Code: "PRO-004", Status: "en_validation"},
		{ID: "d5", Code: "PRO-005", Status: "valide", ValidityDate: datePtr(testNow.AddDate(0, 0, 90))},
	}

	got := Evaluate(docs, testNow, 30)
	if len(got) != 4 {
		t.Fatalf("expected 4 alerts, got %d: %+v", len(got), got)
	}

	byDoc := map[string]Bucket{}
	for _, a := range got {
		byDoc[a.DocumentID] = a.Bucket
	}
	if byDoc["d1"] != BucketExpired {
		t.Errorf("d1: expected expired, got %s", byDoc["d1"])
	}
	if byDoc["d2"] != BucketExpiringSoon {
		t.Errorf("d2: expected expiring_soon, got %s", byDoc["d2"])
	}
	if byDoc["d3"] != BucketReviewDue {
		t.Errorf("d3: expected review_due, got %s", byDoc["d3"])
	}
	if byDoc["d4"] != BucketPendingValidation {
		t.Errorf("d4: expected pending_validation, got %s", byDoc["d4"])
	}
	if _, ok := byDoc["d5"]; ok {
		t.Error("d5: validity outside the window must not alert")
	}
}

func TestEvaluateExpiredWinsOverExpiring(t *testing.T) {
	docs := []Document{
		{ID: "d1", Code: "PRO-001", Status: "valide", ValidityDate: datePtr(testNow.AddDate(0, 0, -1))},
	}
	got := Evaluate(docs, testNow, 30)
	if len(got) != 1 || got[0].Bucket != BucketExpired {
		t.Fatalf("expected a single expired alert, got %+v", got)
	}
}

func TestEvaluateSkipsArchivedOnly(t *testing.T) {
	docs := []Document{
		{ID: "d1", Code: "PRO-001", Status: "archive", ValidityDate: datePtr(testNow.AddDate(0, 0, -100))},
	}
	if got := Evaluate(docs, testNow, 30); len(got) != 0 {
		t.Errorf("archived documents must not alert, got %+v", got)
	}
}

func TestEvaluateObsoleteStillExpires(t *testing.T) {
	docs := []Document{
		{ID: "d1", Code: "PRO-001", Status: "obsolete", ValidityDate: datePtr(testNow.AddDate(0, 0, -100))},
	}
	got := Evaluate(docs, testNow, 30)
	if len(got) != 1 || got[0].Bucket != BucketExpired {
		t.Fatalf("expired non-archived document must reach the expired bucket, got %+v", got)
	}
}

func TestEvaluateOrdersByUrgency(t *testing.T) {
	docs := []Document{
		{ID: "d1", Code: "PRO-001", Status: "en_validation"},
		{ID: "d2", Code: "PRO-002", Status: "valide", ValidityDate: datePtr(testNow.AddDate(0, 0, -1))},
		{ID: "d3", Code: "PRO-003", Status: "valide", ValidityDate: datePtr(testNow.AddDate(0, 0, 5))},
	}
	got := Evaluate(docs, testNow, 30)
	if len(got) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(got))
	}
	if got[0].Bucket != BucketExpired || got[1].Bucket != BucketExpiringSoon || got[2].Bucket != BucketPendingValidation {
		t.Errorf("unexpected order: %s %s %s", got[0].Bucket, got[1].Bucket, got[2].Bucket)
	}
}

// ---------------------------------------------------------------------------
// Manager
// ---------------------------------------------------------------------------

type memJournal struct {
	mu      sync.Mutex
	seen    map[string]bool
	seenErr error
	markErr error
}

func newMemJournal() *memJournal {
	return &memJournal{seen: make(map[string]bool)}
}

func (m *memJournal) Seen(_ context.Context, sessionID, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seenErr != nil {
		return false, m.seenErr
	}
	return m.seen[sessionID+"|"+key], nil
}

func (m *memJournal) MarkSeen(_ context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return m.markErr
	}
	m.seen[sessionID+"|"+key] = true
	return nil
}

type countingObserver struct {
	buckets []string
}

func (c *countingObserver) ObserveAlert(bucket string) {
	c.buckets = append(c.buckets, bucket)
}

func TestForSessionSurfacesOncePerSession(t *testing.T) {
	journal := newMemJournal()
	m := NewManager(journal, 30, WithClock(func() time.Time { return testNow }))

	docs := []Document{
		{ID: "d1", Code: "PRO-001", Status: "valide", ValidityDate: datePtr(testNow.AddDate(0, 0, -1))},
	}

	first, err := m.ForSession(context.Background(), "sess-1", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 alert on first call, got %d", len(first))
	}

	second, err := m.ForSession(context.Background(), "sess-1", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("expected no alerts on second call, got %d", len(second))
	}

	other, err := m.ForSession(context.Background(), "sess-2", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("a different session must see the alert, got %d", len(other))
	}
}

func TestForSessionFailsOpenOnSeenError(t *testing.T) {
	journal := newMemJournal()
	journal.seenErr = errors.New("connection reset")
	m := NewManager(journal, 30, WithClock(func() time.Time { return testNow }))

	docs := []Document{
		{ID: "d1", Code: "PRO-001", Status: "en_validation"},
	}
	got, err := m.ForSession(context.Background(), "sess-1", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("journal read failure must still surface the alert, got %d", len(got))
	}
}

func TestForSessionWithoutJournal(t *testing.T) {
	m := NewManager(nil, 30, WithClock(func() time.Time { return testNow }))
	docs := []Document{
		{ID: "d1", Code: "PRO-001", Status: "en_validation"},
	}
	for i := 0; i < 2; i++ {
		got, err := m.ForSession(context.Background(), "sess-1", docs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("call %d: expected 1 alert, got %d", i, len(got))
		}
	}
}

func TestAcknowledgeSuppressesAlert(t *testing.T) {
	journal := newMemJournal()
	m := NewManager(journal, 30, WithClock(func() time.Time { return testNow }))

	docs := []Document{
		{ID: "d1", Code: "PRO-001", Status: "valide", ValidityDate: datePtr(testNow.AddDate(0, 0, -1))},
	}

	if err := m.Acknowledge(context.Background(), "sess-1", BucketExpired, "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := m.ForSession(context.Background(), "sess-1", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("acknowledged alert must not be surfaced, got %d", len(got))
	}

	// Without a journal the acknowledgement has nothing to record.
	if err := NewManager(nil, 30).Acknowledge(context.Background(), "sess-1", BucketExpired, "d1"); err != nil {
		t.Errorf("unexpected error without journal: %v", err)
	}
}

func TestForSessionObservesBuckets(t *testing.T) {
	obs := &countingObserver{}
	m := NewManager(newMemJournal(), 30,
		WithClock(func() time.Time { return testNow }),
		WithObserver(obs))

	docs := []Document{
		{ID: "d1", Code: "PRO-001", Status: "valide", ValidityDate: datePtr(testNow.AddDate(0, 0, -1))},
		{ID: "d2", Code: "PRO-002", Status: "en_validation"},
	}
	if _, err := m.ForSession(context.Background(), "sess-1", docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs.buckets) != 2 {
		t.Fatalf("expected 2 observed alerts, got %d", len(obs.buckets))
	}

	// Repeat call surfaces nothing, so nothing more is observed.
	if _, err := m.ForSession(context.Background(), "sess-1", docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs.buckets) != 2 {
		t.Errorf("repeat call must not observe again, got %d", len(obs.buckets))
	}
}
