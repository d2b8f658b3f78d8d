package remind

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func mouWithEmail(id int64, email string) MOU {
	return MOU{
		ID:               id,
		Title:            "MOU",
		Status:           "active",
		EndDate:          day(60),
		CoordinatorEmail: email,
	}
}

func staticSource(mous []MOU) Source {
	return SourceFunc(func(context.Context, time.Time) ([]MOU, error) {
		return mous, nil
	})
}

func TestRunSkipsWhenLockHeld(t *testing.T) {
	store := newFakeLockStore()
	now := day(0)
	store.locks[DefaultTaskName] = Lock{
		TaskName:  DefaultTaskName,
		LockedBy:  "worker-b",
		LockedAt:  now.Add(-time.Minute),
		ExpiresAt: now.Add(time.Hour),
	}

	sourceCalled := false
	source := SourceFunc(func(context.Context, time.Time) ([]MOU, error) {
		sourceCalled = true
		return nil, nil
	})

	job := NewJob(store, source, &captureMailer{}, &captureAudit{}, WithClock(fixedClock{now: now}))

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !summary.Skipped {
		t.Fatalf("expected run to be skipped")
	}
	if summary.HeldBy != "worker-b" {
		t.Fatalf("unexpected holder: %s", summary.HeldBy)
	}
	if sourceCalled {
		t.Fatalf("source must not be queried on a skipped run")
	}
	if _, held := store.lock(DefaultTaskName); !held {
		t.Fatalf("existing lock must not be touched on a skipped run")
	}
}

func TestRunIsolatesRecordFailures(t *testing.T) {
	store := newFakeLockStore()
	audit := &captureAudit{}
	mous := []MOU{
		mouWithEmail(1, ""), // no recipients, counted as failed
		mouWithEmail(2, "b@example.edu"),
		mouWithEmail(3, "c@example.edu"), // transport rejects this one
	}

	var sent []string
	mailer := MailerFunc(func(_ context.Context, recipients []string, _, _ string) error {
		if recipients[0] == "c@example.edu" {
			return errors.New("rejected")
		}
		sent = append(sent, recipients...)
		return nil
	})

	job := NewJob(store, staticSource(mous), mailer, audit, WithClock(fixedClock{now: day(0)}))

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Total != 3 || summary.Sent != 1 || summary.Failed != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(sent) != 1 || sent[0] != "b@example.edu" {
		t.Fatalf("record after a failure must still be attempted, sent=%v", sent)
	}
	// One audit row for the delivered record, one for the rejected record,
	// none for the recipient-less record.
	if len(audit.entries) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(audit.entries))
	}
	if _, held := store.lock(DefaultTaskName); held {
		t.Fatalf("lock must be released after the run")
	}
}

func TestRunReleasesLockOnSourceError(t *testing.T) {
	store := newFakeLockStore()
	source := SourceFunc(func(context.Context, time.Time) ([]MOU, error) {
		return nil, errors.New("mous table unreachable")
	})

	job := NewJob(store, source, &captureMailer{}, &captureAudit{})

	if _, err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected source fault to propagate")
	}
	if _, held := store.lock(DefaultTaskName); held {
		t.Fatalf("lock must be released even when the run fails")
	}
}

func TestRunReleasesLockAfterCanceledContext(t *testing.T) {
	store := newFakeLockStore()
	ctx, cancel := context.WithCancel(context.Background())
	source := SourceFunc(func(context.Context, time.Time) ([]MOU, error) {
		cancel()
		return nil, ctx.Err()
	})

	job := NewJob(store, source, &captureMailer{}, &captureAudit{})

	if _, err := job.Run(ctx); err == nil {
		t.Fatalf("expected canceled run to fail")
	}
	if _, held := store.lock(DefaultTaskName); held {
		t.Fatalf("release must not be skipped after cancellation")
	}
}

func TestRunAuditFaultReleasesLock(t *testing.T) {
	store := newFakeLockStore()
	audit := &captureAudit{err: errors.New("email_logs unreachable")}
	job := NewJob(store, staticSource([]MOU{mouWithEmail(1, "a@example.edu")}), &captureMailer{}, audit)

	_, err := job.Run(context.Background())
	if err == nil {
		t.Fatalf("expected audit fault to propagate")
	}
	if !strings.Contains(err.Error(), "audit write failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, held := store.lock(DefaultTaskName); held {
		t.Fatalf("lock must be released after a storage fault")
	}
}

func TestRunDryRun(t *testing.T) {
	store := newFakeLockStore()
	mailer := &captureMailer{}
	audit := &captureAudit{}
	mous := []MOU{mouWithEmail(1, "a@example.edu"), mouWithEmail(2, "b@example.edu")}

	job := NewJob(store, staticSource(mous), mailer, audit, WithDryRun(true))

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Sent != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if mailer.calls != 0 {
		t.Fatalf("dry run must not call the transport")
	}
	if len(audit.entries) != 0 {
		t.Fatalf("dry run must not write audit rows")
	}
}

func TestRunEmptyEligibleSet(t *testing.T) {
	store := newFakeLockStore()
	job := NewJob(store, staticSource(nil), &captureMailer{}, &captureAudit{})

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Total != 0 || summary.Sent != 0 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, held := store.lock(DefaultTaskName); held {
		t.Fatalf("lock must be released")
	}
}

func TestRunForceOverridesExistingLock(t *testing.T) {
	store := newFakeLockStore()
	now := day(0)
	store.locks[DefaultTaskName] = Lock{
		TaskName:  DefaultTaskName,
		LockedBy:  "worker-b",
		ExpiresAt: now.Add(time.Hour),
	}

	job := NewJob(store, staticSource(nil), &captureMailer{}, &captureAudit{},
		WithClock(fixedClock{now: now}),
		WithForce(true),
	)

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Skipped {
		t.Fatalf("force must bypass the existing lock")
	}
}
