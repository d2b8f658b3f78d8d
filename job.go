package remind

import (
	"context"
	"fmt"
	"time"
)

// Summary reports the outcome of one run to the invoking scheduler.
type Summary struct {
	// Total is the number of eligible records seen.
	Total int
	// Sent counts records whose reminder was delivered (or simulated).
	Sent int
	// Failed counts records that could not be delivered.
	Failed int
	// Skipped is true when the run declined because another worker holds
	// the lock. This is a normal outcome under concurrent scheduling.
	Skipped bool
	// HeldBy and HeldSince describe the current holder on a skipped run.
	HeldBy    string
	HeldSince time.Time
}

// Job orchestrates one reminder run: acquire the lock, dispatch each
// eligible record in isolation, and release the lock on every exit path.
type Job struct {
	locks      *LockManager
	source     Source
	dispatcher *Dispatcher
	cfg        JobConfig
}

// NewJob constructs a Job with defaults and optional settings.
func NewJob(store LockStore, source Source, mailer Mailer, audit AuditLogger, opts ...JobOption) *Job {
	if source == nil {
		panic("remind: nil Source")
	}

	var cfg JobConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg = cfg.withDefaults()

	return &Job{
		locks:      NewLockManager(store, cfg.Clock, cfg.Identity, cfg.Logger),
		source:     source,
		dispatcher: NewDispatcher(mailer, audit, cfg.Clock, cfg.Logger, cfg.TaskName, cfg.DryRun),
		cfg:        cfg,
	}
}

// Run executes a single invocation. Per-record delivery failures are
// counted, not returned; the error is reserved for process-level faults
// (lock store, audit store, or eligible-record query failures). The lock is
// released best-effort even when such a fault escapes; its TTL remains the
// ultimate safety net if the release itself fails.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	start := j.cfg.Clock.Now()
	defer func() {
		j.cfg.Metrics.ObserveRunDuration(j.cfg.Clock.Now().Sub(start))
	}()

	acquired, err := j.locks.Acquire(ctx, j.cfg.TaskName, j.cfg.LockTTL, j.cfg.Force)
	if err != nil {
		return Summary{}, err
	}
	if !acquired.Acquired {
		j.cfg.Logger.Info("task already running, skipping", "task", j.cfg.TaskName, "holder", acquired.HeldBy)

		return Summary{Skipped: true, HeldBy: acquired.HeldBy, HeldSince: acquired.HeldSince}, nil
	}
	defer j.release(ctx)

	summary, err := j.processEligible(ctx)
	if err != nil {
		return summary, err
	}

	j.cfg.Metrics.SetEligible(summary.Total)
	j.cfg.Metrics.AddSent(summary.Sent)
	j.cfg.Metrics.AddFailed(summary.Failed)
	j.cfg.Logger.Info("run complete", "task", j.cfg.TaskName, "total", summary.Total, "sent", summary.Sent, "failed", summary.Failed)

	return summary, nil
}

func (j *Job) processEligible(ctx context.Context) (Summary, error) {
	now := j.cfg.Clock.Now()

	mous, err := j.source.EligibleMOUs(ctx, now)
	if err != nil {
		return Summary{}, fmt.Errorf("remind: eligible record query failed: %w", err)
	}

	summary := Summary{Total: len(mous)}
	j.cfg.Logger.Info("eligible records fetched", "task", j.cfg.TaskName, "count", len(mous))

	for i := range mous {
		result, err := j.dispatcher.Dispatch(ctx, mous[i], now)
		if err != nil {
			// Storage fault: escalate; the deferred release still runs.
			return summary, err
		}
		if result.Sent {
			summary.Sent++

			continue
		}
		summary.Failed++
	}

	return summary, nil
}

// release runs on every exit path, including faults escaping the record
// loop. It must not inherit a canceled request context, or a teardown after
// cancellation would strand the lock until its TTL.
func (j *Job) release(ctx context.Context) {
	if err := j.locks.Release(context.WithoutCancel(ctx), j.cfg.TaskName); err != nil {
		j.cfg.Logger.Warn("lock release failed, lock will expire by TTL", "task", j.cfg.TaskName, "err", err)

		return
	}
	j.cfg.Logger.Debug("lock released", "task", j.cfg.TaskName)
}
