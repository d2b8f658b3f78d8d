package remind

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultLockTTL bridges crash recovery: a lock held by a crashed process
// becomes reclaimable after this long without manual intervention.
const DefaultLockTTL = 30 * time.Minute

// Lock is a durable single-owner lock row for a named task.
type Lock struct {
	TaskName  string
	LockedBy  string
	LockedAt  time.Time
	ExpiresAt time.Time
}

// LockStore persists lock rows. The store's uniqueness constraint on the
// task name is the sole serialization point between racing processes.
type LockStore interface {
	// InsertLock atomically inserts a fresh lock row. It returns
	// ErrLockExists when a row for the task name is already present.
	InsertLock(ctx context.Context, lock Lock) error
	// DeleteLock removes the lock row for the task. Deleting a missing
	// row is not an error.
	DeleteLock(ctx context.Context, taskName string) error
	// DeleteExpiredLocks removes every lock row whose expiry has passed.
	DeleteExpiredLocks(ctx context.Context, now time.Time) error
	// GetLock returns the current lock row for the task, or
	// ErrLockNotFound when none exists.
	GetLock(ctx context.Context, taskName string) (Lock, error)
}

// AcquireResult reports the outcome of a lock acquisition attempt.
type AcquireResult struct {
	// Acquired is true when this process now holds the lock.
	Acquired bool
	// HeldBy identifies the current holder when the lock was already
	// taken. It may be empty if the holder released between the failed
	// insert and the follow-up read.
	HeldBy string
	// HeldSince is the holder's acquisition time, when known.
	HeldSince time.Time
}

// LockManager acquires and releases task locks against a LockStore.
type LockManager struct {
	store    LockStore
	clock    Clock
	identity Identity
	logger   Logger
}

// NewLockManager constructs a LockManager. Clock, identity, and logger
// fall back to SystemClock, HostIdentity, and NopLogger when nil.
func NewLockManager(store LockStore, clock Clock, identity Identity, logger Logger) *LockManager {
	if store == nil {
		panic("remind: nil LockStore")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if identity == nil {
		identity = HostIdentity{}
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &LockManager{store: store, clock: clock, identity: identity, logger: logger}
}

// Acquire attempts to take the named lock with the given TTL. A non-positive
// ttl uses DefaultLockTTL. When force is set, any existing row for the task
// is removed first.
//
// The insert is optimistic: expired rows are swept lazily, then a fresh row
// is inserted and the store's uniqueness constraint decides the winner. A
// check-then-insert would race between processes; the constraint cannot.
func (m *LockManager) Acquire(ctx context.Context, taskName string, ttl time.Duration, force bool) (AcquireResult, error) {
	if taskName == "" {
		return AcquireResult{}, ErrTaskNameRequired
	}
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}

	now := m.clock.Now()
	owner := m.identity.WorkerID()

	if force {
		if err := m.store.DeleteLock(ctx, taskName); err != nil {
			return AcquireResult{}, fmt.Errorf("remind: force unlock failed: %w", err)
		}
		m.logger.Warn("existing lock removed by force", "task", taskName)
	}

	if err := m.store.DeleteExpiredLocks(ctx, now); err != nil {
		return AcquireResult{}, fmt.Errorf("remind: expired lock sweep failed: %w", err)
	}

	err := m.store.InsertLock(ctx, Lock{
		TaskName:  taskName,
		LockedBy:  owner,
		LockedAt:  now,
		ExpiresAt: now.Add(ttl),
	})
	if err == nil {
		m.logger.Info("lock acquired", "task", taskName, "owner", owner, "ttl", ttl)

		return AcquireResult{Acquired: true, HeldBy: owner, HeldSince: now}, nil
	}
	if !errors.Is(err, ErrLockExists) {
		return AcquireResult{}, fmt.Errorf("remind: lock insert failed: %w", err)
	}

	holder, err := m.store.GetLock(ctx, taskName)
	if err != nil {
		if errors.Is(err, ErrLockNotFound) {
			// The holder released between our insert and the read. The
			// next scheduled run will get the lock; this one still skips.
			return AcquireResult{}, nil
		}

		return AcquireResult{}, fmt.Errorf("remind: lock holder lookup failed: %w", err)
	}

	m.logger.Info("lock held by another worker", "task", taskName, "holder", holder.LockedBy, "since", holder.LockedAt)

	return AcquireResult{HeldBy: holder.LockedBy, HeldSince: holder.LockedAt}, nil
}

// Release removes the lock row for the task. It is idempotent and safe to
// call whether or not the lock is held.
func (m *LockManager) Release(ctx context.Context, taskName string) error {
	if taskName == "" {
		return ErrTaskNameRequired
	}
	if err := m.store.DeleteLock(ctx, taskName); err != nil {
		return fmt.Errorf("remind: lock release failed: %w", err)
	}

	return nil
}
