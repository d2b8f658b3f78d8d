package remind

import "time"

// DefaultTaskName is the lock and audit task name used when none is set.
const DefaultTaskName = "send_monthly_mou_emails"

// JobConfig defines how a Job acquires its lock and dispatches reminders.
type JobConfig struct {
	TaskName string
	LockTTL  time.Duration
	Force    bool
	DryRun   bool
	Clock    Clock
	Identity Identity
	Logger   Logger
	Metrics  Metrics
}

func (c JobConfig) withDefaults() JobConfig {
	if c.TaskName == "" {
		c.TaskName = DefaultTaskName
	}
	if c.LockTTL <= 0 {
		c.LockTTL = DefaultLockTTL
	}
	if c.Clock == nil {
		c.Clock = SystemClock{}
	}
	if c.Identity == nil {
		c.Identity = HostIdentity{}
	}
	if c.Logger == nil {
		c.Logger = NopLogger{}
	}
	if c.Metrics == nil {
		c.Metrics = NopMetrics{}
	}

	return c
}

// JobOption configures Job behavior.
type JobOption func(*JobConfig)

// WithTaskName sets the task name used for the lock row and audit entries.
func WithTaskName(name string) JobOption {
	return func(c *JobConfig) {
		c.TaskName = name
	}
}

// WithLockTTL sets how long an acquired lock remains valid.
func WithLockTTL(ttl time.Duration) JobOption {
	return func(c *JobConfig) {
		c.LockTTL = ttl
	}
}

// WithForce removes any existing lock before acquiring. Use with caution.
func WithForce(force bool) JobOption {
	return func(c *JobConfig) {
		c.Force = force
	}
}

// WithDryRun simulates dispatch without sending mail or writing audit rows.
func WithDryRun(dryRun bool) JobOption {
	return func(c *JobConfig) {
		c.DryRun = dryRun
	}
}

// WithClock sets the job clock.
func WithClock(clock Clock) JobOption {
	return func(c *JobConfig) {
		c.Clock = clock
	}
}

// WithIdentity sets the worker identity recorded on acquired locks.
func WithIdentity(identity Identity) JobOption {
	return func(c *JobConfig) {
		c.Identity = identity
	}
}

// WithLogger sets the job logger.
func WithLogger(logger Logger) JobOption {
	return func(c *JobConfig) {
		c.Logger = logger
	}
}

// WithMetrics sets the job metrics recorder.
func WithMetrics(metrics Metrics) JobOption {
	return func(c *JobConfig) {
		c.Metrics = metrics
	}
}
