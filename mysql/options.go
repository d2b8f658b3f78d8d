package mysql

import (
	"github.com/google/uuid"

	"github.com/mousuite/remind"
)

const (
	defaultLockTable  = "task_locks"
	defaultAuditTable = "email_logs"
	defaultMOUTable   = "mous"
	defaultEventTable = "mou_events"
)

// Config defines MySQL store behavior.
type Config struct {
	LockTable  string
	AuditTable string
	MOUTable   string
	EventTable string
	Clock      remind.Clock
	// NewID generates audit row identifiers.
	NewID func() uuid.UUID
}

func (c Config) withDefaults() Config {
	if c.LockTable == "" {
		c.LockTable = defaultLockTable
	}
	if c.AuditTable == "" {
		c.AuditTable = defaultAuditTable
	}
	if c.MOUTable == "" {
		c.MOUTable = defaultMOUTable
	}
	if c.EventTable == "" {
		c.EventTable = defaultEventTable
	}
	if c.Clock == nil {
		c.Clock = remind.SystemClock{}
	}
	if c.NewID == nil {
		c.NewID = uuid.New
	}

	return c
}

// Option configures the MySQL store.
type Option func(*Config)

// WithLockTable sets the task lock table name.
func WithLockTable(name string) Option {
	return func(c *Config) {
		c.LockTable = name
	}
}

// WithAuditTable sets the email audit table name.
func WithAuditTable(name string) Option {
	return func(c *Config) {
		c.AuditTable = name
	}
}

// WithMOUTable sets the MOU table name.
func WithMOUTable(name string) Option {
	return func(c *Config) {
		c.MOUTable = name
	}
}

// WithEventTable sets the MOU event table name.
func WithEventTable(name string) Option {
	return func(c *Config) {
		c.EventTable = name
	}
}

// WithClock sets the time source used to stamp audit rows recorded without
// an explicit send time.
func WithClock(clock remind.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithIDFunc sets the audit row ID generator.
func WithIDFunc(newID func() uuid.UUID) Option {
	return func(c *Config) {
		c.NewID = newID
	}
}
