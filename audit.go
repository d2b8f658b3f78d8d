package remind

import (
	"context"
	"time"
)

// AuditEntry is one durable record of a single delivery attempt to a single
// recipient. Entries are append-only and never mutated after creation.
type AuditEntry struct {
	TaskName  string
	Recipient string
	Subject   string
	SentAt    time.Time
	Success   bool
	// ErrorMessage holds the transport error description on failure.
	ErrorMessage string
	// MOUID is a weak back-reference to the triggering record, kept for
	// reporting only. Audit rows survive deletion of the MOU itself.
	MOUID int64
}

// AuditLogger durably records delivery attempts, one entry per recipient.
type AuditLogger interface {
	// Record appends a single audit entry.
	Record(ctx context.Context, entry AuditEntry) error
}

// AuditLoggerFunc adapts a function to AuditLogger.
type AuditLoggerFunc func(ctx context.Context, entry AuditEntry) error

// Record implements AuditLogger.
func (fn AuditLoggerFunc) Record(ctx context.Context, entry AuditEntry) error {
	return fn(ctx, entry)
}
