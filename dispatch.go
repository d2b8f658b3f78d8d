package remind

import (
	"context"
	"fmt"
	"time"
)

// DispatchResult reports the outcome of dispatching one record.
type DispatchResult struct {
	MOUID      int64
	Recipients []string
	// Sent is true when the transport accepted the message, or always in
	// dry-run mode once recipients exist.
	Sent bool
	// Err describes a per-record delivery failure (no recipients or a
	// transport rejection). It is informational and never aborts a batch.
	Err error
}

// Dispatcher composes and delivers the reminder for a single record and
// writes one audit entry per recipient for every real delivery attempt.
type Dispatcher struct {
	mailer   Mailer
	audit    AuditLogger
	clock    Clock
	logger   Logger
	taskName string
	dryRun   bool
}

// NewDispatcher constructs a Dispatcher. In dry-run mode the transport is
// never invoked and no audit entries are written.
func NewDispatcher(mailer Mailer, audit AuditLogger, clock Clock, logger Logger, taskName string, dryRun bool) *Dispatcher {
	if mailer == nil {
		panic("remind: nil Mailer")
	}
	if audit == nil {
		panic("remind: nil AuditLogger")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &Dispatcher{
		mailer:   mailer,
		audit:    audit,
		clock:    clock,
		logger:   logger,
		taskName: taskName,
		dryRun:   dryRun,
	}
}

// Dispatch processes one record. The returned error is non-nil only for
// audit storage faults, which must escalate; transport failures are folded
// into the result so the caller can continue with the rest of the batch.
func (d *Dispatcher) Dispatch(ctx context.Context, m MOU, now time.Time) (DispatchResult, error) {
	msg := Compose(m, now)
	result := DispatchResult{MOUID: m.ID, Recipients: msg.Recipients}

	if len(msg.Recipients) == 0 {
		// Counted as a failure with no audit trail, mirroring the
		// record-keeping system this engine replaces.
		d.logger.Warn("no email addresses for MOU", "mou", m.ID, "title", m.Title)
		result.Err = ErrNoRecipients

		return result, nil
	}

	if d.dryRun {
		d.logger.Info("dry run, would send", "mou", m.ID, "recipients", msg.Recipients, "subject", msg.Subject)
		result.Sent = true

		return result, nil
	}

	sendErr := d.mailer.Send(ctx, msg.Recipients, msg.Subject, msg.Body)
	if err := d.recordAttempts(ctx, m, msg, sendErr); err != nil {
		return result, err
	}

	if sendErr != nil {
		d.logger.Warn("reminder delivery failed", "mou", m.ID, "title", m.Title, "err", sendErr)
		result.Err = sendErr

		return result, nil
	}

	d.logger.Info("reminder sent", "mou", m.ID, "title", m.Title, "recipients", len(msg.Recipients))
	result.Sent = true

	return result, nil
}

// recordAttempts writes one audit entry per recipient. The single transport
// call covers all recipients, but the audit trail is per address.
func (d *Dispatcher) recordAttempts(ctx context.Context, m MOU, msg Message, sendErr error) error {
	entry := AuditEntry{
		TaskName: d.taskName,
		Subject:  msg.Subject,
		SentAt:   d.clock.Now(),
		Success:  sendErr == nil,
		MOUID:    m.ID,
	}
	if sendErr != nil {
		entry.ErrorMessage = sendErr.Error()
	}

	for _, recipient := range msg.Recipients {
		entry.Recipient = recipient
		if err := d.audit.Record(ctx, entry); err != nil {
			return fmt.Errorf("remind: audit write failed: %w", err)
		}
	}

	return nil
}
