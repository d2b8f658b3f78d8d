// Package remind implements a lock-guarded reminder dispatch engine for
// institutional MOU records with pluggable storage and mail backends.
//
// Typical flow:
//  1. An external scheduler (cron) invokes one run, for example through the
//     mou-reminder command.
//  2. The Job acquires a named lock through a LockStore. The lock is a single
//     database row guarded by a uniqueness constraint, so only one of several
//     racing processes wins; the others skip the run.
//  3. The Job fetches the eligible MOUs from a Source and dispatches one
//     reminder per record. A failure on one record never aborts the rest.
//  4. Every delivery attempt is recorded per recipient through an AuditLogger,
//     and the lock is released on every exit path. A crashed holder's lock
//     expires after its TTL and is reclaimed lazily on the next acquire.
//
// For the MySQL implementation of LockStore, AuditLogger, and Source, see the
// mysql package. For the SMTP Mailer, see the smtpmail package.
package remind
