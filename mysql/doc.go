// Package mysql provides the MySQL-backed lock store, audit log, and
// eligible-record source for the remind engine.
//
// The lock table's primary key on the task name is the serialization point
// for acquisition: every racing process issues a plain INSERT and exactly
// one succeeds; the rest observe a duplicate-key error. Audit rows are
// append-only, one per recipient per delivery attempt, keyed by a random
// UUID stored as 16 raw bytes. The MOU and event tables are owned by the
// record-keeping application and are only ever read here.
package mysql
