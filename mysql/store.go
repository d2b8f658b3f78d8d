package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/mousuite/remind"
)

const (
	maxErrorLen = 1024
	dateLayout  = "2006-01-02"
)

// Store implements the remind engine's LockStore, AuditLogger, and Source
// over MySQL. The DSN must enable parseTime so DATE and TIMESTAMP columns
// scan into time.Time.
type Store struct {
	db      *sql.DB
	cfg     Config
	queries queries
}

var _ remind.LockStore = (*Store)(nil)
var _ remind.AuditLogger = (*Store)(nil)
var _ remind.Source = (*Store)(nil)

// NewStore constructs a MySQL store with validated configuration.
func NewStore(db *sql.DB, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrDBRequired
	}

	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg = cfg.withDefaults()

	tables := []*string{&cfg.LockTable, &cfg.AuditTable, &cfg.MOUTable, &cfg.EventTable}
	for _, table := range tables {
		name, err := sanitizeTableName(*table)
		if err != nil {
			return nil, err
		}
		*table = name
	}

	return &Store{
		db:      db,
		cfg:     cfg,
		queries: newQueries(cfg.LockTable, cfg.AuditTable, cfg.MOUTable, cfg.EventTable),
	}, nil
}

// MustNewStore constructs a MySQL store or panics on error.
func MustNewStore(db *sql.DB, opts ...Option) *Store {
	store, err := NewStore(db, opts...)
	if err != nil {
		panic(err)
	}

	return store
}

// InsertLock atomically inserts a fresh lock row. The primary key on
// task_name makes the insert the serialization point: when another
// non-expired row is present, MySQL rejects the insert with a duplicate-key
// error, surfaced as remind.ErrLockExists.
func (s *Store) InsertLock(ctx context.Context, lock remind.Lock) error {
	_, err := s.db.ExecContext(
		ctx,
		s.queries.insertLock,
		lock.TaskName,
		lock.LockedBy,
		lock.LockedAt,
		lock.ExpiresAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: task %s", remind.ErrLockExists, lock.TaskName)
		}

		return fmt.Errorf("remind mysql: lock insert failed: %w", err)
	}

	return nil
}

// DeleteLock removes the lock row for the task. Missing rows are not an
// error.
func (s *Store) DeleteLock(ctx context.Context, taskName string) error {
	if _, err := s.db.ExecContext(ctx, s.queries.deleteLock, taskName); err != nil {
		return fmt.Errorf("remind mysql: lock delete failed: %w", err)
	}

	return nil
}

// DeleteExpiredLocks removes every lock row whose expiry has passed.
func (s *Store) DeleteExpiredLocks(ctx context.Context, now time.Time) error {
	if _, err := s.db.ExecContext(ctx, s.queries.deleteExpired, now); err != nil {
		return fmt.Errorf("remind mysql: expired lock delete failed: %w", err)
	}

	return nil
}

// GetLock returns the current lock row for the task.
func (s *Store) GetLock(ctx context.Context, taskName string) (remind.Lock, error) {
	var lock remind.Lock
	err := s.db.QueryRowContext(ctx, s.queries.selectLock, taskName).Scan(
		&lock.TaskName,
		&lock.LockedBy,
		&lock.LockedAt,
		&lock.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return remind.Lock{}, remind.ErrLockNotFound
		}

		return remind.Lock{}, fmt.Errorf("remind mysql: lock select failed: %w", err)
	}

	return lock, nil
}

// Record appends a single audit row. Each row is an independent atomic
// insert; no cross-row transaction is needed since every row is
// independently meaningful.
func (s *Store) Record(ctx context.Context, entry remind.AuditEntry) error {
	id := s.cfg.NewID()
	sentAt := s.auditSentAt(entry)

	errMsg := any(nil)
	if entry.ErrorMessage != "" {
		errMsg = truncateMessage(entry.ErrorMessage)
	}
	mouID := any(nil)
	if entry.MOUID != 0 {
		mouID = entry.MOUID
	}

	_, err := s.db.ExecContext(
		ctx,
		s.queries.insertAudit,
		id[:],
		entry.TaskName,
		entry.Recipient,
		entry.Subject,
		sentAt,
		entry.Success,
		errMsg,
		mouID,
	)
	if err != nil {
		return fmt.Errorf("remind mysql: audit insert failed: %w", err)
	}

	return nil
}

// auditSentAt stamps entries that arrive without an explicit send time.
func (s *Store) auditSentAt(entry remind.AuditEntry) time.Time {
	if entry.SentAt.IsZero() {
		return s.cfg.Clock.Now()
	}

	return entry.SentAt
}

// RecentAuditEntries returns the newest audit rows for a task, most recent
// first. It backs the administrative reporting surface.
func (s *Store) RecentAuditEntries(ctx context.Context, taskName string, limit int) ([]remind.AuditEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := s.db.QueryContext(ctx, s.queries.selectAudit, taskName, limit)
	if err != nil {
		return nil, fmt.Errorf("remind mysql: audit select failed: %w", err)
	}
	defer rows.Close()

	entries := make([]remind.AuditEntry, 0, limit)
	for rows.Next() {
		var (
			entry  remind.AuditEntry
			errMsg sql.NullString
			mouID  sql.NullInt64
		)
		if err := rows.Scan(
			&entry.TaskName,
			&entry.Recipient,
			&entry.Subject,
			&entry.SentAt,
			&entry.Success,
			&errMsg,
			&mouID,
		); err != nil {
			return nil, fmt.Errorf("remind mysql: audit scan failed: %w", err)
		}
		entry.ErrorMessage = errMsg.String
		entry.MOUID = mouID.Int64
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("remind mysql: audit rows failed: %w", err)
	}

	return entries, nil
}

// EligibleMOUs returns every MOU whose end date has not passed as of now,
// with events attached. The MOU and event tables are only read, never
// written.
func (s *Store) EligibleMOUs(ctx context.Context, now time.Time) ([]remind.MOU, error) {
	rows, err := s.db.QueryContext(ctx, s.queries.selectEligible, now.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("remind mysql: eligible select failed: %w", err)
	}
	defer rows.Close()

	var mous []remind.MOU
	for rows.Next() {
		var (
			mou       remind.MOU
			org       sql.NullString
			coordName sql.NullString
			coordMail sql.NullString
			staffMail sql.NullString
		)
		if err := rows.Scan(
			&mou.ID,
			&mou.Title,
			&org,
			&mou.Status,
			&mou.EndDate,
			&coordName,
			&coordMail,
			&staffMail,
		); err != nil {
			return nil, fmt.Errorf("remind mysql: eligible scan failed: %w", err)
		}
		mou.OrganizationName = org.String
		mou.CoordinatorName = coordName.String
		mou.CoordinatorEmail = coordMail.String
		mou.StaffCoordinatorEmail = staffMail.String
		mous = append(mous, mou)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("remind mysql: eligible rows failed: %w", err)
	}

	if err := s.attachEvents(ctx, mous); err != nil {
		return nil, err
	}

	return mous, nil
}

func (s *Store) attachEvents(ctx context.Context, mous []remind.MOU) error {
	if len(mous) == 0 {
		return nil
	}

	byID := make(map[int64]*remind.MOU, len(mous))
	args := make([]any, 0, len(mous))
	for i := range mous {
		byID[mous[i].ID] = &mous[i]
		args = append(args, mous[i].ID)
	}

	query := buildEventQuery(s.queries.eventTable, len(mous))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remind mysql: event select failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			mouID int64
			event remind.Event
		)
		if err := rows.Scan(&mouID, &event.Title, &event.DueDate, &event.Status); err != nil {
			return fmt.Errorf("remind mysql: event scan failed: %w", err)
		}
		if mou, ok := byID[mouID]; ok {
			mou.Events = append(mou.Events, event)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("remind mysql: event rows failed: %w", err)
	}

	return nil
}

func truncateMessage(msg string) string {
	if utf8.RuneCountInString(msg) <= maxErrorLen {
		return msg
	}

	runes := []rune(msg)

	return string(runes[:maxErrorLen])
}
