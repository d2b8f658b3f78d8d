package remind

import "errors"

var (
	// ErrTaskNameRequired indicates that an empty task name was given.
	ErrTaskNameRequired = errors.New("remind task name is required")
	// ErrLockExists signals that a lock row for the task already exists.
	// LockStore implementations return it when the insert hits the
	// uniqueness constraint on the task name.
	ErrLockExists = errors.New("remind lock already exists")
	// ErrLockNotFound signals that no lock row exists for the task.
	ErrLockNotFound = errors.New("remind lock not found")
	// ErrNoRecipients indicates that a record has no usable recipient
	// addresses.
	ErrNoRecipients = errors.New("remind record has no recipients")
)
