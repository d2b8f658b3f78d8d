package mysql

import (
	"errors"
	"testing"
)

func TestSanitizeTableName(t *testing.T) {
	valid := []string{"task_locks", "email_logs", "mou.task_locks", "Locks2"}
	for _, name := range valid {
		if _, err := sanitizeTableName(name); err != nil {
			t.Fatalf("expected %q to be valid: %v", name, err)
		}
	}

	invalid := []string{"", ".", "locks;drop", "task locks", "locks.", "a..b"}
	for _, name := range invalid {
		if _, err := sanitizeTableName(name); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestSanitizeTableNameEmpty(t *testing.T) {
	if _, err := sanitizeTableName(""); !errors.Is(err, ErrTableNameRequired) {
		t.Fatalf("expected ErrTableNameRequired, got %v", err)
	}
}
