package mysql

import (
	"strings"
	"testing"
)

func TestLockSchema(t *testing.T) {
	schema, err := LockSchema("task_locks")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(schema, "PRIMARY KEY (task_name)") {
		t.Fatalf("lock table must be keyed by task name:\n%s", schema)
	}
	if !strings.Contains(schema, "expires_at TIMESTAMP(6) NOT NULL") {
		t.Fatalf("lock table must carry an expiry:\n%s", schema)
	}
}

func TestAuditSchema(t *testing.T) {
	schema, err := AuditSchema("email_logs")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(schema, "mou_id BIGINT NULL") {
		t.Fatalf("mou reference must be nullable:\n%s", schema)
	}
	if strings.Contains(schema, "FOREIGN KEY") {
		t.Fatalf("audit rows must survive MOU deletion, no FK expected:\n%s", schema)
	}
}

func TestSchemaRejectsInvalidName(t *testing.T) {
	if _, err := LockSchema("locks;drop"); err == nil {
		t.Fatalf("expected invalid name to be rejected")
	}
	if _, err := AuditSchema(""); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
}
