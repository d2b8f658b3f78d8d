package mysql

import "fmt"

const lockSchemaTemplate = `CREATE TABLE IF NOT EXISTS %s (
	task_name VARCHAR(255) NOT NULL,
	locked_by VARCHAR(255) NOT NULL,
	locked_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	expires_at TIMESTAMP(6) NOT NULL,
	PRIMARY KEY (task_name),
	INDEX idx_task_expires (task_name, expires_at)
);`

const auditSchemaTemplate = `CREATE TABLE IF NOT EXISTS %s (
	id BINARY(16) NOT NULL,
	task_name VARCHAR(255) NOT NULL,
	recipient VARCHAR(320) NOT NULL,
	subject VARCHAR(500) NOT NULL,
	sent_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	success BOOLEAN NOT NULL DEFAULT TRUE,
	error_message VARCHAR(1024) NULL,
	mou_id BIGINT NULL,
	PRIMARY KEY (id),
	INDEX idx_sent_at (sent_at),
	INDEX idx_task_sent (task_name, sent_at)
);`

// LockSchema returns the CREATE TABLE statement for the task lock table.
// The primary key on task_name is the uniqueness constraint that serializes
// concurrent acquisition.
func LockSchema(table string) (string, error) {
	name, err := sanitizeTableName(table)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(lockSchemaTemplate, name), nil
}

// AuditSchema returns the CREATE TABLE statement for the email audit table.
// mou_id carries no foreign key on purpose: audit rows must survive deletion
// of the MOU they reference.
func AuditSchema(table string) (string, error) {
	name, err := sanitizeTableName(table)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(auditSchemaTemplate, name), nil
}
