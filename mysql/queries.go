package mysql

import "fmt"

type queries struct {
	insertLock     string
	deleteLock     string
	deleteExpired  string
	selectLock     string
	insertAudit    string
	selectAudit    string
	selectEligible string
	eventTable     string
}

func newQueries(lockTable, auditTable, mouTable, eventTable string) queries {
	auditCols := "id, task_name, recipient, subject, sent_at, success, error_message, mou_id"
	mouCols := "id, title, organization_name, status, end_date, " +
		"mou_coordinator_name, mou_coordinator_email, staff_coordinator_email"

	return queries{
		insertLock: fmt.Sprintf(
			"INSERT INTO %s (task_name, locked_by, locked_at, expires_at) VALUES (?, ?, ?, ?)",
			lockTable,
		),
		deleteLock:    fmt.Sprintf("DELETE FROM %s WHERE task_name = ?", lockTable),
		deleteExpired: fmt.Sprintf("DELETE FROM %s WHERE expires_at < ?", lockTable),
		selectLock: fmt.Sprintf(
			"SELECT task_name, locked_by, locked_at, expires_at FROM %s WHERE task_name = ?",
			lockTable,
		),
		insertAudit: fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			auditTable,
			auditCols,
		),
		selectAudit: fmt.Sprintf(
			"SELECT task_name, recipient, subject, sent_at, success, error_message, mou_id "+
				"FROM %s WHERE task_name = ? ORDER BY sent_at DESC, id DESC LIMIT ?",
			auditTable,
		),
		selectEligible: fmt.Sprintf(
			"SELECT %s FROM %s WHERE end_date >= ? ORDER BY id ASC",
			mouCols,
			mouTable,
		),
		eventTable: eventTable,
	}
}

func buildEventQuery(table string, count int) string {
	return fmt.Sprintf(
		"SELECT mou_id, title, due_date, status FROM %s WHERE mou_id IN (%s) ORDER BY mou_id ASC, due_date ASC, id ASC",
		table,
		makePlaceholders(count),
	)
}

const placeholderGrowth = 2

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}

	buf := make([]byte, 0, count*placeholderGrowth)
	for i := 0; i < count; i++ {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, '?')
	}

	return string(buf)
}
