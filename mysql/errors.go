package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrDBRequired is returned when a nil *sql.DB is provided.
	ErrDBRequired = errors.New("remind mysql: db is required")
	// ErrTableNameRequired is returned when a table name is empty.
	ErrTableNameRequired = errors.New("remind mysql: table name is required")
	// ErrInvalidTableName is returned when a table name has disallowed characters.
	ErrInvalidTableName = errors.New("remind mysql: invalid table name")
	// ErrInvalidLimit is returned when a query limit is not positive.
	ErrInvalidLimit = errors.New("remind mysql: limit must be positive")
)

const duplicateEntryCode = 1062

// isDuplicateKey checks if a MySQL error is ER_DUP_ENTRY (1062).
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == duplicateEntryCode
	}

	return false
}
