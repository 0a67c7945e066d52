package models

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// MySQL server error numbers for integrity constraint violations
var mysqlConstraintErrors = map[uint16]bool{
	1048: true, // column cannot be null
	1062: true, // duplicate entry
	1451: true, // foreign key, parent row
	1452: true, // foreign key, child row
	3819: true, // check constraint
}

// IsConstraintViolation reports whether err was raised by the database because a
// constraint (unique, foreign key, not null, check) was violated
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlConstraintErrors[myErr.Number]
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23 is integrity constraint violation
		return strings.HasPrefix(pgErr.Code, "23")
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

// ConstraintMessages returns the database messages to pass back to the client
func ConstraintMessages(err error) []string {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return []string{myErr.Message}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			return []string{pgErr.Message, pgErr.Detail}
		}
		return []string{pgErr.Message}
	}
	return []string{err.Error()}
}
