package mysql

import (
	"database/sql"
	"errors"
	"fmt"

	driver "github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the repositories translate.
const (
	errDuplicateEntry  = 1062
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
)

func errorNumber(err error) uint16 {
	var myErr *driver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number
	}
	return 0
}

func isDuplicate(err error) bool { return errorNumber(err) == errDuplicateEntry }
func isReferenced(err error) bool { return errorNumber(err) == errRowIsReferenced }
func isMissingParent(err error) bool { return errorNumber(err) == errNoReferencedRow }

// dbError wraps an unexpected driver error; sql.ErrNoRows becomes notFound.
func dbError(op string, err error, notFound error) error {
	if notFound != nil && errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return fmt.Errorf("%s: db error: %w", op, err)
}

// expectAffected maps a zero-row UPDATE or DELETE to notFound.
func expectAffected(op string, res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
