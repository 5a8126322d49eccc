package mysql

import (
	"context"
	"database/sql/driver"
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"

	apperrors "sellerhub/internal/errors"
)

const (
	errDuplicateEntry     = 1062
	errLockWaitTimeout    = 1205
	errDeadlock           = 1213
	errRowIsReferenced    = 1451
	errServerShutdown     = 1053
	errTooManyConnections = 1040
)

// IsTransient reports whether err is a store failure after which the whole
// transaction was rolled back and may safely be attempted again.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case errDeadlock, errLockWaitTimeout, errServerShutdown, errTooManyConnections:
			return true
		}
		return false
	}

	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysqldriver.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded)
}

func IsDeadlock(err error) bool {
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == errDeadlock || mysqlErr.Number == errLockWaitTimeout
	}
	return false
}

func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry
}

// IsRowReferenced reports a foreign key RESTRICT violation on delete.
func IsRowReferenced(err error) bool {
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errRowIsReferenced
}

// Classify turns a store error into one of the application error kinds.
// Errors that already carry a kind pass through unchanged.
func Classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsDomainError(err):
		return err
	case IsTransient(err):
		return apperrors.NewTransientStoreError(op, err)
	case IsDuplicateEntry(err), IsRowReferenced(err):
		return apperrors.NewConflictError(op + ": conflicting row")
	default:
		return apperrors.NewInternalError(op, err)
	}
}
