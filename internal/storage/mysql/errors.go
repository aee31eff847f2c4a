package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/damacus/iron-gallery/internal/errs"
)

// MySQL error numbers
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errAccessDenied      = 1045
	errTableAccessDenied = 1142
	errUnknownDatabase   = 1049
	errNoSuchTable       = 1146
	errBadFieldError     = 1054
	errParseError        = 1064
	errQueryInterrupted  = 1317
	errLockWaitTimeout   = 1205
	errConnRefused       = 2003
	errServerGone        = 2006
)

// mapError converts a MySQL driver error into an errs.Error
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, "record not found", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}
	if errors.Is(err, gomysql.ErrInvalidConn) || errors.Is(err, sql.ErrConnDone) {
		return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
	}

	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case errAccessDenied, errTableAccessDenied:
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		case errConnRefused, errServerGone, errUnknownDatabase:
			return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
		case errQueryInterrupted, errLockWaitTimeout:
			return errs.Wrap(errs.ErrKindTimeout, msg, err)
		case errNoSuchTable, errBadFieldError, errParseError:
			return errs.Wrap(errs.ErrKindQueryFailed, fmt.Sprintf("%s: %s", msg, mysqlErr.Message), err)
		}
	}

	return errs.Wrap(errs.ErrKindUnknown, msg, err)
}
