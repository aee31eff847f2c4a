package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	msqlite "modernc.org/sqlite"

	"github.com/damacus/iron-gallery/internal/errs"
)

// SQLite primary result codes
// Full list: https://www.sqlite.org/rescode.html
const (
	sqliteError    = 1
	sqlitePerm     = 3
	sqliteBusy     = 5
	sqliteLocked   = 6
	sqliteReadOnly = 8
	sqliteCantOpen = 14
	sqliteAuth     = 23
)

// mapError converts a SQLite driver error into an errs.Error
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

	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqliteBusy, sqliteLocked:
			return errs.Wrap(errs.ErrKindTimeout, msg, err)
		case sqliteCantOpen:
			return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
		case sqlitePerm, sqliteReadOnly, sqliteAuth:
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		case sqliteError:
			return errs.Wrap(errs.ErrKindQueryFailed, fmt.Sprintf("%s: %s", msg, liteErr.Error()), err)
		}
	}

	return errs.Wrap(errs.ErrKindUnknown, msg, err)
}
