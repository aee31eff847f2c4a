package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/damacus/iron-gallery/internal/errs"
)

// SQLSTATE codes and classes
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgClassConnection   = "08"
	pgClassAuth         = "28"
	pgClassSyntaxOrRule = "42"
	pgQueryCanceled     = "57014"
	pgInsufficientPriv  = "42501"
	pgCannotConnectNow  = "57P03"
)

// mapError converts a pgx error into an errs.Error
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, "record not found", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgQueryCanceled:
			return errs.Wrap(errs.ErrKindTimeout, msg, err)
		case pgErr.Code == pgInsufficientPriv:
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		case pgErr.Code == pgCannotConnectNow:
			return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
		}
		class := pgErr.Code
		if len(class) > 2 {
			class = class[:2]
		}
		switch class {
		case pgClassConnection:
			return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
		case pgClassAuth:
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		case pgClassSyntaxOrRule:
			return errs.Wrap(errs.ErrKindQueryFailed, fmt.Sprintf("%s: %s", msg, pgErr.Message), err)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
	}

	return errs.Wrap(errs.ErrKindUnknown, msg, err)
}
