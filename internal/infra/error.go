package infra

import (
	"context"
	"errors"
	"log/slog"

	"campus-placement/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindTransient          RepositoryErrorKind = "TRANSIENT"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrAdminShutdown       = "57P01"
	pgErrCannotConnectNow    = "57P03"
)

// WrapRepoErr classifies err unless a kind is given explicitly. The result is
// marked with the matching errs class so upper layers never look at pg codes.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	if k == KindDBFailure || k == KindTransient {
		slog.Error("Repository error: "+msg, slog.String("kind", string(k)), slog.Any("error", err))
	}

	var wrapped error
	if err != nil {
		wrapped = errs.Wrap(err, msg)
	}
	repoErr := RepositoryError{Kind: k, msg: msg, err: wrapped}

	switch k {
	case KindNotFound:
		return errs.Mark(repoErr, errs.ErrNotFound)
	case KindTransient:
		return errs.Mark(repoErr, errs.ErrTransientStore)
	default:
		return repoErr
	}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errs.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func classify(err error) RepositoryErrorKind {
	if err == nil {
		return KindDBFailure
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return KindNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgErrUniqueViolation:
			return KindDuplicateKey
		case pgErr.Code == pgErrForeignKeyViolation:
			return KindForeignKeyViolated
		case pgErr.Code == pgErrAdminShutdown, pgErr.Code == pgErrCannotConnectNow, len(pgErr.Code) == 5 && pgErr.Code[:2] == "08":
			return KindTransient
		}
		return KindDBFailure
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) || errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}
	return KindDBFailure
}
