package infra

import (
	"errors"

	"booking-engine/internal/pkg/errs"
)

type RepositoryErrorKind string

// Infrastructure-specific error kinds
const (
	KindNotFound             RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure            RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey         RepositoryErrorKind = "DUPLICATE_KEY"
	KindInsufficientCapacity RepositoryErrorKind = "INSUFFICIENT_CAPACITY"
	// KindContention marks retryable losses of a concurrent update
	// (serialization failures, deadlocks)
	KindContention  RepositoryErrorKind = "CONTENTION"
	KindUnavailable RepositoryErrorKind = "UNAVAILABLE"
)

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

func WrapRepoErr(kind RepositoryErrorKind, msg string, err error) error {
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func NewRepoErr(kind RepositoryErrorKind, msg string) error {
	return RepositoryError{Kind: kind, msg: msg}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
