package errors

import "errors"

// Sentinel errors shared across features. Handlers map these onto HTTP
// statuses through internal/pkg/response.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrBadRequest      = errors.New("bad request")
	ErrInternal        = errors.New("internal server error")
	ErrValidation      = errors.New("validation failed")
	ErrNotRegistered   = errors.New("not a registered user")
	ErrBlocked         = errors.New("account is blocked")
	ErrAlreadyReported = errors.New("already reported")
	ErrRemoteOperation = errors.New("remote operation failed")
	ErrPartialFailure  = errors.New("operation partially failed")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Remote wraps a store or object-store failure so callers can classify it
// while keeping the underlying message for display.
func Remote(err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{sentinel: ErrRemoteOperation, cause: err}
}

// Partial marks the second half of a dual-write sequence as failed after the
// first half committed. Callers must surface this distinctly from full
// success and full failure.
func Partial(err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{sentinel: ErrPartialFailure, cause: err}
}

type wrapped struct {
	sentinel error
	cause    error
}

func (w *wrapped) Error() string { return w.sentinel.Error() + ": " + w.cause.Error() }

func (w *wrapped) Is(target error) bool { return target == w.sentinel }

func (w *wrapped) Unwrap() error { return w.cause }
