package apperror

import "errors"

// Kind is the application-level error taxonomy. Controllers map kinds to HTTP
// statuses; services attach them to failures instead of matching error text.
type Kind string

const (
	KindUnauthorized  Kind = "unauthorized"
	KindForbidden     Kind = "forbidden"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindValidation    Kind = "validation"
	KindStorage       Kind = "storage"
	KindUpstreamModel Kind = "upstream_model"
)

type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, message)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

func Conflict(message string) *AppError {
	return New(KindConflict, message)
}

func Validation(message string) *AppError {
	return New(KindValidation, message)
}

// KindOf reports the kind of err, or KindStorage for unclassified errors so
// unexpected failures default to a 500.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
