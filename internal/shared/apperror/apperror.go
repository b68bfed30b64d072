package apperror

import (
	"errors"
)

// ========================================
// ERROR KINDS
// ========================================
// Kind là phân loại lỗi ở tầng nghiệp vụ, handler map kind -> HTTP status.
// Domain errors wrap một kind + một sentinel riêng của domain.

var (
	// ErrNotFound covers both "absent" and "present but not visible to the viewer".
	ErrNotFound = errors.New("not found")

	// ErrForbidden - actor tried to mutate something they do not own
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState - transition attempted from a terminal state
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidOperation - structurally nonsensical request (self-follow, ...)
	ErrInvalidOperation = errors.New("invalid operation")

	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error là domain error chuẩn: Kind + Code + Message + sentinel gốc
type Error struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes both the kind and the domain sentinel to errors.Is
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// New tạo domain error mới
func New(kind error, code, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound / Forbidden / ... are shorthand constructors used by the domains.
func NotFound(code, message string, err error) *Error {
	return New(ErrNotFound, code, message, err)
}

func Forbidden(code, message string, err error) *Error {
	return New(ErrForbidden, code, message, err)
}

func InvalidState(code, message string, err error) *Error {
	return New(ErrInvalidState, code, message, err)
}

func InvalidOperation(code, message string, err error) *Error {
	return New(ErrInvalidOperation, code, message, err)
}

func Validation(code, message string, err error) *Error {
	return New(ErrValidation, code, message, err)
}

func Conflict(code, message string, err error) *Error {
	return New(ErrConflict, code, message, err)
}

func Unauthorized(code, message string, err error) *Error {
	return New(ErrUnauthorized, code, message, err)
}

// KindOf trả về kind của err, nil nếu err không phải domain error
func KindOf(err error) error {
	for _, kind := range []error{
		ErrNotFound,
		ErrForbidden,
		ErrInvalidState,
		ErrInvalidOperation,
		ErrValidation,
		ErrConflict,
		ErrUnauthorized,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// CodeOf returns the domain error code carried by err, or "" when absent.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
