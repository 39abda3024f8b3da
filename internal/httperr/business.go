package httperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindForbidden
	KindNotFound
	KindConflict
	KindStorage
)

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, code, message string) error {
	return &BusinessError{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) error {
	return newError(KindValidation, code, message)
}

func Authentication(code, message string) error {
	return newError(KindAuthentication, code, message)
}

func Forbidden(code, message string) error {
	return newError(KindForbidden, code, message)
}

func NotFoundErr(code, message string) error {
	return newError(KindNotFound, code, message)
}

func Conflict(code, message string) error {
	return newError(KindConflict, code, message)
}

// Storage wraps a persistence failure. The cause is kept for logs only.
func Storage(code string, cause error) error {
	return &BusinessError{Kind: KindStorage, Code: code, Message: "internal error", Err: cause}
}

func IsBusiness(err error, code string) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns KindStorage for errors outside the taxonomy.
func KindOf(err error) Kind {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindStorage
}
