// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrAccountInactive = errors.New("account inactive")
)

// Stable machine-readable codes surfaced in error responses.
const (
	CodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeAccountInactive        = "ACCOUNT_INACTIVE"
	CodeTokenExpired           = "TOKEN_EXPIRED"
	CodeTokenInvalid           = "TOKEN_INVALID"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeConflict               = "CONFLICT"
	CodeValidationError        = "VALIDATION_ERROR"
	CodeRateLimited            = "RATE_LIMITED"
	CodeInternalError          = "INTERNAL_ERROR"
)

// AppError is a terminal, user-facing failure with a stable error code.
type AppError struct {
	Err    error
	Detail string
	Status int
	Code   string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, detail string, status int, code string) *AppError {
	return &AppError{
		Err:    err,
		Detail: detail,
		Status: status,
		Code:   code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AuthenticationRequiredError() *AppError {
	return NewAppError(
		ErrUnauthorized,
		"authentication required",
		http.StatusUnauthorized,
		CodeAuthenticationRequired,
	)
}

func InvalidCredentialsError() *AppError {
	return NewAppError(
		ErrUnauthorized,
		"invalid username or password",
		http.StatusUnauthorized,
		CodeInvalidCredentials,
	)
}

func AccountInactiveError() *AppError {
	return NewAppError(
		ErrAccountInactive,
		"account is deactivated",
		http.StatusUnauthorized,
		CodeAccountInactive,
	)
}

func TokenExpiredError() *AppError {
	return NewAppError(
		ErrTokenExpired,
		"token has expired",
		http.StatusUnauthorized,
		CodeTokenExpired,
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"token is invalid",
		http.StatusUnauthorized,
		CodeTokenInvalid,
	)
}

func ForbiddenError(detail string) *AppError {
	if detail == "" {
		detail = "insufficient permissions"
	}
	return NewAppError(ErrForbidden, detail, http.StatusForbidden, CodeForbidden)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		resource+" not found",
		http.StatusNotFound,
		CodeNotFound,
	)
}

func DuplicateError(field string) *AppError {
	return NewAppError(
		ErrDuplicateKey,
		field+" already exists",
		http.StatusConflict,
		CodeConflict,
	)
}

func ValidationError(detail string) *AppError {
	return NewAppError(
		ErrInvalidInput,
		detail,
		http.StatusBadRequest,
		CodeValidationError,
	)
}
