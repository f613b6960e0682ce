package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes form the failure taxonomy of the service. Handlers and tests
// dispatch on Code, never on message text.
const (
	CodeInvalidIdentifier  = "INVALID_IDENTIFIER"
	CodeNotFound           = "NOT_FOUND"
	CodeInactiveAccount    = "INACTIVE_ACCOUNT"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeMissingPrincipal   = "MISSING_PRINCIPAL"
	CodeForbidden          = "FORBIDDEN"
	CodeUnknown            = "UNKNOWN"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewInvalidIdentifier signals a malformed id, detected before any store access.
func NewInvalidIdentifier(id string) error {
	return NewDomainError(CodeInvalidIdentifier, "The id must be a valid UUID", http.StatusBadRequest, map[string]any{"id": id})
}

func NewNotFound(id string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("User with id: %s not exists in database", id), http.StatusNotFound, nil)
}

// NewInactiveAccount marks a soft-deleted account. Deliberately a 400, not a
// 404: existence of the row is surfaced to the caller.
func NewInactiveAccount(id string) error {
	return NewDomainError(CodeInactiveAccount, "The user is inactive in database.", http.StatusBadRequest, map[string]any{"id": id})
}

// NewAccountInactive is the login-path variant of the inactive failure; it
// carries no identifier because login is keyed by email.
func NewAccountInactive() error {
	return NewDomainError(CodeInactiveAccount, "The user is not active in database", http.StatusBadRequest, nil)
}

func NewDuplicateEmail() error {
	return NewDomainError(CodeDuplicateEmail, "The element already exists in database.", http.StatusBadRequest, nil)
}

// NewInvalidCredentials covers both unknown-email and wrong-password so the
// two cases stay indistinguishable to the caller.
func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "Credentials are not valid", http.StatusUnauthorized, nil)
}

func NewInvalidToken(message string) error {
	if message == "" {
		message = "Token not valid"
	}
	return NewDomainError(CodeInvalidToken, message, http.StatusUnauthorized, nil)
}

func NewMissingPrincipal() error {
	return NewDomainError(CodeMissingPrincipal, "User not Found", http.StatusBadRequest, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

// NewUnknown wraps an unclassified storage or internal fault. The cause is
// kept for logging only; callers see the generic message.
func NewUnknown(err error) error {
	return &DomainError{
		Code:       CodeUnknown,
		Message:    "Please check server logs.",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewUnknown(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       CodeUnknown,
		Message:    "Please check server logs.",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == code
}
