package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application's error taxonomy.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeCredential   = "CREDENTIAL_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the application error type carried from the repository layer up
// to the HTTP surface. The Code decides the HTTP status; the Message is safe
// to show to clients.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a request payload that fails field constraints.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewUnauthorizedError reports a missing, invalid, or expired credential.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewForbiddenError reports a valid identity lacking permission for the
// targeted resource or action.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewNotFoundError reports a referenced entity that does not exist.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewConflictError reports a uniqueness violation.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewCredentialError reports a password hashing or verification failure that
// is unrelated to whether the password itself was correct.
func NewCredentialError(err error) *AppError {
	return &AppError{Code: CodeCredential, Message: "Credential processing failed", Err: err}
}

// NewInternalError wraps a backing-store or other server-side fault.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// HTTPStatus maps an error to the HTTP status code it renders as.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError renders err as the standard JSON error envelope. Internal
// details (wrapped causes) never reach the client; only the safe Message is
// serialized.
func RespondWithError(c *fiber.Ctx, err error) error {
	message := "Internal server error"
	var appErr *AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	return c.Status(HTTPStatus(err)).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
