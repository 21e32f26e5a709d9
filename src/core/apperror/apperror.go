package apperror

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Type tags every API error with one of the documented categories.
type Type string

const (
	TypeValidation     Type = "VALIDATION_ERROR"
	TypeAuthentication Type = "AUTHENTICATION_ERROR"
	TypeAuthorization  Type = "AUTHORIZATION_ERROR"
	TypeNotFound       Type = "NOT_FOUND_ERROR"
	TypeConflict       Type = "CONFLICT_ERROR"
	TypeRateLimit      Type = "RATE_LIMIT_ERROR"
	TypeExternalAPI    Type = "EXTERNAL_API_ERROR"
	TypeDatabase       Type = "DATABASE_ERROR"
	TypeInternal       Type = "INTERNAL_ERROR"
)

// AppError is the error returned by every handler. Err holds the underlying
// cause for server-side logging and is never serialized to the client.
type AppError struct {
	Type       Type        `json:"type"`
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
	Err        error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return string(e.Type) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Type) + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string, details interface{}) *AppError {
	return &AppError{Type: TypeValidation, Message: message, StatusCode: fiber.StatusBadRequest, Details: details}
}

func Authentication(message string) *AppError {
	return &AppError{Type: TypeAuthentication, Message: message, StatusCode: fiber.StatusUnauthorized}
}

func Authorization(message string) *AppError {
	return &AppError{Type: TypeAuthorization, Message: message, StatusCode: fiber.StatusForbidden}
}

func NotFound(message string) *AppError {
	return &AppError{Type: TypeNotFound, Message: message, StatusCode: fiber.StatusNotFound}
}

func Conflict(message string) *AppError {
	return &AppError{Type: TypeConflict, Message: message, StatusCode: fiber.StatusConflict}
}

func RateLimit(message string) *AppError {
	return &AppError{Type: TypeRateLimit, Message: message, StatusCode: fiber.StatusTooManyRequests}
}

func ExternalAPI(message string, err error) *AppError {
	return &AppError{Type: TypeExternalAPI, Message: message, StatusCode: fiber.StatusBadGateway, Err: err}
}

func Database(err error) *AppError {
	return &AppError{Type: TypeDatabase, Message: "database error", StatusCode: fiber.StatusInternalServerError, Err: err}
}

func Internal(message string, err error) *AppError {
	return &AppError{Type: TypeInternal, Message: message, StatusCode: fiber.StatusInternalServerError, Err: err}
}

// FromDatabase maps persistence errors onto the API taxonomy: missing rows to
// NOT_FOUND, unique violations to CONFLICT, foreign key violations to
// VALIDATION, anything else to DATABASE.
func FromDatabase(err error) *AppError {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("resource not found")
	case errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err):
		return Conflict("resource already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated) || isForeignKeyViolation(err):
		return Validation("referenced resource does not exist", nil)
	default:
		return Database(err)
	}
}

// From coerces any error into an *AppError, collapsing unknown errors to
// INTERNAL with the cause retained for logging only.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &AppError{Type: typeForStatus(fiberErr.Code), Message: fiberErr.Message, StatusCode: fiberErr.Code}
	}
	return Internal("internal server error", err)
}

func typeForStatus(status int) Type {
	switch status {
	case fiber.StatusBadRequest:
		return TypeValidation
	case fiber.StatusUnauthorized:
		return TypeAuthentication
	case fiber.StatusForbidden:
		return TypeAuthorization
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return TypeNotFound
	case fiber.StatusConflict:
		return TypeConflict
	case fiber.StatusTooManyRequests:
		return TypeRateLimit
	default:
		return TypeInternal
	}
}

// Driver-specific constraint errors that gorm does not translate. Postgres
// reports SQLSTATE codes, the sqlite driver used in tests reports plain text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23503") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
