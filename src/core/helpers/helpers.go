package helpers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
	"github.com/ismaelstrey/quiz-biblico/src/core/logging"
)

// Initialize a validator instance using go-playground's validator package
var Validator = validator.New()

// FieldError is one entry of the per-field detail list attached to
// VALIDATION_ERROR responses.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
}

// Validate checks the struct fields against the specified validation tags and
// converts failures into a VALIDATION_ERROR carrying per-field details.
func Validate(val interface{}) error {
	err := Validator.Struct(val)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		details := make([]FieldError, 0, len(verrs))
		for _, ve := range verrs {
			details = append(details, FieldError{
				Field:   ve.Field(),
				Message: ve.Error(),
				Tag:     ve.Tag(),
			})
		}
		return apperror.Validation("invalid input data", details)
	}
	return apperror.Validation("invalid input data", nil)
}

// HandleSuccess sends a structured JSON response for successful requests.
func HandleSuccess(context *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return context.Status(statusCode).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"error":   nil,
		"data":    data,
	})
}

type errorBody struct {
	Type       apperror.Type `json:"type"`
	Message    string        `json:"message"`
	StatusCode int           `json:"statusCode"`
	Timestamp  string        `json:"timestamp"`
	RequestID  string        `json:"requestId,omitempty"`
	Details    interface{}   `json:"details,omitempty"`
}

// ErrorHandler builds the fiber error handler wrapping every route: any error
// escaping a handler becomes the structured {"error": {...}} envelope. Causes
// of 5xx responses are logged and never echoed to the client.
func ErrorHandler(log *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := apperror.From(err)

		requestID, _ := c.Locals("requestid").(string)
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			log.Error("%s %s request_id=%s: %v", c.Method(), c.Path(), requestID, appErr)
		} else {
			log.Debug("%s %s request_id=%s: %v", c.Method(), c.Path(), requestID, appErr)
		}

		return c.Status(appErr.StatusCode).JSON(fiber.Map{
			"error": errorBody{
				Type:       appErr.Type,
				Message:    appErr.Message,
				StatusCode: appErr.StatusCode,
				Timestamp:  time.Now().UTC().Format(time.RFC3339),
				RequestID:  requestID,
				Details:    appErr.Details,
			},
		})
	}
}
