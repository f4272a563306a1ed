package response

import "github.com/gofiber/fiber/v2"

// Body status values.
const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

// Error codes carried in the "error" field of a failed response.
const (
	CodeValidation      = "validation_error"
	CodeDuplicate       = "duplicate_resource"
	CodeNotFound        = "not_found"
	CodeBadCredentials  = "bad_credentials"
	CodeInactiveAccount = "inactive_account"
	CodeUnauthenticated = "unauthenticated"
	CodeForbidden       = "forbidden"
	CodeRateLimited     = "rate_limited"
	CodeServerError     = "server_error"
)

// ServerErrorMessage is the only message clients see for unexpected failures.
const ServerErrorMessage = "Server Error. We cannot process your request."

// ErrorBody is the shape of every failed response.
type ErrorBody struct {
	Status  string            `json:"status"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"errors,omitempty"`
}

// OK sends a 200 response with status OK, message and any extra fields.
func OK(c *fiber.Ctx, message string, extra fiber.Map) error {
	body := fiber.Map{"status": StatusOK, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// Error sends a failed response.
func Error(c *fiber.Ctx, statusCode int, code, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Status:  StatusFailed,
		Error:   code,
		Message: message,
	})
}

// Invalid sends a validation failure with one message per field.
func Invalid(c *fiber.Ctx, statusCode int, message string, fields map[string]string) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Status:  StatusFailed,
		Error:   CodeValidation,
		Message: message,
		Fields:  fields,
	})
}

// Unauthorized sends a 401 response.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, CodeUnauthenticated, message)
}

// Forbidden sends a 403 response.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, CodeForbidden, message)
}

// InternalServerError sends a 500 response without details.
func InternalServerError(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, CodeServerError, ServerErrorMessage)
}
