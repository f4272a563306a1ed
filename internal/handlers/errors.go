package handlers

import (
	"errors"

	"storefront/internal/auth"
	"storefront/internal/response"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// apiError is a classified service error ready to be written.
type apiError struct {
	status  int
	code    string
	message string
	fields  map[string]string
	cause   error
}

func classify(err error) apiError {
	e := apiError{cause: err}
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		e.status, e.code, e.message, e.fields = fiber.StatusBadRequest, response.CodeValidation, "Validation failed", verr.Fields
	case errors.Is(err, services.ErrUserIDRequired):
		e.status, e.code, e.message = fiber.StatusNotFound, response.CodeNotFound, "User ID is required"
	case errors.Is(err, services.ErrDuplicateUsername):
		e.status, e.code, e.message = fiber.StatusConflict, response.CodeDuplicate, "Username already exists."
	case errors.Is(err, services.ErrDuplicateCategory):
		e.status, e.code, e.message = fiber.StatusConflict, response.CodeDuplicate, "Category already exists."
	case errors.Is(err, services.ErrUserNotFound):
		e.status, e.code, e.message = fiber.StatusNotFound, response.CodeNotFound, "User not found"
	case errors.Is(err, services.ErrProductNotFound):
		e.status, e.code, e.message = fiber.StatusNotFound, response.CodeNotFound, "Product not found"
	case errors.Is(err, services.ErrCategoryNotFound):
		e.status, e.code, e.message = fiber.StatusNotFound, response.CodeNotFound, "Category not found"
	case errors.Is(err, services.ErrBadCredentials):
		e.status, e.code, e.message = fiber.StatusBadRequest, response.CodeBadCredentials, badCredentialsMessage
	case errors.Is(err, services.ErrInactiveAccount):
		e.status, e.code, e.message = fiber.StatusBadRequest, response.CodeInactiveAccount, "Account is inactive. Please try to login later."
	case errors.Is(err, auth.ErrUnauthenticated):
		e.status, e.code, e.message = fiber.StatusUnauthorized, response.CodeUnauthenticated, "You are required to login"
	case errors.Is(err, auth.ErrForbidden):
		e.status, e.code, e.message = fiber.StatusForbidden, response.CodeForbidden, "You cannot perform this action on your own account"
	default:
		e.status, e.code, e.message = fiber.StatusInternalServerError, response.CodeServerError, response.ServerErrorMessage
	}
	return e
}

func (e apiError) write(c *fiber.Ctx, log logrus.FieldLogger, action string) error {
	entry := log.WithError(e.cause).WithFields(logrus.Fields{"path": c.Path(), "status": e.status})
	if e.status >= fiber.StatusInternalServerError {
		entry.Error(action)
		return response.InternalServerError(c)
	}
	entry.Debug(action)

	if e.fields != nil {
		return response.Invalid(c, e.status, e.message, e.fields)
	}
	return response.Error(c, e.status, e.code, e.message)
}

// writeError classifies err and writes the matching failed response.
func writeError(c *fiber.Ctx, log logrus.FieldLogger, action string, err error) error {
	return classify(err).write(c, log, action)
}

func invalidBody(c *fiber.Ctx, status int) error {
	return response.Error(c, status, response.CodeValidation, "Invalid request body")
}
