package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

// Success response without custom code (default 200)
func JsonOK(c *fiber.Ctx, message string, data interface{}) error {
	return JsonWithCode(c, fiber.StatusOK, message, data)
}

// 201 for created resources
func JsonCreated(c *fiber.Ctx, message string, data interface{}) error {
	return JsonWithCode(c, fiber.StatusCreated, message, data)
}

func JsonUpdated(c *fiber.Ctx, message string, data interface{}) error {
	return JsonWithCode(c, fiber.StatusOK, message, data)
}

func JsonWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// Paginated list response
func JsonList(c *fiber.Ctx, message string, data any, pagination any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"code":       fiber.StatusOK,
		"status":     "success",
		"message":    message,
		"data":       data,
		"pagination": pagination,
	})
}

func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

func JsonErrorWithDetails(c *fiber.Ctx, code int, message string, details interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
		"errors":  details,
	})
}

// JsonFromError maps a domain error (errs.Error), *fiber.Error, or any
// other error onto the consistent JSON error shape.
func JsonFromError(c *fiber.Ctx, err error) error {
	var de *errs.Error
	if errors.As(err, &de) {
		return c.Status(de.HTTPStatus()).JSON(fiber.Map{
			"code":    de.HTTPStatus(),
			"status":  "error",
			"error":   string(de.Kind),
			"message": de.Message,
		})
	}
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// Validator.v10 errors → field map
func JsonValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}

	fields := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return JsonErrorWithDetails(c, fiber.StatusUnprocessableEntity, "Validation failed", fields)
}
