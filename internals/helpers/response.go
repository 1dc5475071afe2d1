package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationMessage turns validator errors into one line for the form.
func ValidationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "Invalid input"
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must look like %s", field, fe.Param()))
		case "excludesall":
			msgs = append(msgs, fmt.Sprintf("%s must not contain any of %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// FromFiberError renders *fiber.Error with its own code, anything else as 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return RenderErrorPage(c, fe.Code, fe.Message)
	}
	return RenderErrorPage(c, fiber.StatusInternalServerError, "Internal server error")
}
