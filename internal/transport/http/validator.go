package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"chessgrid/internal/core"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const validatedBodyKey = "validatedBody"

var squarePattern = regexp.MustCompile(`^[A-Ha-h][1-8]$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "square" accepts board notation such as "e2" or "E2"
	v.RegisterValidation("square", func(fl validator.FieldLevel) bool {
		return squarePattern.MatchString(fl.Field().String())
	})
	return v
}

// validationMiddleware parses and validates JSON bodies of the POST routes
// that take one, storing the result for the handler
func validationMiddleware(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Next()
	}

	var body interface{}
	path := strings.TrimSuffix(c.Path(), "/")
	switch {
	case strings.HasSuffix(path, "/games"):
		body = &core.CreateGameRequest{}
		// An empty body means the opening position
		if len(c.Body()) == 0 {
			c.Locals(validatedBodyKey, body)
			return c.Next()
		}
	case strings.HasSuffix(path, "/moves"):
		body = &core.MoveRequest{}
	default:
		return c.Next()
	}

	if err := c.BodyParser(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid request body",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	if err := validate.Struct(body); err != nil {
		resp := core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrInvalidRequest,
			Details: describeValidation(err),
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "square" {
					resp.Code = core.ErrInvalidSquare
					break
				}
			}
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	c.Locals(validatedBodyKey, body)
	return c.Next()
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fe.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", fe.Field()))
		case "square":
			details.WriteString(fmt.Sprintf("%s must be a square from A1 to H8, got %q", fe.Field(), fe.Value()))
		case "max":
			if fe.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
			}
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return details.String()
}

// validatedBody returns the request stored by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (*T, bool) {
	body, ok := c.Locals(validatedBodyKey).(*T)
	return body, ok && body != nil
}
