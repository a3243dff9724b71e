// Package validation binds request payloads and checks them.
//
// Every request shape implements Validatable, usually by delegating to
// Struct, which runs go-playground/validator over its `validate` tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/contacts-service/internal/errs"
)

// BadRequestMessage is the envelope message of every 400 response.
const BadRequestMessage = "Bad request"

type Validatable interface {
	Validate() error
}

// Detailer lets a request choose the envelope "error" text shown when
// its validation fails.
type Detailer interface {
	ValidationDetail() string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names ("phone") instead of Go names ("Phone").
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// Bind decodes path params and the JSON body into payload.
func Bind(c echo.Context, payload any) error {
	if err := c.Bind(payload); err != nil {
		message := err.Error()

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			message = fmt.Sprint(echoErr.Message)
		}

		return errs.NewBadRequestError(BadRequestMessage, message, nil, nil).WithCause(err)
	}

	return nil
}

// BindAndValidate binds payload, then validates it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := Bind(c, payload); err != nil {
		return err
	}

	return Validate(payload)
}

// Validate runs payload.Validate and converts failures into a 400 HTTPError.
func Validate(payload Validatable) error {
	err := payload.Validate()
	if err == nil {
		return nil
	}

	detail, fieldErrors := extractValidationError(err)
	if d, ok := payload.(Detailer); ok {
		detail = d.ValidationDetail()
	}

	return errs.NewBadRequestError(BadRequestMessage, detail, nil, fieldErrors).WithCause(err)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), nil
	}

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
