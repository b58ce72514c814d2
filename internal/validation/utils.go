package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads. Validate covers the shape
// of the input (lengths, formats of optional fields); required-field and
// uniqueness rules run in the service layer.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds path, query and body into payload and validates it.
// payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request payload"
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if msg, ok := echoErr.Message.(string); ok && msg != "" {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		return toValidationError(err)
	}

	return nil
}

func toValidationError(err error) error {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return errs.NewValidation("Validation failed", extractValidationError(validationErrors)...)
	}

	return err
}

func extractValidationError(validationErrors validator.ValidationErrors) []errs.FieldError {
	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))

	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required":
			msg = MsgRequired

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", err.Param())

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "cpf":
			msg = "must be a valid CPF"

		case "cnpj":
			msg = "must be a valid CNPJ"

		case "cpfcnpj":
			msg = "must be a valid CPF or CNPJ"

		case "cep":
			msg = "must be a valid CEP (00000-000)"

		case "phone_br":
			msg = "must be a valid phone number, e.g. (11) 91234-5678"

		case "date_ymd":
			msg = "must be a date in the format YYYY-MM-DD"

		case "time_hm":
			msg = "must be a time in the format HH:MM"

		case "dive":
			msg = "some items are invalid"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", err.Field(), err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: msg,
		})
	}

	return fieldErrors
}
