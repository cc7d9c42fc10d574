// Package validate traduce las reglas de go-playground/validator a la lista
// [{field, message}] del envelope.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"woofy-api/internal/platform/apperrors"

	"github.com/go-playground/validator/v10"
)

const Message = "Error de validación"

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// Struct valida s según sus tags `validate`.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation(Message)
	}
	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return apperrors.Validation(Message, fields...)
}

// Checker acumula errores de campos sueltos (bodies parciales, query params).
type Checker struct {
	fields []apperrors.FieldError
}

// Var valida value contra tag y registra el error bajo field.
func (c *Checker) Var(field string, value any, tag string) {
	err := v.Var(value, tag)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		c.Add(field, describe(verrs[0]))
		return
	}
	c.Add(field, "es inválido")
}

func (c *Checker) Add(field, message string) {
	c.fields = append(c.fields, apperrors.FieldError{Field: field, Message: message})
}

func (c *Checker) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return apperrors.Validation(Message, c.fields...)
}

// UUID valida un id de path.
func UUID(field, value string) error {
	var c Checker
	c.Var(field, value, "required,uuid")
	return c.Err()
}

func describe(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		if isString {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url", "http_url":
		return "debe ser una URL válida"
	case "uuid", "uuid4":
		return "debe ser un UUID válido"
	case "email":
		return "debe ser un email válido"
	case "gtfield":
		return "debe ser posterior a la fecha de inicio"
	case "e164":
		return "debe ser un teléfono válido"
	default:
		return "es inválido"
	}
}
