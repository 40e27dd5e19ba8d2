// Package validation valida los DTO de entrada con go-playground/validator y traduce el primer
// fallo a un domain.ValidationError con mensaje para el usuario.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		// reportar el nombre JSON del campo, no el de Go
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "query"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
	return instance
}

// Struct valida s y devuelve nil o un *domain.ValidationError.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("", err.Error())
	}
	fe := verrs[0]
	return domain.NewValidationError(fe.Field(), message(fe))
}

// Required valida que value no esté vacío (para reglas que dependen de otros campos).
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "es obligatorio")
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_with":
		return "es obligatorio"
	case "email":
		return "no es un email válido"
	case "url":
		return "no es una URL válida"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return "debe tener el formato AAAA-MM-DD"
	default:
		return fmt.Sprintf("no cumple la regla %q", fe.Tag())
	}
}

// ParseDate interpreta una fecha AAAA-MM-DD en UTC; cadena vacía devuelve nil.
func ParseDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return nil, domain.NewValidationError(field, "debe tener el formato AAAA-MM-DD")
	}
	return &t, nil
}

// HTTPURL exige que la URL empiece por http:// o https://.
func HTTPURL(field, value string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
		return domain.NewValidationError(field, "debe comenzar con http:// o https://")
	}
	return nil
}
