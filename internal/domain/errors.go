package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("datos inválidos")
	ErrDuplicateKey       = errors.New("el usuario o email ya existe")
	ErrAlreadyConverted   = errors.New("el contacto ya fue convertido a usuario")
	ErrProtectedRecord    = errors.New("no se puede eliminar el usuario administrador")
	ErrDatabase           = errors.New("error de base de datos")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
)

// ValidationError campo obligatorio ausente o con formato inválido.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// DatabaseError fallo del motor que no corresponde a otra categoría.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *DatabaseError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrDatabase).
func (e *DatabaseError) Is(target error) bool { return target == ErrDatabase }
