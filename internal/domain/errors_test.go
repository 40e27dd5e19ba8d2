package domain

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Is(t *testing.T) {
	err := fmt.Errorf("crear usuario: %w", NewValidationError("username", "es obligatorio"))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrDuplicateKey))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "username", ve.Field)
	assert.Contains(t, err.Error(), "username: es obligatorio")
}

func TestDatabaseError_IsYUnwrap(t *testing.T) {
	err := &DatabaseError{Op: "insert user", Err: sql.ErrConnDone}

	assert.True(t, errors.Is(err, ErrDatabase))
	assert.True(t, errors.Is(err, sql.ErrConnDone))
}
