package validation

import (
	"errors"
	"testing"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_CampoObligatorio(t *testing.T) {
	err := Struct(dto.CreateUserRequest{Password: "secreto", Role: "cliente"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "username", ve.Field, "se reporta el nombre JSON")
	assert.Equal(t, "es obligatorio", ve.Message)
}

func TestStruct_Oneof(t *testing.T) {
	err := Struct(dto.CreateUserRequest{Username: "ana", Password: "secreto", Role: "root"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "role", ve.Field)
	assert.Contains(t, ve.Message, "admin, partner, cliente")
}

func TestStruct_Fecha(t *testing.T) {
	err := Struct(dto.CommissionRequest{ClientName: "Acme", StartDate: "01/02/2026"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "start_date", ve.Field)

	assert.NoError(t, Struct(dto.CommissionRequest{ClientName: "Acme", StartDate: "2026-02-01"}))
}

func TestStruct_Valido(t *testing.T) {
	assert.NoError(t, Struct(dto.LoginRequest{Identifier: "admin", Password: "admin123"}))
}

func TestRequired(t *testing.T) {
	assert.ErrorIs(t, Required("description", "  "), domain.ErrValidation)
	assert.NoError(t, Required("description", "x"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("start_date", "2026-02-01")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 2026, d.Year())

	d, err = ParseDate("start_date", "")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("start_date", "ayer")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHTTPURL(t *testing.T) {
	assert.NoError(t, HTTPURL("app_url", "https://crm.example.com"))
	assert.NoError(t, HTTPURL("app_url", "HTTP://x.co"))
	assert.ErrorIs(t, HTTPURL("app_url", "ftp://x.co"), domain.ErrValidation)
	assert.ErrorIs(t, HTTPURL("app_url", "crm.example.com"), domain.ErrValidation)
}
