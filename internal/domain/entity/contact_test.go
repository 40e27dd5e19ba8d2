package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContact_CicloDeVida(t *testing.T) {
	c := &Contact{Name: "Juan Pérez", PartnerID: 5}
	assert.Equal(t, ContactUnvalidated, c.State())

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c.MarkValidated(now)
	assert.Equal(t, ContactValidated, c.State())
	assert.Equal(t, now, *c.ValidationDate)

	c.MarkConverted(42, now.Add(time.Hour))
	assert.Equal(t, ContactConverted, c.State())
	assert.Equal(t, int64(42), *c.ConvertedUserID)
}

func TestActivity_ValidatesContact(t *testing.T) {
	contactID := int64(9)
	a := Activity{Type: ActivityValidation, Completed: true, ValidationSuccess: true, ContactID: &contactID}
	assert.True(t, a.ValidatesContact())

	a.ValidationSuccess = false
	assert.False(t, a.ValidatesContact(), "sin confirmación explícita no valida")

	a.ValidationSuccess = true
	a.Completed = false
	assert.False(t, a.ValidatesContact(), "una actividad pendiente no valida")

	a.Completed = true
	a.Type = "Llamada"
	assert.False(t, a.ValidatesContact())

	a.Type = ActivityValidation
	a.ContactID = nil
	assert.False(t, a.ValidatesContact())
}
