package entity

import "time"

// Estados de Contact (activo/inactivo, independiente del ciclo de conversión).
const (
	ContactActive   = "active"
	ContactInactive = "inactive"
)

// ContactState etapa del ciclo de vida comercial de un contacto.
type ContactState string

const (
	ContactUnvalidated ContactState = "unvalidated"
	ContactValidated   ContactState = "validated"
	ContactConverted   ContactState = "converted"
)

// Contact prospecto registrado por un partner.
type Contact struct {
	ID              int64
	PartnerID       int64
	Name            string
	Company         string
	Email           string
	Phone           string
	Position        string
	Industry        string
	Status          string
	Notes           string
	Validated       bool
	ValidationDate  *time.Time
	ConvertedToUser bool
	ConvertedUserID *int64
	ConversionDate  *time.Time
	LastContact     *time.Time
	CreatedAt       time.Time
}

// State devuelve la etapa actual: converted tiene prioridad sobre validated.
func (c *Contact) State() ContactState {
	switch {
	case c.ConvertedToUser:
		return ContactConverted
	case c.Validated:
		return ContactValidated
	default:
		return ContactUnvalidated
	}
}

// MarkValidated aplica la transición unvalidated -> validated.
func (c *Contact) MarkValidated(at time.Time) {
	c.Validated = true
	c.ValidationDate = &at
}

// MarkConverted aplica la transición validated -> converted.
func (c *Contact) MarkConverted(userID int64, at time.Time) {
	c.ConvertedToUser = true
	c.ConvertedUserID = &userID
	c.ConversionDate = &at
}

// ContactFilter estado de vista explícito para el listado de contactos.
type ContactFilter struct {
	Status     string // "", active, inactive
	Validation string // "", all, validated, unvalidated, converted
	Industry   string
	Search     string // nombre, empresa o email
}
