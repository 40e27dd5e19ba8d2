package entity

import "time"

// Estados de Partner.
const (
	PartnerActive   = "active"
	PartnerInactive = "inactive"
)

// Partner socio comercial que revende la plataforma BCS.
type Partner struct {
	ID             int64
	Name           string
	Company        string
	Email          string
	Phone          string
	Address        string
	Region         string
	Specialization string
	Status         string
	Notes          string
	UserID         *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Username string // solo lectura: usuario vinculado
}

// HasAccount indica si el partner tiene una cuenta de acceso vinculada.
func (p *Partner) HasAccount() bool { return p.UserID != nil }

// PartnerStats conteos de partners.
type PartnerStats struct {
	Total    int
	Active   int
	Inactive int
	Accounts int
}

// Estados de PartnerRegistration.
const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// PartnerRegistration solicitud pública para convertirse en partner.
type PartnerRegistration struct {
	ID           int64
	PartnerName  string
	ContactEmail string
	Company      string
	Region       string
	Sectors      string
	Status       string
	PartnerID    *int64
	CreatedAt    time.Time
}
