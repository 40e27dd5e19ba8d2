package dto

import "time"

// CreatePartnerRequest alta de partner; Username+Password opcionales crean la cuenta vinculada.
type CreatePartnerRequest struct {
	Name           string `json:"name" validate:"required,max=150"`
	Company        string `json:"company" validate:"required,max=150"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty,max=40"`
	Address        string `json:"address" validate:"omitempty,max=250"`
	Region         string `json:"region" validate:"omitempty,max=100"`
	Specialization string `json:"specialization" validate:"omitempty,max=150"`
	Notes          string `json:"notes"`
	Username       string `json:"username" validate:"omitempty,min=3,max=50"`
	Password       string `json:"password" validate:"omitempty,min=6"`
}

// UpdatePartnerRequest edición de partner; Username+Password crean la cuenta si no existe.
type UpdatePartnerRequest struct {
	Name           string `json:"name" validate:"required,max=150"`
	Company        string `json:"company" validate:"required,max=150"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty,max=40"`
	Address        string `json:"address" validate:"omitempty,max=250"`
	Region         string `json:"region" validate:"omitempty,max=100"`
	Specialization string `json:"specialization" validate:"omitempty,max=150"`
	Status         string `json:"status" validate:"omitempty,oneof=active inactive"`
	Notes          string `json:"notes"`
	Username       string `json:"username" validate:"omitempty,min=3,max=50"`
	Password       string `json:"password" validate:"omitempty,min=6"`
}

// CreateAccountRequest cuenta para un partner existente; username vacío = email del partner.
type CreateAccountRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// PartnerResponse salida de un partner.
type PartnerResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Company        string    `json:"company"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	Region         string    `json:"region,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	UserID         *int64    `json:"user_id,omitempty"`
	Username       string    `json:"username,omitempty"`
	HasAccount     bool      `json:"has_account"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PartnerStatsResponse conteos de partners.
type PartnerStatsResponse struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Accounts int `json:"with_account"`
}

// PartnerRegistrationRequest solicitud pública de alta de partner.
type PartnerRegistrationRequest struct {
	PartnerName  string `json:"partner_name" validate:"required,max=150"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Company      string `json:"company" validate:"omitempty,max=150"`
	Region       string `json:"region" validate:"omitempty,max=100"`
	Sectors      string `json:"sectors" validate:"omitempty,max=250"`
}

// PartnerRegistrationResponse salida de una solicitud.
type PartnerRegistrationResponse struct {
	ID           int64     `json:"id"`
	PartnerName  string    `json:"partner_name"`
	ContactEmail string    `json:"contact_email"`
	Company      string    `json:"company,omitempty"`
	Region       string    `json:"region,omitempty"`
	Sectors      string    `json:"sectors,omitempty"`
	Status       string    `json:"status"`
	PartnerID    *int64    `json:"partner_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
