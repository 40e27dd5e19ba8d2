package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignAppRequest asignación de una app (Sub-BCS) a un usuario cliente.
type AssignAppRequest struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	Name        string `json:"app_name" validate:"required,max=120"`
	Description string `json:"app_description"`
	URL         string `json:"app_url" validate:"required,url"`
	Icon        string `json:"app_icon" validate:"omitempty,max=16"`
	Type        string `json:"app_type" validate:"omitempty,max=60"`
}

// AppResponse salida de una app asignada.
type AppResponse struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Username     string     `json:"username,omitempty"`
	PartnerID    *int64     `json:"partner_id,omitempty"`
	PartnerName  string     `json:"partner_name,omitempty"`
	Name         string     `json:"app_name"`
	Description  string     `json:"app_description,omitempty"`
	URL          string     `json:"app_url"`
	Icon         string     `json:"app_icon"`
	Type         string     `json:"app_type,omitempty"`
	Status       string     `json:"status"`
	AccessCount  int        `json:"access_count"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ClientSubBCSRequest registro comercial de Sub-BCS de cliente.
type ClientSubBCSRequest struct {
	ContactID    *int64          `json:"contact_id"`
	ClientName   string          `json:"client_name" validate:"required,max=150"`
	CompanyName  string          `json:"company_name" validate:"required,max=150"`
	BCSType      string          `json:"bcs_type" validate:"required,max=80"`
	Modules      string          `json:"modules"`
	UsersCount   int             `json:"users_count" validate:"omitempty,min=1"`
	Status       string          `json:"status" validate:"omitempty,oneof=active inactive trial"`
	StartDate    string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	MonthlyValue decimal.Decimal `json:"monthly_value"`
	Notes        string          `json:"notes"`
}

// ClientSubBCSResponse salida del registro.
type ClientSubBCSResponse struct {
	ID           int64           `json:"id"`
	PartnerID    int64           `json:"partner_id"`
	ContactID    *int64          `json:"contact_id,omitempty"`
	ClientName   string          `json:"client_name"`
	CompanyName  string          `json:"company_name"`
	BCSType      string          `json:"bcs_type"`
	Modules      string          `json:"modules,omitempty"`
	UsersCount   int             `json:"users_count"`
	Status       string          `json:"status"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	MonthlyValue decimal.Decimal `json:"monthly_value"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PartnerSubBCSRequest instancia BCS de un partner; PartnerID solo lo usa el admin.
type PartnerSubBCSRequest struct {
	PartnerID   int64  `json:"partner_id"`
	BCSName     string `json:"bcs_name" validate:"required,max=150"`
	BCSType     string `json:"bcs_type" validate:"required,max=80"`
	Description string `json:"description"`
	Modules     string `json:"modules"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive development"`
	Notes       string `json:"notes"`
}

// PartnerSubBCSResponse salida de la instancia.
type PartnerSubBCSResponse struct {
	ID          int64     `json:"id"`
	PartnerID   int64     `json:"partner_id"`
	PartnerName string    `json:"partner_name,omitempty"`
	BCSName     string    `json:"bcs_name"`
	BCSType     string    `json:"bcs_type"`
	Description string    `json:"description,omitempty"`
	Modules     string    `json:"modules,omitempty"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
