package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeadRequest alta o edición de lead.
type LeadRequest struct {
	CompanyName  string `json:"company_name" validate:"required,max=150"`
	ContactName  string `json:"contact_name" validate:"required,max=150"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,max=40"`
	Industry     string `json:"industry" validate:"omitempty,max=100"`
	CompanySize  string `json:"company_size" validate:"omitempty,max=40"`
	PainPoints   string `json:"pain_points"`
	Source       string `json:"lead_source" validate:"omitempty,max=60"`
	Status       string `json:"status" validate:"omitempty,oneof=new contacted qualified unqualified"`
	Notes        string `json:"notes"`
}

// LeadFilterQuery filtros del listado de leads.
type LeadFilterQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=new contacted qualified unqualified"`
	Source string `query:"source"`
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID           int64      `json:"id"`
	PartnerID    *int64     `json:"partner_id,omitempty"`
	CompanyName  string     `json:"company_name"`
	ContactName  string     `json:"contact_name"`
	ContactEmail string     `json:"contact_email,omitempty"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	Industry     string     `json:"industry,omitempty"`
	CompanySize  string     `json:"company_size,omitempty"`
	PainPoints   string     `json:"pain_points,omitempty"`
	Source       string     `json:"lead_source,omitempty"`
	Status       string     `json:"status"`
	Message      string     `json:"message,omitempty"`
	LastContact  *time.Time `json:"last_contact,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// OpportunityRequest alta o edición de oportunidad; TotalValue cero = usuarios x precio x 12.
type OpportunityRequest struct {
	LeadID            int64           `json:"lead_id" validate:"required,gt=0"`
	Name              string          `json:"opportunity_name" validate:"required,max=150"`
	Solution          string          `json:"bcs_solution" validate:"omitempty,max=150"`
	EstimatedUsers    int             `json:"estimated_users" validate:"min=0"`
	PricePerUser      decimal.Decimal `json:"price_per_user"`
	TotalValue        decimal.Decimal `json:"total_value"`
	Probability       int             `json:"probability" validate:"min=0,max=100"`
	Stage             string          `json:"stage" validate:"omitempty,oneof=discovery demo proposal negotiation closed-won closed-lost"`
	ExpectedCloseDate string          `json:"expected_close_date" validate:"omitempty,datetime=2006-01-02"`
	Notes             string          `json:"notes"`
}

// OpportunityResponse salida de una oportunidad.
type OpportunityResponse struct {
	ID                int64           `json:"id"`
	LeadID            int64           `json:"lead_id"`
	CompanyName       string          `json:"company_name"`
	Name              string          `json:"opportunity_name"`
	Solution          string          `json:"bcs_solution,omitempty"`
	EstimatedUsers    int             `json:"estimated_users"`
	PricePerUser      decimal.Decimal `json:"price_per_user"`
	TotalValue        decimal.Decimal `json:"total_value"`
	WeightedValue     decimal.Decimal `json:"weighted_value"`
	Probability       int             `json:"probability"`
	Stage             string          `json:"stage"`
	Status            string          `json:"status"`
	ExpectedCloseDate *time.Time      `json:"expected_close_date,omitempty"`
	ActualCloseDate   *time.Time      `json:"actual_close_date,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CommissionRequest alta manual de comisión; Rate y Amount se derivan si llegan en cero.
type CommissionRequest struct {
	OpportunityID *int64          `json:"opportunity_id"`
	ClientName    string          `json:"client_name" validate:"required,max=150"`
	MonthlyValue  decimal.Decimal `json:"monthly_value"`
	Rate          decimal.Decimal `json:"commission_rate"`
	Amount        decimal.Decimal `json:"commission_amount"`
	StartDate     string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	Notes         string          `json:"notes"`
}

// CommissionStatusRequest cambio de estado; PaymentDate aplica al marcar como pagada.
type CommissionStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=active inactive paid"`
	PaymentDate string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

// CommissionResponse salida de una comisión.
type CommissionResponse struct {
	ID            int64           `json:"id"`
	OpportunityID *int64          `json:"opportunity_id,omitempty"`
	ClientName    string          `json:"client_name"`
	MonthlyValue  decimal.Decimal `json:"monthly_value"`
	Rate          decimal.Decimal `json:"commission_rate"`
	Amount        decimal.Decimal `json:"commission_amount"`
	StartDate     time.Time       `json:"start_date"`
	Status        string          `json:"status"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// LandingLeadRequest formulario público de contacto.
type LandingLeadRequest struct {
	Name    string `json:"nombre" validate:"required,max=150"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"telefono" validate:"omitempty,max=40"`
	Sector  string `json:"sector" validate:"omitempty,max=100"`
	Company string `json:"empresa" validate:"omitempty,max=150"`
	Message string `json:"mensaje" validate:"omitempty,max=2000"`
}
