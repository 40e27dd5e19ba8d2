package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Commission.
const (
	CommissionActive   = "active"
	CommissionInactive = "inactive"
	CommissionPaid     = "paid"
)

// DefaultCommissionRate porcentaje por defecto sobre el valor mensual.
var DefaultCommissionRate = decimal.RequireFromString("0.5")

// Commission comisión recurrente de un partner sobre un cliente.
type Commission struct {
	ID            int64
	PartnerID     int64
	OpportunityID *int64
	ClientName    string
	MonthlyValue  decimal.Decimal
	Rate          decimal.Decimal
	Amount        decimal.Decimal
	StartDate     time.Time
	Status        string
	PaymentDate   *time.Time
	Notes         string
	CreatedAt     time.Time
}
