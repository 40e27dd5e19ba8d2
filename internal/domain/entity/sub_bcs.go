package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de ClientSubBCS.
const (
	SubBCSActive      = "active"
	SubBCSInactive    = "inactive"
	SubBCSTrial       = "trial"
	SubBCSDevelopment = "development"
)

// DefaultAppIcon icono por defecto de una app de cliente.
const DefaultAppIcon = "🚀"

// ClientSubBCS registro comercial de una instancia BCS vendida por un partner.
type ClientSubBCS struct {
	ID           int64
	PartnerID    int64
	ContactID    *int64
	ClientName   string
	CompanyName  string
	BCSType      string
	Modules      string
	UsersCount   int
	Status       string // active, inactive, trial
	StartDate    *time.Time
	MonthlyValue decimal.Decimal
	Notes        string
	CreatedAt    time.Time
}

// PartnerSubBCS instancia BCS propia de un partner (demo, desarrollo, producción).
type PartnerSubBCS struct {
	ID          int64
	PartnerID   int64
	BCSName     string
	BCSType     string
	Description string
	Modules     string
	Status      string // active, inactive, development
	Notes       string
	CreatedAt   time.Time

	PartnerName string // solo lectura
}

// UserApp aplicación (Sub-BCS) asignada a un usuario cliente.
type UserApp struct {
	ID           int64
	UserID       int64
	PartnerID    *int64
	Name         string
	Description  string
	URL          string
	Icon         string
	Type         string
	Status       string // active, inactive
	AccessCount  int
	LastAccessed *time.Time
	CreatedAt    time.Time

	Username    string // solo lectura
	PartnerName string // solo lectura
}

// UserAppStats resumen de uso para el panel del cliente.
type UserAppStats struct {
	TotalApps      int
	TotalAccesses  int
	MostUsedApp    string
	MostUsedCount  int
	LastAccessed   string
	LastAccessedAt *time.Time
}
