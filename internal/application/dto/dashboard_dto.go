package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppUsageSummary uso global de apps de clientes.
type AppUsageSummary struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	TotalAccesses int `json:"total_accesses"`
	PartnerSubBCS int `json:"partner_sub_bcs"`
}

// AdminDashboardResponse panel del administrador.
type AdminDashboardResponse struct {
	Users    UserStatsResponse    `json:"users"`
	Partners PartnerStatsResponse `json:"partners"`
	Apps     AppUsageSummary      `json:"apps"`
	Pending  int                  `json:"pending_registrations"`
}

// PartnerDashboardResponse panel del partner.
type PartnerDashboardResponse struct {
	ActiveContacts    int             `json:"active_contacts"`
	ValidatedPending  int             `json:"validated_pending_conversion"`
	ClientSubBCS      int             `json:"client_sub_bcs"`
	PartnerSubBCS     int             `json:"partner_sub_bcs"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`
	PendingActivities int             `json:"pending_activities"`
}

// ClientDashboardResponse panel del cliente.
type ClientDashboardResponse struct {
	TotalApps      int        `json:"total_apps"`
	TotalAccesses  int        `json:"total_accesses"`
	MostUsedApp    string     `json:"most_used_app,omitempty"`
	MostUsedCount  int        `json:"most_used_count"`
	LastAccessed   string     `json:"last_accessed_app,omitempty"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
}

// StageSummary pipeline por etapa.
type StageSummary struct {
	Stage string          `json:"stage"`
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// SourceSummary leads por origen.
type SourceSummary struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// CRMDashboardResponse métricas del pipeline comercial.
type CRMDashboardResponse struct {
	Leads              int             `json:"leads"`
	OpenOpportunities  int             `json:"open_opportunities"`
	WeightedPipeline   decimal.Decimal `json:"weighted_pipeline"`
	MonthlyCommissions decimal.Decimal `json:"monthly_commissions"`
	ByStage            []StageSummary  `json:"by_stage"`
	BySource           []SourceSummary `json:"by_source"`
}

// MonthPoint valor de un mes en la tendencia.
type MonthPoint struct {
	Month  string          `json:"month"` // YYYY-MM
	Label  string          `json:"label"` // "Ene 2026"
	Amount decimal.Decimal `json:"amount"`
}

// TopClient cliente en el ranking de comisiones.
type TopClient struct {
	ClientName   string          `json:"client_name"`
	MonthlyValue decimal.Decimal `json:"monthly_value"`
	Amount       decimal.Decimal `json:"commission_amount"`
}

// CommissionDashboardResponse ingresos recurrentes por comisiones.
type CommissionDashboardResponse struct {
	MRR              decimal.Decimal `json:"mrr"`
	AnnualProjection decimal.Decimal `json:"annual_projection"`
	ActiveClients    int             `json:"active_clients"`
	AveragePerClient decimal.Decimal `json:"average_per_client"`
	Trend            []MonthPoint    `json:"trend"`
	TopClients       []TopClient     `json:"top_clients"`
}

// CommissionStatement datos del estado de comisiones (PDF).
type CommissionStatement struct {
	PartnerName string
	Company     string
	Email       string
	GeneratedAt time.Time
	Period      string // "Febrero 2026"
	Summary     CommissionDashboardResponse
	Commissions []CommissionResponse
}
