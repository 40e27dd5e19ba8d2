package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PartnerOverview conteos del panel del partner. Lo produce la DB; el use case lo convierte en DTO.
type PartnerOverview struct {
	ActiveContacts    int
	ValidatedPending  int // validados sin convertir
	ClientSubBCS      int // registros CRM + apps asignadas por el partner
	PartnerSubBCS     int
	MonthlyRevenue    decimal.Decimal
	PendingActivities int
}

// AppOverview uso global de apps de clientes (panel admin).
type AppOverview struct {
	Total         int
	Active        int
	TotalAccesses int
	PartnerSubBCS int
}

// StageCount oportunidades abiertas por etapa.
type StageCount struct {
	Stage string
	Count int
	Value decimal.Decimal
}

// SourceCount leads por origen.
type SourceCount struct {
	Source string
	Count  int
}

// CRMOverview métricas del pipeline comercial de un partner.
type CRMOverview struct {
	Leads              int
	OpenOpportunities  int
	WeightedPipeline   decimal.Decimal // SUM(total_value * probability / 100) de oportunidades abiertas
	MonthlyCommissions decimal.Decimal
	ByStage            []StageCount
	BySource           []SourceCount
}

// ClientCommission comisión mensual agregada por cliente.
type ClientCommission struct {
	ClientName   string
	MonthlyValue decimal.Decimal
	Amount       decimal.Decimal
}

// MonthAmount comisiones que arrancaron en un mes (YYYY-MM).
type MonthAmount struct {
	Month  string
	Amount decimal.Decimal
}

// CommissionOverview ingresos recurrentes por comisiones de un partner.
type CommissionOverview struct {
	MRR           decimal.Decimal
	YearMonthly   decimal.Decimal // comisiones activas que arrancaron en el año en curso
	ActiveClients int
	Trend         []MonthAmount
	TopClients    []ClientCommission
}

// AnalyticsRepository consultas de lectura para los paneles. Las implementaciones son read-only.
type AnalyticsRepository interface {
	PartnerOverview(ctx context.Context, partnerID int64) (*PartnerOverview, error)
	AppOverview(ctx context.Context) (*AppOverview, error)
	CRMOverview(ctx context.Context, partnerID int64) (*CRMOverview, error)
	// CommissionOverview: tendencia de trendMonths meses antes de now y los topN clientes.
	CommissionOverview(ctx context.Context, partnerID int64, now time.Time, trendMonths, topN int) (*CommissionOverview, error)
}
