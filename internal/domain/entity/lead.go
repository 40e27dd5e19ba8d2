package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Lead.
const (
	LeadNew         = "new"
	LeadContacted   = "contacted"
	LeadQualified   = "qualified"
	LeadUnqualified = "unqualified"
)

// Orígenes de lead capturados sin partner.
const (
	LeadSourceLanding = "landing"
)

// Lead empresa interesada, cargada por un partner o capturada en la landing (PartnerID nil).
type Lead struct {
	ID           int64
	PartnerID    *int64
	CompanyName  string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Industry     string
	CompanySize  string
	PainPoints   string
	Source       string
	Status       string
	Message      string
	LastContact  *time.Time
	Notes        string
	CreatedAt    time.Time
}

// LeadFilter filtros del listado de leads.
type LeadFilter struct {
	Status string
	Source string
}

// Etapas del pipeline.
const (
	StageDiscovery   = "discovery"
	StageDemo        = "demo"
	StageProposal    = "proposal"
	StageNegotiation = "negotiation"
	StageClosedWon   = "closed-won"
	StageClosedLost  = "closed-lost"
)

// Estados de Opportunity derivados de la etapa.
const (
	OpportunityOpen = "open"
	OpportunityWon  = "won"
	OpportunityLost = "lost"
)

// Opportunity oportunidad de venta abierta sobre un lead.
type Opportunity struct {
	ID                int64
	LeadID            int64
	PartnerID         int64
	Name              string
	Solution          string
	EstimatedUsers    int
	PricePerUser      decimal.Decimal
	TotalValue        decimal.Decimal
	Probability       int
	Stage             string
	Status            string
	ExpectedCloseDate *time.Time
	ActualCloseDate   *time.Time
	Notes             string
	CreatedAt         time.Time

	CompanyName string // solo lectura: empresa del lead
}

// AnnualValue valor anual: usuarios x precio por usuario x 12.
func AnnualValue(users int, pricePerUser decimal.Decimal) decimal.Decimal {
	return pricePerUser.Mul(decimal.NewFromInt(int64(users))).Mul(decimal.NewFromInt(12))
}

// ApplyStage fija la etapa y deriva status y fecha real de cierre.
func (o *Opportunity) ApplyStage(stage string, now time.Time) {
	o.Stage = stage
	switch stage {
	case StageClosedWon:
		o.Status = OpportunityWon
	case StageClosedLost:
		o.Status = OpportunityLost
	default:
		o.Status = OpportunityOpen
		o.ActualCloseDate = nil
		return
	}
	if o.ActualCloseDate == nil {
		o.ActualCloseDate = &now
	}
}

// WeightedValue valor ponderado por probabilidad.
func (o *Opportunity) WeightedValue() decimal.Decimal {
	return o.TotalValue.Mul(decimal.NewFromInt(int64(o.Probability))).Div(decimal.NewFromInt(100))
}
