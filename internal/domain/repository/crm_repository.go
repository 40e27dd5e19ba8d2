package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
)

// LeadRepository puerto de persistencia para Lead.
type LeadRepository interface {
	Create(ctx context.Context, l *entity.Lead) error
	GetByID(ctx context.Context, id int64) (*entity.Lead, error)
	// List con partnerID nil devuelve los leads capturados sin partner (landing).
	List(ctx context.Context, partnerID *int64, f entity.LeadFilter) ([]*entity.Lead, error)
	Update(ctx context.Context, l *entity.Lead) error
	UpdateStatus(ctx context.Context, id int64, status string, at time.Time) error
	// Delete elimina el lead con sus oportunidades y actividades.
	Delete(ctx context.Context, id int64) error
}

// OpportunityRepository puerto de persistencia para Opportunity.
type OpportunityRepository interface {
	Create(ctx context.Context, o *entity.Opportunity) error
	GetByID(ctx context.Context, id int64) (*entity.Opportunity, error)
	ListByPartner(ctx context.Context, partnerID int64) ([]*entity.Opportunity, error)
	Update(ctx context.Context, o *entity.Opportunity) error
	// Delete elimina la oportunidad con sus actividades.
	Delete(ctx context.Context, id int64) error
}

// CommissionRepository puerto de persistencia para Commission.
type CommissionRepository interface {
	Create(ctx context.Context, c *entity.Commission) error
	GetByID(ctx context.Context, id int64) (*entity.Commission, error)
	ListByPartner(ctx context.Context, partnerID int64) ([]*entity.Commission, error)
	SetStatus(ctx context.Context, id int64, status string, paymentDate *time.Time) error
}
