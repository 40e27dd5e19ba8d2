package repository

import (
	"context"

	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
)

// PartnerRepository puerto de persistencia para Partner.
type PartnerRepository interface {
	Create(ctx context.Context, p *entity.Partner) error
	GetByID(ctx context.Context, id int64) (*entity.Partner, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.Partner, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	List(ctx context.Context) ([]*entity.Partner, error)
	Update(ctx context.Context, p *entity.Partner) error
	SetStatus(ctx context.Context, id int64, status string) error
	LinkUser(ctx context.Context, partnerID, userID int64) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*entity.PartnerStats, error)
}

// PartnerRegistrationRepository solicitudes públicas de alta de partner.
type PartnerRegistrationRepository interface {
	Create(ctx context.Context, r *entity.PartnerRegistration) error
	GetByID(ctx context.Context, id int64) (*entity.PartnerRegistration, error)
	List(ctx context.Context, status string) ([]*entity.PartnerRegistration, error)
	SetStatus(ctx context.Context, id int64, status string, partnerID *int64) error
}
