package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
)

// ClientSubBCSRepository registros comerciales de Sub-BCS de clientes.
type ClientSubBCSRepository interface {
	Create(ctx context.Context, s *entity.ClientSubBCS) error
	GetByID(ctx context.Context, id int64) (*entity.ClientSubBCS, error)
	ListByPartner(ctx context.Context, partnerID int64) ([]*entity.ClientSubBCS, error)
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// PartnerSubBCSRepository instancias BCS propias de los partners.
type PartnerSubBCSRepository interface {
	Create(ctx context.Context, s *entity.PartnerSubBCS) error
	GetByID(ctx context.Context, id int64) (*entity.PartnerSubBCS, error)
	// List devuelve todas si partnerID es nil.
	List(ctx context.Context, partnerID *int64) ([]*entity.PartnerSubBCS, error)
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// UserAppRepository apps asignadas a usuarios cliente.
type UserAppRepository interface {
	Create(ctx context.Context, a *entity.UserApp) error
	GetByID(ctx context.Context, id int64) (*entity.UserApp, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]*entity.UserApp, error)
	ListAll(ctx context.Context) ([]*entity.UserApp, error)
	ListByPartner(ctx context.Context, partnerID int64) ([]*entity.UserApp, error)
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	// RecordAccess incrementa access_count y fija last_accessed; false si la app no es del usuario.
	RecordAccess(ctx context.Context, id, userID int64, at time.Time) (bool, error)
	StatsForUser(ctx context.Context, userID int64) (*entity.UserAppStats, error)
}
