package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
)

// ContactRepository puerto de persistencia para Contact.
// MarkValidated, MarkConverted y ClearConversion son los únicos escritores de los campos del ciclo de vida.
type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact) error
	GetByID(ctx context.Context, id int64) (*entity.Contact, error)
	ListByPartner(ctx context.Context, partnerID int64, f entity.ContactFilter) ([]*entity.Contact, error)
	Update(ctx context.Context, c *entity.Contact) error
	SetStatus(ctx context.Context, id int64, status string) error
	MarkValidated(ctx context.Context, id int64, at time.Time) error
	MarkConverted(ctx context.Context, id, userID int64, at time.Time) error
	// ClearConversion devuelve a validated los contactos convertidos en userID y retorna cuántos cambiaron.
	ClearConversion(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// ActivityRepository puerto de persistencia para Activity.
type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	GetByID(ctx context.Context, id int64) (*entity.Activity, error)
	ListByPartner(ctx context.Context, partnerID int64, pendingOnly bool) ([]*entity.Activity, error)
	SetCompleted(ctx context.Context, id int64, completed bool) error
	Delete(ctx context.Context, id int64) error
}
