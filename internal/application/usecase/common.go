package usecase

import (
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
)

// Actor identidad que ejecuta la operación (del token JWT).
type Actor struct {
	UserID    int64
	Role      string
	PartnerID int64
}

// IsAdmin indica si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// now reloj de los casos de uso; UTC truncado a segundos para que las fechas comparen igual tras persistir.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Second) }

func int64Ptr(v int64) *int64 { return &v }
