package repository

import (
	"context"

	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// FindActiveByIdentifier busca un usuario activo por username o email (login).
	FindActiveByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	// UsernameTaken / EmailTaken ignoran el registro excludeID (0 = ninguno).
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	List(ctx context.Context) ([]*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*entity.UserStats, error)
}

// RoleRepository roles sembrados por la migración inicial.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
}
