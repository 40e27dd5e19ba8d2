package usecase

import (
	"context"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/ports"
	"github.com/jhoicas/bcs-blackbox/internal/application/validation"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
)

// UserUseCase aplica reglas de negocio para usuarios (panel admin).
type UserUseCase struct {
	repo     repository.UserRepository
	roleRepo repository.RoleRepository
	tx       ports.TxRunner
	hasher   ports.PasswordHasher
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, roleRepo repository.RoleRepository, tx ports.TxRunner, hasher ports.PasswordHasher, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, roleRepo: roleRepo, tx: tx, hasher: hasher, log: log.Component("users")}
}

// Create crea un usuario. Username o email repetidos devuelven ErrDuplicateKey sin insertar.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := CreateAccount(ctx, repository.Repositories{Users: uc.repo, Roles: uc.roleRepo}, uc.hasher, AccountSpec{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
		Active:   in.IsActive == nil || *in.IsActive,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", u.ID).Str("role", u.RoleName).Msg("usuario creado")
	return uc.Get(ctx, u.ID)
}

// Get obtiene un usuario por ID.
func (uc *UserUseCase) Get(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return ToUserResponse(u), nil
}

// List devuelve todos los usuarios con su rol y partner creador.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// ListClients devuelve los usuarios con rol cliente (destino de asignación de apps).
func (uc *UserUseCase) ListClients(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.ListByRole(ctx, entity.RoleCliente)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// Update edita username, email, rol, estado y opcionalmente la contraseña.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if u.IsProtected() && (in.Username != u.Username || in.Role != entity.RoleAdmin || (in.IsActive != nil && !*in.IsActive)) {
		return nil, domain.ErrProtectedRecord
	}
	if err := ensureUserUnique(ctx, uc.repo, in.Username, in.Email, u.ID); err != nil {
		return nil, err
	}
	role, err := uc.roleRepo.GetByName(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.NewValidationError("role", "rol inexistente")
	}

	u.Username = in.Username
	u.Email = in.Email
	u.RoleID = role.ID
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	u.UpdatedAt = now()

	var hash string
	if in.Password != "" {
		if hash, err = uc.hasher.Hash(in.Password); err != nil {
			return nil, err
		}
	}
	err = uc.tx.Run(ctx, func(r repository.Repositories) error {
		if err := r.Users.Update(ctx, u); err != nil {
			return err
		}
		if hash == "" {
			return nil
		}
		return r.Users.UpdatePassword(ctx, u.ID, hash)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, u.ID)
}

// SetActive activa o desactiva una cuenta. La cuenta admin no se puede desactivar.
func (uc *UserUseCase) SetActive(ctx context.Context, id int64, active bool) error {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	if u.IsProtected() && !active {
		return domain.ErrProtectedRecord
	}
	return uc.repo.SetActive(ctx, id, active)
}

// Delete elimina un usuario. La cuenta admin devuelve ErrProtectedRecord y no se toca.
// Los contactos convertidos en ese usuario vuelven a validated en la misma transacción.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	if u.IsProtected() {
		return domain.ErrProtectedRecord
	}
	var reopened int64
	err = uc.tx.Run(ctx, func(r repository.Repositories) error {
		n, err := r.Contacts.ClearConversion(ctx, id)
		if err != nil {
			return err
		}
		reopened = n
		return r.Users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", id).Str("username", u.Username).Int64("contacts_reopened", reopened).Msg("usuario eliminado")
	return nil
}

// Stats conteos para el panel de administración.
func (uc *UserUseCase) Stats(ctx context.Context) (*dto.UserStatsResponse, error) {
	st, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserStatsResponse(st), nil
}

// AccountSpec datos para crear una cuenta desde cualquier flujo (admin, partner, conversión).
type AccountSpec struct {
	Username         string
	Email            string
	Password         string
	Role             string
	Active           bool
	CreatedByPartner *int64
}

// CreateAccount verifica unicidad, hashea y persiste con los repos recibidos (conexión o tx).
func CreateAccount(ctx context.Context, repos repository.Repositories, hasher ports.PasswordHasher, acct AccountSpec) (*entity.User, error) {
	if err := validation.Required("username", acct.Username); err != nil {
		return nil, err
	}
	if err := validation.Required("password", acct.Password); err != nil {
		return nil, err
	}
	if err := ensureUserUnique(ctx, repos.Users, acct.Username, acct.Email, 0); err != nil {
		return nil, err
	}
	role, err := repos.Roles.GetByName(ctx, acct.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.NewValidationError("role", "rol inexistente")
	}
	hash, err := hasher.Hash(acct.Password)
	if err != nil {
		return nil, err
	}
	t := now()
	u := &entity.User{
		Username:           acct.Username,
		Email:              acct.Email,
		PasswordHash:       hash,
		RoleID:             role.ID,
		RoleName:           role.Name,
		IsActive:           acct.Active,
		CreatedByPartnerID: acct.CreatedByPartner,
		CreatedAt:          t,
		UpdatedAt:          t,
	}
	if err := repos.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func ensureUserUnique(ctx context.Context, repo repository.UserRepository, username, email string, excludeID int64) error {
	taken, err := repo.UsernameTaken(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateKey
	}
	taken, err = repo.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateKey
	}
	return nil
}

// ToUserResponse convierte la entidad a su salida HTTP (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		Role:                 u.RoleName,
		IsActive:             u.IsActive,
		CreatedByPartnerID:   u.CreatedByPartnerID,
		CreatedByPartnerName: u.CreatedByPartnerName,
		PartnerID:            u.PartnerID,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func toUserResponses(users []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserResponse(u))
	}
	return out
}

// ToUserStatsResponse adapta los conteos al DTO (lo reutiliza el panel admin).
func ToUserStatsResponse(st *entity.UserStats) *dto.UserStatsResponse {
	return &dto.UserStatsResponse{
		Total:            st.Total,
		Active:           st.Active,
		Inactive:         st.Inactive,
		Admins:           st.Admins,
		CreatedByPartner: st.CreatedByPartner,
		ByRole:           st.ByRole,
	}
}
