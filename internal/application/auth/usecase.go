package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/ports"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/jhoicas/bcs-blackbox/pkg/jwt"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminSeed datos iniciales de la cuenta administradora reservada.
type AdminSeed struct {
	Password string
	Email    string
}

// AuthUseCase casos de uso de autenticación: login, sesión y siembra del admin.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	hasher   ports.PasswordHasher
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	hasher ports.PasswordHasher,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		hasher:   hasher,
		jwtCfg:   jwtCfg,
		log:      log.Component("auth"),
	}
}

// Authenticate verifica identificador (username o email) y contraseña de un usuario activo.
// Usuario inexistente, inactivo o contraseña incorrecta devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Authenticate(ctx context.Context, identifier, password string) (*dto.SessionResponse, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := uc.userRepo.FindActiveByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	session := &dto.SessionResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.RoleName,
		Email:    user.Email,
	}
	if user.RoleName == entity.RolePartner && user.PartnerID != nil {
		session.PartnerID = user.PartnerID
	}
	return session, nil
}

// Login autentica y emite el JWT de la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	session, err := uc.Authenticate(ctx, in.Identifier, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			uc.log.Warn().Str("identifier", in.Identifier).Msg("login rechazado")
		}
		return nil, err
	}
	id := jwt.Identity{UserID: session.ID, Username: session.Username, Role: session.Role}
	if session.PartnerID != nil {
		id.PartnerID = *session.PartnerID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, id)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", session.ID).Str("role", session.Role).Msg("login correcto")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      *session,
	}, nil
}

// Me devuelve la sesión vigente del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.SessionResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrNotFound
	}
	return &dto.SessionResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.RoleName,
		Email:     user.Email,
		PartnerID: user.PartnerID,
	}, nil
}

// EnsureAdmin crea la cuenta administradora reservada si no existe. Devuelve true si la creó.
// Los roles los siembra la migración inicial.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, entity.ReservedAdminUsername)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	role, err := uc.roleRepo.GetByName(ctx, entity.RoleAdmin)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, fmt.Errorf("seed admin: rol %q no existe: %w", entity.RoleAdmin, domain.ErrNotFound)
	}
	hash, err := uc.hasher.Hash(seed.Password)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC().Truncate(time.Second)
	admin := &entity.User{
		Username:     entity.ReservedAdminUsername,
		Email:        seed.Email,
		PasswordHash: hash,
		RoleID:       role.ID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	uc.log.Info().Str("username", admin.Username).Msg("cuenta administradora creada")
	return true, nil
}
