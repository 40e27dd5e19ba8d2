package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/ports"
	"github.com/jhoicas/bcs-blackbox/internal/application/validation"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
)

// PartnerUseCase gestión de partners, sus cuentas de acceso y las solicitudes de alta.
type PartnerUseCase struct {
	repo    repository.PartnerRepository
	regRepo repository.PartnerRegistrationRepository
	tx      ports.TxRunner
	hasher  ports.PasswordHasher
	log     *logger.Logger
}

// NewPartnerUseCase construye el caso de uso de partners.
func NewPartnerUseCase(
	repo repository.PartnerRepository,
	regRepo repository.PartnerRegistrationRepository,
	tx ports.TxRunner,
	hasher ports.PasswordHasher,
	log *logger.Logger,
) *PartnerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PartnerUseCase{repo: repo, regRepo: regRepo, tx: tx, hasher: hasher, log: log.Component("partners")}
}

// Create da de alta un partner. Con username y password crea además la cuenta vinculada en la misma transacción.
func (uc *PartnerUseCase) Create(ctx context.Context, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Username != "" && in.Password == "" {
		return nil, domain.NewValidationError("password", "es obligatorio")
	}
	t := now()
	p := &entity.Partner{
		Name:           in.Name,
		Company:        in.Company,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		Region:         in.Region,
		Specialization: in.Specialization,
		Status:         entity.PartnerActive,
		Notes:          in.Notes,
		CreatedAt:      t,
		UpdatedAt:      t,
	}
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		taken, err := r.Partners.EmailTaken(ctx, p.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrDuplicateKey
		}
		if err := r.Partners.Create(ctx, p); err != nil {
			return err
		}
		if in.Username == "" {
			return nil
		}
		return uc.attachAccount(ctx, r, p, in.Username, in.Password)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("partner_id", p.ID).Bool("account", p.HasAccount()).Msg("partner creado")
	return uc.Get(ctx, p.ID)
}

// Get obtiene un partner por ID.
func (uc *PartnerUseCase) Get(ctx context.Context, id int64) (*dto.PartnerResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPartnerResponse(p), nil
}

// List devuelve todos los partners con su usuario vinculado.
func (uc *PartnerUseCase) List(ctx context.Context) ([]dto.PartnerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPartnerResponse(p))
	}
	return out, nil
}

// Update edita el partner y su cuenta vinculada juntos. Sin cuenta previa, username+password la crean.
func (uc *PartnerUseCase) Update(ctx context.Context, id int64, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		p, err := r.Partners.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		taken, err := r.Partners.EmailTaken(ctx, in.Email, id)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrDuplicateKey
		}
		p.Name = in.Name
		p.Company = in.Company
		p.Email = in.Email
		p.Phone = in.Phone
		p.Address = in.Address
		p.Region = in.Region
		p.Specialization = in.Specialization
		p.Notes = in.Notes
		if in.Status != "" {
			p.Status = in.Status
		}
		p.UpdatedAt = now()
		if err := r.Partners.Update(ctx, p); err != nil {
			return err
		}

		if !p.HasAccount() {
			if in.Username == "" {
				return nil
			}
			if in.Password == "" {
				return domain.NewValidationError("password", "es obligatorio")
			}
			return uc.attachAccount(ctx, r, p, in.Username, in.Password)
		}
		return uc.syncAccount(ctx, r, p, in.Username, in.Password)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// CreateAccount crea la cuenta de acceso de un partner existente. Username vacío usa el email del partner.
func (uc *PartnerUseCase) CreateAccount(ctx context.Context, id int64, in dto.CreateAccountRequest) (*dto.PartnerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		p, err := r.Partners.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.HasAccount() {
			return domain.ErrDuplicateKey
		}
		username := strings.TrimSpace(in.Username)
		if username == "" {
			username = p.Email
		}
		return uc.attachAccount(ctx, r, p, username, in.Password)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// SetStatus activa o desactiva el partner; la cuenta vinculada sigue el mismo estado.
func (uc *PartnerUseCase) SetStatus(ctx context.Context, id int64, status string) error {
	if status != entity.PartnerActive && status != entity.PartnerInactive {
		return domain.NewValidationError("status", "debe ser uno de: active, inactive")
	}
	return uc.tx.Run(ctx, func(r repository.Repositories) error {
		p, err := r.Partners.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := r.Partners.SetStatus(ctx, id, status); err != nil {
			return err
		}
		if p.UserID != nil {
			return r.Users.SetActive(ctx, *p.UserID, status == entity.PartnerActive)
		}
		return nil
	})
}

// Delete elimina el partner, sus registros dependientes y su cuenta de acceso.
func (uc *PartnerUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		p, err := r.Partners.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := r.Partners.Delete(ctx, id); err != nil {
			return err
		}
		if p.UserID != nil {
			return r.Users.Delete(ctx, *p.UserID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("partner_id", id).Msg("partner eliminado")
	return nil
}

// Stats conteos de partners.
func (uc *PartnerUseCase) Stats(ctx context.Context) (*dto.PartnerStatsResponse, error) {
	st, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return ToPartnerStatsResponse(st), nil
}

// IsActive indica si el partner existe y está activo (lo usa el middleware del portal partner).
func (uc *PartnerUseCase) IsActive(ctx context.Context, partnerID int64) (bool, error) {
	p, err := uc.repo.GetByID(ctx, partnerID)
	if err != nil {
		return false, err
	}
	return p != nil && p.Status == entity.PartnerActive, nil
}

// Register guarda una solicitud pública de alta como pendiente.
func (uc *PartnerUseCase) Register(ctx context.Context, in dto.PartnerRegistrationRequest) (*dto.PartnerRegistrationResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	reg := &entity.PartnerRegistration{
		PartnerName:  in.PartnerName,
		ContactEmail: in.ContactEmail,
		Company:      in.Company,
		Region:       in.Region,
		Sectors:      in.Sectors,
		Status:       entity.RegistrationPending,
		CreatedAt:    now(),
	}
	if err := uc.regRepo.Create(ctx, reg); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("registration_id", reg.ID).Msg("solicitud de partner recibida")
	return toRegistrationResponse(reg), nil
}

// ListRegistrations lista solicitudes; status vacío = todas.
func (uc *PartnerUseCase) ListRegistrations(ctx context.Context, status string) ([]dto.PartnerRegistrationResponse, error) {
	list, err := uc.regRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartnerRegistrationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRegistrationResponse(r))
	}
	return out, nil
}

// ApproveRegistration crea el partner de una solicitud pendiente y la marca aprobada en una transacción.
func (uc *PartnerUseCase) ApproveRegistration(ctx context.Context, id int64) (*dto.PartnerResponse, error) {
	var partnerID int64
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		reg, err := pendingRegistration(ctx, r.Registrations, id)
		if err != nil {
			return err
		}
		taken, err := r.Partners.EmailTaken(ctx, reg.ContactEmail, 0)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrDuplicateKey
		}
		company := reg.Company
		if company == "" {
			company = reg.PartnerName
		}
		t := now()
		p := &entity.Partner{
			Name:           reg.PartnerName,
			Company:        company,
			Email:          reg.ContactEmail,
			Region:         reg.Region,
			Specialization: reg.Sectors,
			Status:         entity.PartnerActive,
			CreatedAt:      t,
			UpdatedAt:      t,
		}
		if err := r.Partners.Create(ctx, p); err != nil {
			return err
		}
		partnerID = p.ID
		return r.Registrations.SetStatus(ctx, id, entity.RegistrationApproved, int64Ptr(p.ID))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("registration_id", id).Int64("partner_id", partnerID).Msg("solicitud aprobada")
	return uc.Get(ctx, partnerID)
}

// RejectRegistration marca una solicitud pendiente como rechazada.
func (uc *PartnerUseCase) RejectRegistration(ctx context.Context, id int64) error {
	if _, err := pendingRegistration(ctx, uc.regRepo, id); err != nil {
		return err
	}
	return uc.regRepo.SetStatus(ctx, id, entity.RegistrationRejected, nil)
}

func pendingRegistration(ctx context.Context, repo repository.PartnerRegistrationRepository, id int64) (*entity.PartnerRegistration, error) {
	reg, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	if reg.Status != entity.RegistrationPending {
		return nil, domain.NewValidationError("status", "la solicitud ya fue procesada")
	}
	return reg, nil
}

// attachAccount crea el usuario partner y lo vincula.
func (uc *PartnerUseCase) attachAccount(ctx context.Context, r repository.Repositories, p *entity.Partner, username, password string) error {
	u, err := CreateAccount(ctx, r, uc.hasher, AccountSpec{
		Username: username,
		Email:    p.Email,
		Password: password,
		Role:     entity.RolePartner,
		Active:   p.Status == entity.PartnerActive,
	})
	if err != nil {
		return err
	}
	if err := r.Partners.LinkUser(ctx, p.ID, u.ID); err != nil {
		return err
	}
	p.UserID = int64Ptr(u.ID)
	return nil
}

// syncAccount lleva email, estado y opcionalmente username/password del partner a su cuenta.
func (uc *PartnerUseCase) syncAccount(ctx context.Context, r repository.Repositories, p *entity.Partner, username, password string) error {
	u, err := r.Users.GetByID(ctx, *p.UserID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	if username != "" {
		u.Username = username
	}
	u.Email = p.Email
	u.IsActive = p.Status == entity.PartnerActive
	if err := ensureUserUnique(ctx, r.Users, u.Username, u.Email, u.ID); err != nil {
		return err
	}
	u.UpdatedAt = now()
	if err := r.Users.Update(ctx, u); err != nil {
		return err
	}
	if password == "" {
		return nil
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return err
	}
	return r.Users.UpdatePassword(ctx, u.ID, hash)
}

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:             p.ID,
		Name:           p.Name,
		Company:        p.Company,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		Region:         p.Region,
		Specialization: p.Specialization,
		Status:         p.Status,
		Notes:          p.Notes,
		UserID:         p.UserID,
		Username:       p.Username,
		HasAccount:     p.HasAccount(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toRegistrationResponse(r *entity.PartnerRegistration) *dto.PartnerRegistrationResponse {
	return &dto.PartnerRegistrationResponse{
		ID:           r.ID,
		PartnerName:  r.PartnerName,
		ContactEmail: r.ContactEmail,
		Company:      r.Company,
		Region:       r.Region,
		Sectors:      r.Sectors,
		Status:       r.Status,
		PartnerID:    r.PartnerID,
		CreatedAt:    r.CreatedAt,
	}
}

// ToPartnerStatsResponse adapta los conteos al DTO.
func ToPartnerStatsResponse(st *entity.PartnerStats) *dto.PartnerStatsResponse {
	return &dto.PartnerStatsResponse{Total: st.Total, Active: st.Active, Inactive: st.Inactive, Accounts: st.Accounts}
}
