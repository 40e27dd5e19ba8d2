package usecase

import (
	"context"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/validation"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
)

// SubBCSUseCase apps asignadas a clientes y registros Sub-BCS de clientes y partners.
type SubBCSUseCase struct {
	apps        repository.UserAppRepository
	users       repository.UserRepository
	contacts    repository.ContactRepository
	clientSubs  repository.ClientSubBCSRepository
	partnerSubs repository.PartnerSubBCSRepository
	log         *logger.Logger
}

// NewSubBCSUseCase construye el caso de uso a partir del conjunto de repositorios.
func NewSubBCSUseCase(repos repository.Repositories, log *logger.Logger) *SubBCSUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SubBCSUseCase{
		apps:        repos.Apps,
		users:       repos.Users,
		contacts:    repos.Contacts,
		clientSubs:  repos.ClientSubBCS,
		partnerSubs: repos.PartnerSubBCS,
		log:         log.Component("sub_bcs"),
	}
}

// AssignApp asigna una app a un usuario cliente. Un partner solo asigna a clientes que él creó.
func (uc *SubBCSUseCase) AssignApp(ctx context.Context, actor Actor, in dto.AssignAppRequest) (*dto.AppResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := validation.HTTPURL("app_url", in.URL); err != nil {
		return nil, err
	}
	target, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	if target.RoleName != entity.RoleCliente {
		return nil, domain.NewValidationError("user_id", "el usuario destino debe tener rol cliente")
	}

	partnerID := target.CreatedByPartnerID
	if !actor.IsAdmin() {
		if target.CreatedByPartnerID == nil || *target.CreatedByPartnerID != actor.PartnerID {
			return nil, domain.ErrForbidden
		}
		partnerID = int64Ptr(actor.PartnerID)
	}
	icon := in.Icon
	if icon == "" {
		icon = entity.DefaultAppIcon
	}
	app := &entity.UserApp{
		UserID:      target.ID,
		PartnerID:   partnerID,
		Name:        in.Name,
		Description: in.Description,
		URL:         in.URL,
		Icon:        icon,
		Type:        in.Type,
		Status:      entity.SubBCSActive,
		CreatedAt:   now(),
	}
	if err := uc.apps.Create(ctx, app); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("app_id", app.ID).Int64("user_id", target.ID).Str("role", actor.Role).Msg("app asignada")
	app.Username = target.Username
	return toAppResponse(app), nil
}

// ListUserApps apps activas del cliente autenticado.
func (uc *SubBCSUseCase) ListUserApps(ctx context.Context, userID int64) ([]dto.AppResponse, error) {
	list, err := uc.apps.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAppResponses(list), nil
}

// ListApps todas las apps (admin) o las asignadas por el partner del actor.
func (uc *SubBCSUseCase) ListApps(ctx context.Context, actor Actor) ([]dto.AppResponse, error) {
	var (
		list []*entity.UserApp
		err  error
	)
	if actor.IsAdmin() {
		list, err = uc.apps.ListAll(ctx)
	} else {
		list, err = uc.apps.ListByPartner(ctx, actor.PartnerID)
	}
	if err != nil {
		return nil, err
	}
	return toAppResponses(list), nil
}

// SetAppStatus activa o desactiva una app.
func (uc *SubBCSUseCase) SetAppStatus(ctx context.Context, actor Actor, id int64, status string) error {
	if status != entity.SubBCSActive && status != entity.SubBCSInactive {
		return domain.NewValidationError("status", "debe ser uno de: active, inactive")
	}
	if _, err := uc.ownedApp(ctx, actor, id); err != nil {
		return err
	}
	return uc.apps.SetStatus(ctx, id, status)
}

// DeleteApp elimina una app asignada.
func (uc *SubBCSUseCase) DeleteApp(ctx context.Context, actor Actor, id int64) error {
	if _, err := uc.ownedApp(ctx, actor, id); err != nil {
		return err
	}
	return uc.apps.Delete(ctx, id)
}

// RecordAccess registra un acceso del cliente a su app. Cada llamada cuenta.
func (uc *SubBCSUseCase) RecordAccess(ctx context.Context, userID, appID int64) error {
	ok, err := uc.apps.RecordAccess(ctx, appID, userID, now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *SubBCSUseCase) ownedApp(ctx context.Context, actor Actor, id int64) (*entity.UserApp, error) {
	app, err := uc.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && (app.PartnerID == nil || *app.PartnerID != actor.PartnerID) {
		return nil, domain.ErrNotFound
	}
	return app, nil
}

// CreateClientSubBCS registra una instancia BCS vendida por el partner.
func (uc *SubBCSUseCase) CreateClientSubBCS(ctx context.Context, partnerID int64, in dto.ClientSubBCSRequest) (*dto.ClientSubBCSResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	start, err := validation.ParseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	if in.ContactID != nil {
		c, err := uc.contacts.GetByID(ctx, *in.ContactID)
		if err != nil {
			return nil, err
		}
		if c == nil || c.PartnerID != partnerID {
			return nil, domain.ErrNotFound
		}
	}
	s := &entity.ClientSubBCS{
		PartnerID:    partnerID,
		ContactID:    in.ContactID,
		ClientName:   in.ClientName,
		CompanyName:  in.CompanyName,
		BCSType:      in.BCSType,
		Modules:      in.Modules,
		UsersCount:   in.UsersCount,
		Status:       in.Status,
		StartDate:    start,
		MonthlyValue: in.MonthlyValue,
		Notes:        in.Notes,
		CreatedAt:    now(),
	}
	if s.UsersCount == 0 {
		s.UsersCount = 1
	}
	if s.Status == "" {
		s.Status = entity.SubBCSActive
	}
	if err := uc.clientSubs.Create(ctx, s); err != nil {
		return nil, err
	}
	return toClientSubBCSResponse(s), nil
}

// ListClientSubBCS registros del partner.
func (uc *SubBCSUseCase) ListClientSubBCS(ctx context.Context, partnerID int64) ([]dto.ClientSubBCSResponse, error) {
	list, err := uc.clientSubs.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientSubBCSResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toClientSubBCSResponse(s))
	}
	return out, nil
}

// SetClientSubBCSStatus cambia el estado (active, inactive, trial).
func (uc *SubBCSUseCase) SetClientSubBCSStatus(ctx context.Context, partnerID, id int64, status string) error {
	switch status {
	case entity.SubBCSActive, entity.SubBCSInactive, entity.SubBCSTrial:
	default:
		return domain.NewValidationError("status", "debe ser uno de: active, inactive, trial")
	}
	if err := uc.ownedClientSub(ctx, partnerID, id); err != nil {
		return err
	}
	return uc.clientSubs.SetStatus(ctx, id, status)
}

// DeleteClientSubBCS elimina el registro.
func (uc *SubBCSUseCase) DeleteClientSubBCS(ctx context.Context, partnerID, id int64) error {
	if err := uc.ownedClientSub(ctx, partnerID, id); err != nil {
		return err
	}
	return uc.clientSubs.Delete(ctx, id)
}

func (uc *SubBCSUseCase) ownedClientSub(ctx context.Context, partnerID, id int64) error {
	s, err := uc.clientSubs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil || s.PartnerID != partnerID {
		return domain.ErrNotFound
	}
	return nil
}

// CreatePartnerSubBCS crea una instancia BCS de partner. El admin indica partner_id y descripción.
func (uc *SubBCSUseCase) CreatePartnerSubBCS(ctx context.Context, actor Actor, in dto.PartnerSubBCSRequest) (*dto.PartnerSubBCSResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	partnerID := actor.PartnerID
	if actor.IsAdmin() {
		if in.PartnerID <= 0 {
			return nil, domain.NewValidationError("partner_id", "es obligatorio")
		}
		if err := validation.Required("description", in.Description); err != nil {
			return nil, err
		}
		partnerID = in.PartnerID
	}
	s := &entity.PartnerSubBCS{
		PartnerID:   partnerID,
		BCSName:     in.BCSName,
		BCSType:     in.BCSType,
		Description: in.Description,
		Modules:     in.Modules,
		Status:      in.Status,
		Notes:       in.Notes,
		CreatedAt:   now(),
	}
	if s.Status == "" {
		s.Status = entity.SubBCSDevelopment
	}
	if err := uc.partnerSubs.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("sub_bcs_id", s.ID).Int64("partner_id", partnerID).Msg("sub-bcs de partner creado")
	return toPartnerSubBCSResponse(s), nil
}

// ListPartnerSubBCS todas (admin) o las del partner del actor.
func (uc *SubBCSUseCase) ListPartnerSubBCS(ctx context.Context, actor Actor) ([]dto.PartnerSubBCSResponse, error) {
	var filter *int64
	if !actor.IsAdmin() {
		filter = int64Ptr(actor.PartnerID)
	}
	list, err := uc.partnerSubs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartnerSubBCSResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toPartnerSubBCSResponse(s))
	}
	return out, nil
}

// SetPartnerSubBCSStatus cambia el estado (active, inactive, development).
func (uc *SubBCSUseCase) SetPartnerSubBCSStatus(ctx context.Context, actor Actor, id int64, status string) error {
	switch status {
	case entity.SubBCSActive, entity.SubBCSInactive, entity.SubBCSDevelopment:
	default:
		return domain.NewValidationError("status", "debe ser uno de: active, inactive, development")
	}
	if err := uc.ownedPartnerSub(ctx, actor, id); err != nil {
		return err
	}
	return uc.partnerSubs.SetStatus(ctx, id, status)
}

// DeletePartnerSubBCS elimina la instancia.
func (uc *SubBCSUseCase) DeletePartnerSubBCS(ctx context.Context, actor Actor, id int64) error {
	if err := uc.ownedPartnerSub(ctx, actor, id); err != nil {
		return err
	}
	return uc.partnerSubs.Delete(ctx, id)
}

func (uc *SubBCSUseCase) ownedPartnerSub(ctx context.Context, actor Actor, id int64) error {
	s, err := uc.partnerSubs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil || (!actor.IsAdmin() && s.PartnerID != actor.PartnerID) {
		return domain.ErrNotFound
	}
	return nil
}

func toAppResponse(a *entity.UserApp) *dto.AppResponse {
	return &dto.AppResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		Username:     a.Username,
		PartnerID:    a.PartnerID,
		PartnerName:  a.PartnerName,
		Name:         a.Name,
		Description:  a.Description,
		URL:          a.URL,
		Icon:         a.Icon,
		Type:         a.Type,
		Status:       a.Status,
		AccessCount:  a.AccessCount,
		LastAccessed: a.LastAccessed,
		CreatedAt:    a.CreatedAt,
	}
}

func toAppResponses(list []*entity.UserApp) []dto.AppResponse {
	out := make([]dto.AppResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAppResponse(a))
	}
	return out
}

func toClientSubBCSResponse(s *entity.ClientSubBCS) *dto.ClientSubBCSResponse {
	return &dto.ClientSubBCSResponse{
		ID:           s.ID,
		PartnerID:    s.PartnerID,
		ContactID:    s.ContactID,
		ClientName:   s.ClientName,
		CompanyName:  s.CompanyName,
		BCSType:      s.BCSType,
		Modules:      s.Modules,
		UsersCount:   s.UsersCount,
		Status:       s.Status,
		StartDate:    s.StartDate,
		MonthlyValue: s.MonthlyValue,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
	}
}

func toPartnerSubBCSResponse(s *entity.PartnerSubBCS) *dto.PartnerSubBCSResponse {
	return &dto.PartnerSubBCSResponse{
		ID:          s.ID,
		PartnerID:   s.PartnerID,
		PartnerName: s.PartnerName,
		BCSName:     s.BCSName,
		BCSType:     s.BCSType,
		Description: s.Description,
		Modules:     s.Modules,
		Status:      s.Status,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
	}
}
