// Package landing atiende los formularios públicos del sitio: captura de leads y solicitudes
// para convertirse en partner.
package landing

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/validation"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
)

// Registrar registra solicitudes de alta de partner (PartnerUseCase lo implementa).
type Registrar interface {
	Register(ctx context.Context, in dto.PartnerRegistrationRequest) (*dto.PartnerRegistrationResponse, error)
}

// UseCase formularios públicos, sin autenticación.
type UseCase struct {
	leads     repository.LeadRepository
	registrar Registrar
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de la landing.
func NewUseCase(leads repository.LeadRepository, registrar Registrar, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{leads: leads, registrar: registrar, log: log.Component("landing")}
}

// SubmitLead guarda el formulario de contacto como lead sin partner con origen "landing".
func (uc *UseCase) SubmitLead(ctx context.Context, in dto.LandingLeadRequest) (*dto.LeadResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	company := strings.TrimSpace(in.Company)
	if company == "" {
		company = in.Name
	}
	l := &entity.Lead{
		CompanyName:  company,
		ContactName:  in.Name,
		ContactEmail: in.Email,
		ContactPhone: in.Phone,
		Industry:     in.Sector,
		Source:       entity.LeadSourceLanding,
		Status:       entity.LeadNew,
		Message:      in.Message,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := uc.leads.Create(ctx, l); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("lead_id", l.ID).Str("sector", l.Industry).Msg("lead recibido desde la landing")
	return &dto.LeadResponse{
		ID:           l.ID,
		CompanyName:  l.CompanyName,
		ContactName:  l.ContactName,
		ContactEmail: l.ContactEmail,
		ContactPhone: l.ContactPhone,
		Industry:     l.Industry,
		Source:       l.Source,
		Status:       l.Status,
		Message:      l.Message,
		CreatedAt:    l.CreatedAt,
	}, nil
}

// RegisterPartner recibe una solicitud pública de alta de partner.
func (uc *UseCase) RegisterPartner(ctx context.Context, in dto.PartnerRegistrationRequest) (*dto.PartnerRegistrationResponse, error) {
	return uc.registrar.Register(ctx, in)
}
