// Package crm contiene los casos de uso del portal partner: contactos, actividades,
// conversión de contactos en clientes, leads, oportunidades y comisiones.
package crm

import (
	"context"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/ports"
	"github.com/jhoicas/bcs-blackbox/internal/application/usecase"
	"github.com/jhoicas/bcs-blackbox/internal/application/validation"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
	"github.com/jhoicas/bcs-blackbox/pkg/textutil"
)

// now reloj del paquete, UTC a segundos.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Second) }

// ContactUseCase contactos y actividades de un partner, y su ciclo validación -> conversión.
type ContactUseCase struct {
	contacts   repository.ContactRepository
	activities repository.ActivityRepository
	tx         ports.TxRunner
	hasher     ports.PasswordHasher
	log        *logger.Logger
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(
	contacts repository.ContactRepository,
	activities repository.ActivityRepository,
	tx ports.TxRunner,
	hasher ports.PasswordHasher,
	log *logger.Logger,
) *ContactUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ContactUseCase{
		contacts:   contacts,
		activities: activities,
		tx:         tx,
		hasher:     hasher,
		log:        log.Component("contacts"),
	}
}

// Create registra un contacto nuevo (sin validar) del partner.
func (uc *ContactUseCase) Create(ctx context.Context, partnerID int64, in dto.ContactRequest) (*dto.ContactResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	c := &entity.Contact{
		PartnerID: partnerID,
		Name:      in.Name,
		Company:   in.Company,
		Email:     in.Email,
		Phone:     in.Phone,
		Position:  in.Position,
		Industry:  in.Industry,
		Status:    in.Status,
		Notes:     in.Notes,
		CreatedAt: now(),
	}
	if c.Status == "" {
		c.Status = entity.ContactActive
	}
	if err := uc.contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// List devuelve los contactos del partner según el filtro de vista.
func (uc *ContactUseCase) List(ctx context.Context, partnerID int64, q dto.ContactFilterQuery) ([]dto.ContactResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	list, err := uc.contacts.ListByPartner(ctx, partnerID, entity.ContactFilter{
		Status:     q.Status,
		Validation: q.Validation,
		Industry:   q.Industry,
		Search:     q.Search,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toContactResponse(c))
	}
	return out, nil
}

// Get obtiene un contacto del partner.
func (uc *ContactUseCase) Get(ctx context.Context, partnerID, id int64) (*dto.ContactResponse, error) {
	c, err := ownedContact(ctx, uc.contacts, partnerID, id)
	if err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// Update edita los datos del contacto. Los campos de validación y conversión no se tocan.
func (uc *ContactUseCase) Update(ctx context.Context, partnerID, id int64, in dto.ContactRequest) (*dto.ContactResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	c, err := ownedContact(ctx, uc.contacts, partnerID, id)
	if err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Company = in.Company
	c.Email = in.Email
	c.Phone = in.Phone
	c.Position = in.Position
	c.Industry = in.Industry
	c.Notes = in.Notes
	if in.Status != "" {
		c.Status = in.Status
	}
	if err := uc.contacts.Update(ctx, c); err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// SetStatus activa o desactiva el contacto.
func (uc *ContactUseCase) SetStatus(ctx context.Context, partnerID, id int64, status string) error {
	if status != entity.ContactActive && status != entity.ContactInactive {
		return domain.NewValidationError("status", "debe ser uno de: active, inactive")
	}
	if _, err := ownedContact(ctx, uc.contacts, partnerID, id); err != nil {
		return err
	}
	return uc.contacts.SetStatus(ctx, id, status)
}

// Delete elimina el contacto; sus actividades se conservan sin contacto.
func (uc *ContactUseCase) Delete(ctx context.Context, partnerID, id int64) error {
	if _, err := ownedContact(ctx, uc.contacts, partnerID, id); err != nil {
		return err
	}
	return uc.contacts.Delete(ctx, id)
}

// SuggestUsername propone un username para convertir el contacto.
func (uc *ContactUseCase) SuggestUsername(ctx context.Context, partnerID, id int64) (*dto.UsernameSuggestionResponse, error) {
	c, err := ownedContact(ctx, uc.contacts, partnerID, id)
	if err != nil {
		return nil, err
	}
	return &dto.UsernameSuggestionResponse{Username: textutil.SuggestUsername(c.Name, c.Email)}, nil
}

// Convert convierte un contacto validado en usuario cliente creado por el partner.
// Usuario y contacto se escriben en una sola transacción.
func (uc *ContactUseCase) Convert(ctx context.Context, partnerID, id int64, in dto.ConvertContactRequest) (*dto.UserResponse, error) {
	var user *entity.User
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		c, err := ownedContact(ctx, r.Contacts, partnerID, id)
		if err != nil {
			return err
		}
		switch c.State() {
		case entity.ContactConverted:
			return domain.ErrAlreadyConverted
		case entity.ContactUnvalidated:
			return domain.NewValidationError("validated", "el contacto debe validarse antes de convertirlo")
		}
		if err := validation.Struct(in); err != nil {
			return err
		}
		if in.Password != in.ConfirmPassword {
			return domain.NewValidationError("confirm_password", "las contraseñas no coinciden")
		}
		user, err = usecase.CreateAccount(ctx, r, uc.hasher, usecase.AccountSpec{
			Username:         in.Username,
			Email:            c.Email,
			Password:         in.Password,
			Role:             entity.RoleCliente,
			Active:           true,
			CreatedByPartner: &partnerID,
		})
		if err != nil {
			return err
		}
		c.MarkConverted(user.ID, now())
		return r.Contacts.MarkConverted(ctx, c.ID, user.ID, *c.ConversionDate)
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("contact_id", id).Int64("partner_id", partnerID).Msg("conversión rechazada")
		return nil, err
	}
	uc.log.Info().Int64("contact_id", id).Int64("user_id", user.ID).Str("username", user.Username).Msg("contacto convertido en cliente")
	return usecase.ToUserResponse(user), nil
}

// CreateActivity registra una actividad. Una "Validación de Cliente" completada y exitosa
// valida al contacto en la misma transacción.
func (uc *ContactUseCase) CreateActivity(ctx context.Context, partnerID int64, in dto.ActivityRequest) (*dto.ActivityResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	date, err := validation.ParseDate("activity_date", in.ActivityDate)
	if err != nil {
		return nil, err
	}
	followUp, err := validation.ParseDate("follow_up_date", in.FollowUpDate)
	if err != nil {
		return nil, err
	}
	a := &entity.Activity{
		PartnerID:         partnerID,
		ContactID:         in.ContactID,
		Type:              in.Type,
		Subject:           in.Subject,
		Description:       in.Description,
		FollowUpDate:      followUp,
		Completed:         in.Completed,
		ValidationSuccess: in.Type == entity.ActivityValidation && in.ValidationSuccess,
		CreatedAt:         now(),
	}
	a.ActivityDate = a.CreatedAt
	if date != nil {
		a.ActivityDate = *date
	}
	if a.Type == entity.ActivityValidation && a.ContactID == nil {
		return nil, domain.NewValidationError("contact_id", "es obligatorio para una validación")
	}

	var validated bool
	err = uc.tx.Run(ctx, func(r repository.Repositories) error {
		var contact *entity.Contact
		if a.ContactID != nil {
			c, err := ownedContact(ctx, r.Contacts, partnerID, *a.ContactID)
			if err != nil {
				return err
			}
			contact = c
			a.ContactName = c.Name
		}
		if err := r.Activities.Create(ctx, a); err != nil {
			return err
		}
		if !a.ValidatesContact() {
			return nil
		}
		validated = true
		contact.MarkValidated(a.CreatedAt)
		return r.Contacts.MarkValidated(ctx, contact.ID, *contact.ValidationDate)
	})
	if err != nil {
		return nil, err
	}
	if validated {
		uc.log.Info().Int64("contact_id", *a.ContactID).Int64("partner_id", partnerID).Msg("contacto validado")
	}
	resp := toActivityResponse(a)
	resp.ContactValidated = validated
	return resp, nil
}

// ListActivities actividades del partner; pendingOnly deja solo las no completadas.
func (uc *ContactUseCase) ListActivities(ctx context.Context, partnerID int64, pendingOnly bool) ([]dto.ActivityResponse, error) {
	list, err := uc.activities.ListByPartner(ctx, partnerID, pendingOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toActivityResponse(a))
	}
	return out, nil
}

// SetActivityCompleted marca una actividad como completada o pendiente. Completar una validación
// exitosa valida al contacto.
func (uc *ContactUseCase) SetActivityCompleted(ctx context.Context, partnerID, id int64, completed bool) error {
	return uc.tx.Run(ctx, func(r repository.Repositories) error {
		a, err := r.Activities.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil || a.PartnerID != partnerID {
			return domain.ErrNotFound
		}
		if err := r.Activities.SetCompleted(ctx, id, completed); err != nil {
			return err
		}
		a.Completed = completed
		if !a.ValidatesContact() {
			return nil
		}
		c, err := r.Contacts.GetByID(ctx, *a.ContactID)
		if err != nil {
			return err
		}
		if c == nil || c.Validated {
			return nil
		}
		c.MarkValidated(now())
		return r.Contacts.MarkValidated(ctx, c.ID, *c.ValidationDate)
	})
}

// DeleteActivity elimina una actividad del partner.
func (uc *ContactUseCase) DeleteActivity(ctx context.Context, partnerID, id int64) error {
	a, err := uc.activities.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil || a.PartnerID != partnerID {
		return domain.ErrNotFound
	}
	return uc.activities.Delete(ctx, id)
}

// ownedContact carga el contacto y oculta los de otros partners como inexistentes.
func ownedContact(ctx context.Context, repo repository.ContactRepository, partnerID, id int64) (*entity.Contact, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.PartnerID != partnerID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// ToContactResponse adapta un contacto al DTO (lo usan las exportaciones).
func ToContactResponse(c *entity.Contact) *dto.ContactResponse {
	return toContactResponse(c)
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:              c.ID,
		PartnerID:       c.PartnerID,
		Name:            c.Name,
		Company:         c.Company,
		Email:           c.Email,
		Phone:           c.Phone,
		Position:        c.Position,
		Industry:        c.Industry,
		Status:          c.Status,
		Notes:           c.Notes,
		State:           string(c.State()),
		Validated:       c.Validated,
		ValidationDate:  c.ValidationDate,
		ConvertedToUser: c.ConvertedToUser,
		ConvertedUserID: c.ConvertedUserID,
		ConversionDate:  c.ConversionDate,
		CreatedAt:       c.CreatedAt,
	}
}

func toActivityResponse(a *entity.Activity) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		ID:                a.ID,
		ContactID:         a.ContactID,
		ContactName:       a.ContactName,
		LeadID:            a.LeadID,
		OpportunityID:     a.OpportunityID,
		Type:              a.Type,
		Subject:           a.Subject,
		Description:       a.Description,
		ActivityDate:      a.ActivityDate,
		FollowUpDate:      a.FollowUpDate,
		Completed:         a.Completed,
		ValidationSuccess: a.ValidationSuccess,
	}
}
