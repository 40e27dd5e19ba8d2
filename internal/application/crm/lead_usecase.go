package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/ports"
	"github.com/jhoicas/bcs-blackbox/internal/application/validation"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
)

// LeadUseCase pipeline comercial del partner: leads, oportunidades y comisiones.
// Altas y ediciones de leads y oportunidades dejan una actividad automática.
type LeadUseCase struct {
	leads         repository.LeadRepository
	opportunities repository.OpportunityRepository
	commissions   repository.CommissionRepository
	tx            ports.TxRunner
	log           *logger.Logger
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(repos repository.Repositories, tx ports.TxRunner, log *logger.Logger) *LeadUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LeadUseCase{
		leads:         repos.Leads,
		opportunities: repos.Opportunities,
		commissions:   repos.Commissions,
		tx:            tx,
		log:           log.Component("crm"),
	}
}

// CreateLead registra un lead del partner.
func (uc *LeadUseCase) CreateLead(ctx context.Context, partnerID int64, in dto.LeadRequest) (*dto.LeadResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	l := &entity.Lead{PartnerID: &partnerID, CreatedAt: now()}
	applyLead(l, in)
	if l.Status == "" {
		l.Status = entity.LeadNew
	}
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		if err := r.Leads.Create(ctx, l); err != nil {
			return err
		}
		return r.Activities.Create(ctx, autoActivity(partnerID, entity.ActivityLeadCreated,
			fmt.Sprintf("Lead creado: %s", l.CompanyName), &l.ID, nil))
	})
	if err != nil {
		return nil, err
	}
	return ToLeadResponse(l), nil
}

// ListLeads leads del partner con filtros de estado y origen.
func (uc *LeadUseCase) ListLeads(ctx context.Context, partnerID int64, q dto.LeadFilterQuery) ([]dto.LeadResponse, error) {
	return uc.listLeads(ctx, &partnerID, q)
}

// ListLandingLeads leads capturados en la landing, sin partner asignado.
func (uc *LeadUseCase) ListLandingLeads(ctx context.Context, q dto.LeadFilterQuery) ([]dto.LeadResponse, error) {
	return uc.listLeads(ctx, nil, q)
}

func (uc *LeadUseCase) listLeads(ctx context.Context, partnerID *int64, q dto.LeadFilterQuery) ([]dto.LeadResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	list, err := uc.leads.List(ctx, partnerID, entity.LeadFilter{Status: q.Status, Source: q.Source})
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *ToLeadResponse(l))
	}
	return out, nil
}

// GetLead obtiene un lead del partner.
func (uc *LeadUseCase) GetLead(ctx context.Context, partnerID, id int64) (*dto.LeadResponse, error) {
	l, err := ownedLead(ctx, uc.leads, partnerID, id)
	if err != nil {
		return nil, err
	}
	return ToLeadResponse(l), nil
}

// UpdateLead edita el lead.
func (uc *LeadUseCase) UpdateLead(ctx context.Context, partnerID, id int64, in dto.LeadRequest) (*dto.LeadResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var l *entity.Lead
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		var err error
		l, err = ownedLead(ctx, r.Leads, partnerID, id)
		if err != nil {
			return err
		}
		status := l.Status
		applyLead(l, in)
		if l.Status == "" {
			l.Status = status
		}
		if err := r.Leads.Update(ctx, l); err != nil {
			return err
		}
		return r.Activities.Create(ctx, autoActivity(partnerID, entity.ActivityLeadUpdated,
			fmt.Sprintf("Lead actualizado: %s", l.CompanyName), &l.ID, nil))
	})
	if err != nil {
		return nil, err
	}
	return ToLeadResponse(l), nil
}

// UpdateLeadStatus cambia el estado y registra la fecha de último contacto.
func (uc *LeadUseCase) UpdateLeadStatus(ctx context.Context, partnerID, id int64, status string) error {
	switch status {
	case entity.LeadNew, entity.LeadContacted, entity.LeadQualified, entity.LeadUnqualified:
	default:
		return domain.NewValidationError("status", "debe ser uno de: new, contacted, qualified, unqualified")
	}
	if _, err := ownedLead(ctx, uc.leads, partnerID, id); err != nil {
		return err
	}
	return uc.leads.UpdateStatus(ctx, id, status, now())
}

// DeleteLead elimina el lead con sus oportunidades y actividades.
func (uc *LeadUseCase) DeleteLead(ctx context.Context, partnerID, id int64) error {
	return uc.tx.Run(ctx, func(r repository.Repositories) error {
		if _, err := ownedLead(ctx, r.Leads, partnerID, id); err != nil {
			return err
		}
		return r.Leads.Delete(ctx, id)
	})
}

// CreateOpportunity abre una oportunidad sobre un lead contactado o calificado del partner.
func (uc *LeadUseCase) CreateOpportunity(ctx context.Context, partnerID int64, in dto.OpportunityRequest) (*dto.OpportunityResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	expected, err := validation.ParseDate("expected_close_date", in.ExpectedCloseDate)
	if err != nil {
		return nil, err
	}
	o := &entity.Opportunity{PartnerID: partnerID, CreatedAt: now()}
	err = uc.tx.Run(ctx, func(r repository.Repositories) error {
		l, err := ownedLead(ctx, r.Leads, partnerID, in.LeadID)
		if err != nil {
			return err
		}
		if l.Status != entity.LeadQualified && l.Status != entity.LeadContacted {
			return domain.NewValidationError("lead_id", "el lead debe estar contactado o calificado")
		}
		applyOpportunity(o, in, expected)
		o.CompanyName = l.CompanyName
		if err := r.Opportunities.Create(ctx, o); err != nil {
			return err
		}
		return r.Activities.Create(ctx, autoActivity(partnerID, entity.ActivityOpportunityCreated,
			fmt.Sprintf("Oportunidad creada: %s", o.Name), &l.ID, &o.ID))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("opportunity_id", o.ID).Str("total_value", o.TotalValue.StringFixed(2)).Msg("oportunidad creada")
	return toOpportunityResponse(o), nil
}

// ListOpportunities oportunidades del partner.
func (uc *LeadUseCase) ListOpportunities(ctx context.Context, partnerID int64) ([]dto.OpportunityResponse, error) {
	list, err := uc.opportunities.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OpportunityResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOpportunityResponse(o))
	}
	return out, nil
}

// GetOpportunity obtiene una oportunidad del partner.
func (uc *LeadUseCase) GetOpportunity(ctx context.Context, partnerID, id int64) (*dto.OpportunityResponse, error) {
	o, err := ownedOpportunity(ctx, uc.opportunities, partnerID, id)
	if err != nil {
		return nil, err
	}
	return toOpportunityResponse(o), nil
}

// UpdateOpportunity edita la oportunidad. Las etapas closed-won y closed-lost la cierran.
func (uc *LeadUseCase) UpdateOpportunity(ctx context.Context, partnerID, id int64, in dto.OpportunityRequest) (*dto.OpportunityResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	expected, err := validation.ParseDate("expected_close_date", in.ExpectedCloseDate)
	if err != nil {
		return nil, err
	}
	var o *entity.Opportunity
	err = uc.tx.Run(ctx, func(r repository.Repositories) error {
		var err error
		o, err = ownedOpportunity(ctx, r.Opportunities, partnerID, id)
		if err != nil {
			return err
		}
		if in.LeadID != o.LeadID {
			if _, err := ownedLead(ctx, r.Leads, partnerID, in.LeadID); err != nil {
				return err
			}
		}
		applyOpportunity(o, in, expected)
		if err := r.Opportunities.Update(ctx, o); err != nil {
			return err
		}
		return r.Activities.Create(ctx, autoActivity(partnerID, entity.ActivityOpportunityUpdated,
			fmt.Sprintf("Oportunidad actualizada: %s (%s)", o.Name, o.Stage), &o.LeadID, &o.ID))
	})
	if err != nil {
		return nil, err
	}
	return toOpportunityResponse(o), nil
}

// DeleteOpportunity elimina la oportunidad con sus actividades.
func (uc *LeadUseCase) DeleteOpportunity(ctx context.Context, partnerID, id int64) error {
	return uc.tx.Run(ctx, func(r repository.Repositories) error {
		if _, err := ownedOpportunity(ctx, r.Opportunities, partnerID, id); err != nil {
			return err
		}
		return r.Opportunities.Delete(ctx, id)
	})
}

// CreateCommission registra una comisión manual. Sin tasa se usa 0.5; sin monto, valor mensual x tasa.
func (uc *LeadUseCase) CreateCommission(ctx context.Context, partnerID int64, in dto.CommissionRequest) (*dto.CommissionResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	start, err := validation.ParseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	if in.MonthlyValue.IsNegative() || in.Rate.IsNegative() || in.Amount.IsNegative() {
		return nil, domain.NewValidationError("monthly_value", "los valores no pueden ser negativos")
	}
	if in.OpportunityID != nil {
		o, err := ownedOpportunity(ctx, uc.opportunities, partnerID, *in.OpportunityID)
		if err != nil {
			return nil, err
		}
		if o.Stage != entity.StageClosedWon {
			return nil, domain.NewValidationError("opportunity_id", "la oportunidad debe estar ganada")
		}
	}
	c := &entity.Commission{
		PartnerID:     partnerID,
		OpportunityID: in.OpportunityID,
		ClientName:    in.ClientName,
		MonthlyValue:  in.MonthlyValue,
		Rate:          in.Rate,
		Amount:        in.Amount,
		StartDate:     *start,
		Status:        entity.CommissionActive,
		Notes:         in.Notes,
		CreatedAt:     now(),
	}
	if c.Rate.IsZero() {
		c.Rate = entity.DefaultCommissionRate
	}
	if c.Amount.IsZero() {
		c.Amount = c.MonthlyValue.Mul(c.Rate).Round(2)
	}
	if err := uc.commissions.Create(ctx, c); err != nil {
		return nil, err
	}
	return ToCommissionResponse(c), nil
}

// ListCommissions comisiones del partner.
func (uc *LeadUseCase) ListCommissions(ctx context.Context, partnerID int64) ([]dto.CommissionResponse, error) {
	list, err := uc.commissions.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommissionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *ToCommissionResponse(c))
	}
	return out, nil
}

// SetCommissionStatus cambia el estado. Al marcar pagada sin fecha se usa la actual.
func (uc *LeadUseCase) SetCommissionStatus(ctx context.Context, partnerID, id int64, in dto.CommissionStatusRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	paid, err := validation.ParseDate("payment_date", in.PaymentDate)
	if err != nil {
		return err
	}
	c, err := uc.commissions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil || c.PartnerID != partnerID {
		return domain.ErrNotFound
	}
	if in.Status != entity.CommissionPaid {
		paid = nil
	} else if paid == nil {
		t := now()
		paid = &t
	}
	return uc.commissions.SetStatus(ctx, id, in.Status, paid)
}

func autoActivity(partnerID int64, kind, subject string, leadID, opportunityID *int64) *entity.Activity {
	t := now()
	return &entity.Activity{
		PartnerID:     partnerID,
		LeadID:        leadID,
		OpportunityID: opportunityID,
		Type:          kind,
		Subject:       subject,
		ActivityDate:  t,
		Completed:     true,
		CreatedAt:     t,
	}
}

func applyLead(l *entity.Lead, in dto.LeadRequest) {
	l.CompanyName = in.CompanyName
	l.ContactName = in.ContactName
	l.ContactEmail = in.ContactEmail
	l.ContactPhone = in.ContactPhone
	l.Industry = in.Industry
	l.CompanySize = in.CompanySize
	l.PainPoints = in.PainPoints
	l.Source = in.Source
	l.Status = in.Status
	l.Notes = in.Notes
}

func applyOpportunity(o *entity.Opportunity, in dto.OpportunityRequest, expected *time.Time) {
	o.LeadID = in.LeadID
	o.Name = in.Name
	o.Solution = in.Solution
	o.EstimatedUsers = in.EstimatedUsers
	o.PricePerUser = in.PricePerUser
	o.TotalValue = in.TotalValue
	if o.TotalValue.IsZero() {
		o.TotalValue = entity.AnnualValue(in.EstimatedUsers, in.PricePerUser)
	}
	o.Probability = in.Probability
	o.ExpectedCloseDate = expected
	o.Notes = in.Notes
	stage := in.Stage
	if stage == "" {
		stage = entity.StageDiscovery
	}
	o.ApplyStage(stage, now())
}

func ownedLead(ctx context.Context, repo repository.LeadRepository, partnerID, id int64) (*entity.Lead, error) {
	l, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil || l.PartnerID == nil || *l.PartnerID != partnerID {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func ownedOpportunity(ctx context.Context, repo repository.OpportunityRepository, partnerID, id int64) (*entity.Opportunity, error) {
	o, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.PartnerID != partnerID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// ToLeadResponse adapta un lead al DTO.
func ToLeadResponse(l *entity.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		ID:           l.ID,
		PartnerID:    l.PartnerID,
		CompanyName:  l.CompanyName,
		ContactName:  l.ContactName,
		ContactEmail: l.ContactEmail,
		ContactPhone: l.ContactPhone,
		Industry:     l.Industry,
		CompanySize:  l.CompanySize,
		PainPoints:   l.PainPoints,
		Source:       l.Source,
		Status:       l.Status,
		Message:      l.Message,
		LastContact:  l.LastContact,
		Notes:        l.Notes,
		CreatedAt:    l.CreatedAt,
	}
}

func toOpportunityResponse(o *entity.Opportunity) *dto.OpportunityResponse {
	return &dto.OpportunityResponse{
		ID:                o.ID,
		LeadID:            o.LeadID,
		CompanyName:       o.CompanyName,
		Name:              o.Name,
		Solution:          o.Solution,
		EstimatedUsers:    o.EstimatedUsers,
		PricePerUser:      o.PricePerUser,
		TotalValue:        o.TotalValue,
		WeightedValue:     o.WeightedValue().Round(2),
		Probability:       o.Probability,
		Stage:             o.Stage,
		Status:            o.Status,
		ExpectedCloseDate: o.ExpectedCloseDate,
		ActualCloseDate:   o.ActualCloseDate,
		Notes:             o.Notes,
		CreatedAt:         o.CreatedAt,
	}
}

// ToCommissionResponse adapta una comisión al DTO.
func ToCommissionResponse(c *entity.Commission) *dto.CommissionResponse {
	return &dto.CommissionResponse{
		ID:            c.ID,
		OpportunityID: c.OpportunityID,
		ClientName:    c.ClientName,
		MonthlyValue:  c.MonthlyValue,
		Rate:          c.Rate,
		Amount:        c.Amount,
		StartDate:     c.StartDate,
		Status:        c.Status,
		PaymentDate:   c.PaymentDate,
		Notes:         c.Notes,
	}
}
