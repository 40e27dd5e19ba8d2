package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/application/crm"
	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/ports"
	"github.com/jhoicas/bcs-blackbox/internal/domain"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
)

// ExportUseCase genera los archivos descargables del portal partner.
type ExportUseCase struct {
	contacts    repository.ContactRepository
	leads       repository.LeadRepository
	commissions repository.CommissionRepository
	partners    repository.PartnerRepository
	dashboard   *DashboardUseCase
	sheets      ports.SpreadsheetExporter
	pdf         ports.StatementRenderer
}

// NewExportUseCase construye el caso de uso con los adaptadores de xlsx y PDF.
func NewExportUseCase(
	repos repository.Repositories,
	dashboard *DashboardUseCase,
	sheets ports.SpreadsheetExporter,
	pdf ports.StatementRenderer,
) *ExportUseCase {
	return &ExportUseCase{
		contacts:    repos.Contacts,
		leads:       repos.Leads,
		commissions: repos.Commissions,
		partners:    repos.Partners,
		dashboard:   dashboard,
		sheets:      sheets,
		pdf:         pdf,
	}
}

// Contacts exporta los contactos del partner (mismo filtro que el listado).
func (uc *ExportUseCase) Contacts(ctx context.Context, partnerID int64, q dto.ContactFilterQuery) ([]byte, error) {
	list, err := uc.contacts.ListByPartner(ctx, partnerID, entity.ContactFilter{
		Status:     q.Status,
		Validation: q.Validation,
		Industry:   q.Industry,
		Search:     q.Search,
	})
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		rows = append(rows, *crm.ToContactResponse(c))
	}
	return uc.sheets.ExportContacts(rows)
}

// Leads exporta los leads del partner.
func (uc *ExportUseCase) Leads(ctx context.Context, partnerID int64, q dto.LeadFilterQuery) ([]byte, error) {
	list, err := uc.leads.List(ctx, &partnerID, entity.LeadFilter{Status: q.Status, Source: q.Source})
	if err != nil {
		return nil, err
	}
	rows := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		rows = append(rows, *crm.ToLeadResponse(l))
	}
	return uc.sheets.ExportLeads(rows)
}

// CommissionStatement genera el estado de comisiones del partner en PDF.
func (uc *ExportUseCase) CommissionStatement(ctx context.Context, partnerID int64) ([]byte, string, error) {
	p, err := uc.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, "", err
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}
	summary, err := uc.dashboard.Commissions(ctx, partnerID)
	if err != nil {
		return nil, "", err
	}
	list, err := uc.commissions.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, "", err
	}
	st := &dto.CommissionStatement{
		PartnerName: p.Name,
		Company:     p.Company,
		Email:       p.Email,
		GeneratedAt: uc.dashboard.clock(),
		Commissions: make([]dto.CommissionResponse, 0, len(list)),
		Summary:     *summary,
	}
	st.Period = monthLabel(st.GeneratedAt)
	for _, c := range list {
		st.Commissions = append(st.Commissions, *crm.ToCommissionResponse(c))
	}
	data, err := uc.pdf.RenderCommissionStatement(st)
	if err != nil {
		return nil, "", fmt.Errorf("estado de comisiones: %w", err)
	}
	return data, statementFilename(p.ID, st.GeneratedAt), nil
}

func statementFilename(partnerID int64, t time.Time) string {
	return fmt.Sprintf("comisiones_%d_%s.pdf", partnerID, t.Format("2006-01"))
}
