// Package analytics contiene los paneles de administrador, partner y cliente, las métricas del
// CRM y de comisiones, y las exportaciones (xlsx y PDF).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	trendMonths   = 12 // meses en la tendencia de comisiones
	topClientsMax = 10 // clientes en el ranking
)

// DashboardUseCase recalcula los paneles en cada petición directamente de la base, sin caché.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	users         repository.UserRepository
	partners      repository.PartnerRepository
	registrations repository.PartnerRegistrationRepository
	apps          repository.UserAppRepository
	clock         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, repos repository.Repositories) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		users:         repos.Users,
		partners:      repos.Partners,
		registrations: repos.Registrations,
		apps:          repos.Apps,
		clock:         func() time.Time { return time.Now().UTC() },
	}
}

// Admin panel del administrador. Cuatro consultas en paralelo:
//  1. Stats de usuarios
//  2. Stats de partners
//  3. Uso de apps
//  4. Solicitudes pendientes
func (uc *DashboardUseCase) Admin(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	type usersResult struct {
		st  *entity.UserStats
		err error
	}
	type partnersResult struct {
		st  *entity.PartnerStats
		err error
	}
	type appsResult struct {
		ov  *repository.AppOverview
		err error
	}
	type pendingResult struct {
		n   int
		err error
	}

	usersCh := make(chan usersResult, 1)
	partnersCh := make(chan partnersResult, 1)
	appsCh := make(chan appsResult, 1)
	pendingCh := make(chan pendingResult, 1)

	go func() {
		st, err := uc.users.Stats(ctx)
		usersCh <- usersResult{st, err}
	}()
	go func() {
		st, err := uc.partners.Stats(ctx)
		partnersCh <- partnersResult{st, err}
	}()
	go func() {
		ov, err := uc.analyticsRepo.AppOverview(ctx)
		appsCh <- appsResult{ov, err}
	}()
	go func() {
		list, err := uc.registrations.List(ctx, entity.RegistrationPending)
		pendingCh <- pendingResult{len(list), err}
	}()

	users := <-usersCh
	partners := <-partnersCh
	apps := <-appsCh
	pending := <-pendingCh

	if users.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios: %w", users.err)
	}
	if partners.err != nil {
		return nil, fmt.Errorf("dashboard: partners: %w", partners.err)
	}
	if apps.err != nil {
		return nil, fmt.Errorf("dashboard: apps: %w", apps.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: solicitudes: %w", pending.err)
	}

	return &dto.AdminDashboardResponse{
		Users: dto.UserStatsResponse{
			Total:            users.st.Total,
			Active:           users.st.Active,
			Inactive:         users.st.Inactive,
			Admins:           users.st.Admins,
			CreatedByPartner: users.st.CreatedByPartner,
			ByRole:           users.st.ByRole,
		},
		Partners: dto.PartnerStatsResponse{
			Total:    partners.st.Total,
			Active:   partners.st.Active,
			Inactive: partners.st.Inactive,
			Accounts: partners.st.Accounts,
		},
		Apps: dto.AppUsageSummary{
			Total:         apps.ov.Total,
			Active:        apps.ov.Active,
			TotalAccesses: apps.ov.TotalAccesses,
			PartnerSubBCS: apps.ov.PartnerSubBCS,
		},
		Pending: pending.n,
	}, nil
}

// Partner panel del partner.
func (uc *DashboardUseCase) Partner(ctx context.Context, partnerID int64) (*dto.PartnerDashboardResponse, error) {
	ov, err := uc.analyticsRepo.PartnerOverview(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: partner: %w", err)
	}
	return &dto.PartnerDashboardResponse{
		ActiveContacts:    ov.ActiveContacts,
		ValidatedPending:  ov.ValidatedPending,
		ClientSubBCS:      ov.ClientSubBCS,
		PartnerSubBCS:     ov.PartnerSubBCS,
		MonthlyRevenue:    ov.MonthlyRevenue.Round(2),
		PendingActivities: ov.PendingActivities,
	}, nil
}

// Client panel del cliente: apps activas, accesos, app más usada y última accedida.
func (uc *DashboardUseCase) Client(ctx context.Context, userID int64) (*dto.ClientDashboardResponse, error) {
	st, err := uc.apps.StatsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: cliente: %w", err)
	}
	return &dto.ClientDashboardResponse{
		TotalApps:      st.TotalApps,
		TotalAccesses:  st.TotalAccesses,
		MostUsedApp:    st.MostUsedApp,
		MostUsedCount:  st.MostUsedCount,
		LastAccessed:   st.LastAccessed,
		LastAccessedAt: st.LastAccessedAt,
	}, nil
}

// CRM métricas del pipeline comercial del partner.
func (uc *DashboardUseCase) CRM(ctx context.Context, partnerID int64) (*dto.CRMDashboardResponse, error) {
	ov, err := uc.analyticsRepo.CRMOverview(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: crm: %w", err)
	}
	resp := &dto.CRMDashboardResponse{
		Leads:              ov.Leads,
		OpenOpportunities:  ov.OpenOpportunities,
		WeightedPipeline:   ov.WeightedPipeline.Round(2),
		MonthlyCommissions: ov.MonthlyCommissions.Round(2),
		ByStage:            make([]dto.StageSummary, 0, len(ov.ByStage)),
		BySource:           make([]dto.SourceSummary, 0, len(ov.BySource)),
	}
	for _, s := range ov.ByStage {
		resp.ByStage = append(resp.ByStage, dto.StageSummary{Stage: s.Stage, Count: s.Count, Value: s.Value.Round(2)})
	}
	for _, s := range ov.BySource {
		resp.BySource = append(resp.BySource, dto.SourceSummary{Source: s.Source, Count: s.Count})
	}
	return resp, nil
}

// Commissions ingresos recurrentes: MRR, proyección anual, promedio por cliente,
// tendencia de los últimos 12 meses (meses sin datos en cero) y top 10 clientes.
func (uc *DashboardUseCase) Commissions(ctx context.Context, partnerID int64) (*dto.CommissionDashboardResponse, error) {
	now := uc.clock()
	ov, err := uc.analyticsRepo.CommissionOverview(ctx, partnerID, now, trendMonths, topClientsMax)
	if err != nil {
		return nil, fmt.Errorf("dashboard: comisiones: %w", err)
	}

	avg := decimal.Zero
	if ov.ActiveClients > 0 {
		avg = ov.MRR.Div(decimal.NewFromInt(int64(ov.ActiveClients)))
	}
	resp := &dto.CommissionDashboardResponse{
		MRR:              ov.MRR.Round(2),
		AnnualProjection: ov.YearMonthly.Mul(decimal.NewFromInt(12)).Round(2),
		ActiveClients:    ov.ActiveClients,
		AveragePerClient: avg.Round(2),
		Trend:            fillTrend(ov.Trend, now, trendMonths),
		TopClients:       make([]dto.TopClient, 0, len(ov.TopClients)),
	}
	for _, c := range ov.TopClients {
		resp.TopClients = append(resp.TopClients, dto.TopClient{
			ClientName:   c.ClientName,
			MonthlyValue: c.MonthlyValue.Round(2),
			Amount:       c.Amount.Round(2),
		})
	}
	return resp, nil
}

// fillTrend devuelve los n meses que terminan en el mes de now, en orden, con cero donde no hubo comisiones.
func fillTrend(points []repository.MonthAmount, now time.Time, n int) []dto.MonthPoint {
	byMonth := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		byMonth[p.Month] = p.Amount
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	out := make([]dto.MonthPoint, 0, n)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		amount, ok := byMonth[key]
		if !ok {
			amount = decimal.Zero
		}
		out = append(out, dto.MonthPoint{Month: key, Label: shortMonthLabel(m), Amount: amount.Round(2)})
	}
	return out
}

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
}

// shortMonthLabel ej: "Feb 2026".
func shortMonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[t.Month()-1][:3], t.Year())
}
