package sqlite

import (
	"context"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para los paneles.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// PartnerOverview conteos del panel del partner.
func (r *AnalyticsRepo) PartnerOverview(ctx context.Context, partnerID int64) (*repository.PartnerOverview, error) {
	var (
		ov        repository.PartnerOverview
		crm, apps int
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT
		  (SELECT COUNT(*) FROM contacts WHERE partner_id = ?1 AND status = 'active'),
		  (SELECT COUNT(*) FROM contacts WHERE partner_id = ?1 AND status = 'active' AND validated = 1 AND converted_to_user = 0),
		  (SELECT COUNT(*) FROM client_sub_bcs WHERE partner_id = ?1 AND status = 'active'),
		  (SELECT COUNT(*) FROM user_sub_bcs WHERE partner_id = ?1 AND status = 'active'),
		  (SELECT COUNT(*) FROM partner_sub_bcs WHERE partner_id = ?1 AND status = 'active'),
		  (SELECT COALESCE(SUM(monthly_value), 0.0) FROM client_sub_bcs WHERE partner_id = ?1 AND status = 'active'),
		  (SELECT COUNT(*) FROM activities WHERE partner_id = ?1 AND completed = 0)`,
		partnerID,
	).Scan(&ov.ActiveContacts, &ov.ValidatedPending, &crm, &apps, &ov.PartnerSubBCS, &ov.MonthlyRevenue, &ov.PendingActivities)
	if err != nil {
		return nil, dbErr("partner overview", err)
	}
	ov.ClientSubBCS = crm + apps
	return &ov, nil
}

// AppOverview uso global de apps (panel admin).
func (r *AnalyticsRepo) AppOverview(ctx context.Context) (*repository.AppOverview, error) {
	var ov repository.AppOverview
	err := r.q.QueryRowContext(ctx, `
		SELECT
		  (SELECT COUNT(*) FROM user_sub_bcs),
		  (SELECT COUNT(*) FROM user_sub_bcs WHERE status = 'active'),
		  (SELECT COALESCE(SUM(access_count), 0) FROM user_sub_bcs),
		  (SELECT COUNT(*) FROM partner_sub_bcs)`,
	).Scan(&ov.Total, &ov.Active, &ov.TotalAccesses, &ov.PartnerSubBCS)
	if err != nil {
		return nil, dbErr("app overview", err)
	}
	return &ov, nil
}

// CRMOverview métricas del pipeline del partner.
func (r *AnalyticsRepo) CRMOverview(ctx context.Context, partnerID int64) (*repository.CRMOverview, error) {
	var ov repository.CRMOverview
	err := r.q.QueryRowContext(ctx, `
		SELECT
		  (SELECT COUNT(*) FROM leads WHERE partner_id = ?1),
		  (SELECT COUNT(*) FROM opportunities WHERE partner_id = ?1 AND status = 'open'),
		  (SELECT COALESCE(SUM(total_value * probability / 100.0), 0.0) FROM opportunities WHERE partner_id = ?1 AND status = 'open'),
		  (SELECT COALESCE(SUM(commission_amount), 0.0) FROM commissions WHERE partner_id = ?1 AND status = 'active')`,
		partnerID,
	).Scan(&ov.Leads, &ov.OpenOpportunities, &ov.WeightedPipeline, &ov.MonthlyCommissions)
	if err != nil {
		return nil, dbErr("crm overview", err)
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT stage, COUNT(*), COALESCE(SUM(total_value), 0.0)
		FROM opportunities WHERE partner_id = ? AND status = 'open'
		GROUP BY stage
		ORDER BY CASE stage
		  WHEN 'discovery' THEN 1 WHEN 'demo' THEN 2 WHEN 'proposal' THEN 3 WHEN 'negotiation' THEN 4 ELSE 5 END`,
		partnerID)
	if err != nil {
		return nil, dbErr("crm by stage", err)
	}
	for rows.Next() {
		var sc repository.StageCount
		if err := rows.Scan(&sc.Stage, &sc.Count, &sc.Value); err != nil {
			rows.Close()
			return nil, dbErr("crm by stage", err)
		}
		ov.ByStage = append(ov.ByStage, sc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dbErr("crm by stage", err)
	}

	rows, err = r.q.QueryContext(ctx, `
		SELECT lead_source, COUNT(*) FROM leads WHERE partner_id = ?
		GROUP BY lead_source ORDER BY COUNT(*) DESC, lead_source`, partnerID)
	if err != nil {
		return nil, dbErr("crm by source", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc repository.SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, dbErr("crm by source", err)
		}
		ov.BySource = append(ov.BySource, sc)
	}
	return &ov, dbErr("crm by source", rows.Err())
}

// CommissionOverview MRR, proyección del año, tendencia mensual y top de clientes.
// Las fechas se guardan como texto UTC "YYYY-MM-DD HH:MM:SS", por eso substr agrupa por año y mes.
func (r *AnalyticsRepo) CommissionOverview(ctx context.Context, partnerID int64, now time.Time, trendMonths, topN int) (*repository.CommissionOverview, error) {
	now = now.UTC()
	var ov repository.CommissionOverview
	err := r.q.QueryRowContext(ctx, `
		SELECT
		  COALESCE(SUM(commission_amount), 0.0),
		  COALESCE(SUM(CASE WHEN substr(start_date, 1, 4) = ?2 THEN commission_amount ELSE 0.0 END), 0.0),
		  COUNT(DISTINCT client_name)
		FROM commissions WHERE partner_id = ?1 AND status = 'active'`,
		partnerID, now.Format("2006"),
	).Scan(&ov.MRR, &ov.YearMonthly, &ov.ActiveClients)
	if err != nil {
		return nil, dbErr("commission overview", err)
	}

	since := now.AddDate(0, -trendMonths, 0)
	rows, err := r.q.QueryContext(ctx, `
		SELECT substr(start_date, 1, 7) AS month, SUM(commission_amount)
		FROM commissions WHERE partner_id = ? AND start_date >= ?
		GROUP BY month ORDER BY month`, partnerID, since)
	if err != nil {
		return nil, dbErr("commission trend", err)
	}
	for rows.Next() {
		var ma repository.MonthAmount
		if err := rows.Scan(&ma.Month, &ma.Amount); err != nil {
			rows.Close()
			return nil, dbErr("commission trend", err)
		}
		ov.Trend = append(ov.Trend, ma)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dbErr("commission trend", err)
	}

	rows, err = r.q.QueryContext(ctx, `
		SELECT client_name, SUM(monthly_value), SUM(commission_amount)
		FROM commissions WHERE partner_id = ? AND status = 'active'
		GROUP BY client_name ORDER BY SUM(commission_amount) DESC, client_name LIMIT ?`, partnerID, topN)
	if err != nil {
		return nil, dbErr("commission top clients", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cc repository.ClientCommission
		if err := rows.Scan(&cc.ClientName, &cc.MonthlyValue, &cc.Amount); err != nil {
			return nil, dbErr("commission top clients", err)
		}
		ov.TopClients = append(ov.TopClients, cc)
	}
	return &ov, dbErr("commission top clients", rows.Err())
}
