package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
)

var (
	_ repository.LeadRepository        = (*LeadRepo)(nil)
	_ repository.OpportunityRepository = (*OpportunityRepo)(nil)
	_ repository.CommissionRepository  = (*CommissionRepo)(nil)
)

// LeadRepo implementación de LeadRepository.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador.
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

const leadSelect = `
	SELECT id, partner_id, company_name, contact_name, contact_email, contact_phone, industry, company_size,
	       pain_points, lead_source, status, message, last_contact, notes, created_at
	FROM leads`

func scanLead(s rowScanner) (*entity.Lead, error) {
	var (
		l           entity.Lead
		partnerID   sql.NullInt64
		lastContact sql.NullTime
	)
	err := s.Scan(&l.ID, &partnerID, &l.CompanyName, &l.ContactName, &l.ContactEmail, &l.ContactPhone, &l.Industry,
		&l.CompanySize, &l.PainPoints, &l.Source, &l.Status, &l.Message, &lastContact, &l.Notes, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.PartnerID = ptrInt64(partnerID)
	l.LastContact = ptrTime(lastContact)
	return &l, nil
}

// Create persiste un lead.
func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO leads (partner_id, company_name, contact_name, contact_email, contact_phone, industry, company_size,
		                   pain_points, lead_source, status, message, last_contact, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullInt64(l.PartnerID), l.CompanyName, l.ContactName, l.ContactEmail, l.ContactPhone, l.Industry, l.CompanySize,
		l.PainPoints, l.Source, l.Status, l.Message, nullTime(l.LastContact), l.Notes, l.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert lead", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert lead", err)
	}
	l.ID = id
	return nil
}

// GetByID obtiene un lead.
func (r *LeadRepo) GetByID(ctx context.Context, id int64) (*entity.Lead, error) {
	l, err := scanLead(r.q.QueryRowContext(ctx, leadSelect+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get lead", err)
	}
	return l, nil
}

// List lista los leads de un partner, o los capturados sin partner si partnerID es nil.
func (r *LeadRepo) List(ctx context.Context, partnerID *int64, f entity.LeadFilter) ([]*entity.Lead, error) {
	var (
		where []string
		args  []any
	)
	if partnerID != nil {
		where = append(where, "partner_id = ?")
		args = append(args, *partnerID)
	} else {
		where = append(where, "partner_id IS NULL")
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Source != "" {
		where = append(where, "lead_source = ?")
		args = append(args, f.Source)
	}
	rows, err := r.q.QueryContext(ctx, leadSelect+" WHERE "+strings.Join(where, " AND ")+" ORDER BY created_at DESC, id DESC", args...)
	if err != nil {
		return nil, dbErr("list leads", err)
	}
	defer rows.Close()
	var list []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, dbErr("list leads", err)
		}
		list = append(list, l)
	}
	return list, dbErr("list leads", rows.Err())
}

// Update persiste los datos editables del lead.
func (r *LeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE leads SET company_name = ?, contact_name = ?, contact_email = ?, contact_phone = ?, industry = ?,
		       company_size = ?, pain_points = ?, lead_source = ?, status = ?, last_contact = ?, notes = ?
		WHERE id = ?`,
		l.CompanyName, l.ContactName, l.ContactEmail, l.ContactPhone, l.Industry, l.CompanySize, l.PainPoints,
		l.Source, l.Status, nullTime(l.LastContact), l.Notes, l.ID,
	)
	if err != nil {
		return mapWriteErr("update lead", err)
	}
	return requireAffected(res, "update lead")
}

// UpdateStatus cambia el estado y registra el último contacto.
func (r *LeadRepo) UpdateStatus(ctx context.Context, id int64, status string, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `UPDATE leads SET status = ?, last_contact = ? WHERE id = ?`, status, at.UTC(), id)
	if err != nil {
		return mapWriteErr("update lead status", err)
	}
	return requireAffected(res, "update lead status")
}

// Delete elimina el lead; oportunidades y actividades caen por ON DELETE CASCADE.
func (r *LeadRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return dbErr("delete lead", err)
	}
	return requireAffected(res, "delete lead")
}

// OpportunityRepo implementación de OpportunityRepository.
type OpportunityRepo struct {
	q Querier
}

// NewOpportunityRepository construye el adaptador.
func NewOpportunityRepository(q Querier) *OpportunityRepo {
	return &OpportunityRepo{q: q}
}

const opportunitySelect = `
	SELECT o.id, o.lead_id, o.partner_id, o.opportunity_name, o.bcs_solution, o.estimated_users, o.price_per_user,
	       o.total_value, o.probability, o.stage, o.status, o.expected_close_date, o.actual_close_date, o.notes,
	       o.created_at, l.company_name
	FROM opportunities o
	JOIN leads l ON l.id = o.lead_id`

func scanOpportunity(s rowScanner) (*entity.Opportunity, error) {
	var (
		o                entity.Opportunity
		expected, actual sql.NullTime
	)
	err := s.Scan(&o.ID, &o.LeadID, &o.PartnerID, &o.Name, &o.Solution, &o.EstimatedUsers, &o.PricePerUser,
		&o.TotalValue, &o.Probability, &o.Stage, &o.Status, &expected, &actual, &o.Notes, &o.CreatedAt, &o.CompanyName)
	if err != nil {
		return nil, err
	}
	o.ExpectedCloseDate = ptrTime(expected)
	o.ActualCloseDate = ptrTime(actual)
	return &o, nil
}

// Create persiste una oportunidad.
func (r *OpportunityRepo) Create(ctx context.Context, o *entity.Opportunity) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO opportunities (lead_id, partner_id, opportunity_name, bcs_solution, estimated_users, price_per_user,
		                           total_value, probability, stage, status, expected_close_date, actual_close_date,
		                           notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.LeadID, o.PartnerID, o.Name, o.Solution, o.EstimatedUsers, o.PricePerUser, o.TotalValue, o.Probability,
		o.Stage, o.Status, nullTime(o.ExpectedCloseDate), nullTime(o.ActualCloseDate), o.Notes, o.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert opportunity", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert opportunity", err)
	}
	o.ID = id
	return nil
}

// GetByID obtiene una oportunidad.
func (r *OpportunityRepo) GetByID(ctx context.Context, id int64) (*entity.Opportunity, error) {
	o, err := scanOpportunity(r.q.QueryRowContext(ctx, opportunitySelect+" WHERE o.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get opportunity", err)
	}
	return o, nil
}

// ListByPartner lista las oportunidades del partner.
func (r *OpportunityRepo) ListByPartner(ctx context.Context, partnerID int64) ([]*entity.Opportunity, error) {
	rows, err := r.q.QueryContext(ctx, opportunitySelect+" WHERE o.partner_id = ? ORDER BY o.created_at DESC, o.id DESC", partnerID)
	if err != nil {
		return nil, dbErr("list opportunities", err)
	}
	defer rows.Close()
	var list []*entity.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, dbErr("list opportunities", err)
		}
		list = append(list, o)
	}
	return list, dbErr("list opportunities", rows.Err())
}

// Update persiste los datos editables de la oportunidad.
func (r *OpportunityRepo) Update(ctx context.Context, o *entity.Opportunity) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE opportunities SET opportunity_name = ?, bcs_solution = ?, estimated_users = ?, price_per_user = ?,
		       total_value = ?, probability = ?, stage = ?, status = ?, expected_close_date = ?,
		       actual_close_date = ?, notes = ?
		WHERE id = ?`,
		o.Name, o.Solution, o.EstimatedUsers, o.PricePerUser, o.TotalValue, o.Probability, o.Stage, o.Status,
		nullTime(o.ExpectedCloseDate), nullTime(o.ActualCloseDate), o.Notes, o.ID,
	)
	if err != nil {
		return mapWriteErr("update opportunity", err)
	}
	return requireAffected(res, "update opportunity")
}

// Delete elimina la oportunidad; sus actividades caen por ON DELETE CASCADE.
func (r *OpportunityRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM opportunities WHERE id = ?`, id)
	if err != nil {
		return dbErr("delete opportunity", err)
	}
	return requireAffected(res, "delete opportunity")
}

// CommissionRepo implementación de CommissionRepository.
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository construye el adaptador.
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

const commissionSelect = `
	SELECT id, partner_id, opportunity_id, client_name, monthly_value, commission_rate, commission_amount,
	       start_date, status, payment_date, notes, created_at
	FROM commissions`

func scanCommission(s rowScanner) (*entity.Commission, error) {
	var (
		c       entity.Commission
		oppID   sql.NullInt64
		payment sql.NullTime
	)
	err := s.Scan(&c.ID, &c.PartnerID, &oppID, &c.ClientName, &c.MonthlyValue, &c.Rate, &c.Amount, &c.StartDate,
		&c.Status, &payment, &c.Notes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.OpportunityID = ptrInt64(oppID)
	c.PaymentDate = ptrTime(payment)
	return &c, nil
}

// Create persiste una comisión.
func (r *CommissionRepo) Create(ctx context.Context, c *entity.Commission) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO commissions (partner_id, opportunity_id, client_name, monthly_value, commission_rate,
		                         commission_amount, start_date, status, payment_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.PartnerID, nullInt64(c.OpportunityID), c.ClientName, c.MonthlyValue, c.Rate, c.Amount, c.StartDate.UTC(),
		c.Status, nullTime(c.PaymentDate), c.Notes, c.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert commission", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert commission", err)
	}
	c.ID = id
	return nil
}

// GetByID obtiene una comisión.
func (r *CommissionRepo) GetByID(ctx context.Context, id int64) (*entity.Commission, error) {
	c, err := scanCommission(r.q.QueryRowContext(ctx, commissionSelect+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get commission", err)
	}
	return c, nil
}

// ListByPartner lista las comisiones del partner, más recientes primero.
func (r *CommissionRepo) ListByPartner(ctx context.Context, partnerID int64) ([]*entity.Commission, error) {
	rows, err := r.q.QueryContext(ctx, commissionSelect+" WHERE partner_id = ? ORDER BY start_date DESC, id DESC", partnerID)
	if err != nil {
		return nil, dbErr("list commissions", err)
	}
	defer rows.Close()
	var list []*entity.Commission
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, dbErr("list commissions", err)
		}
		list = append(list, c)
	}
	return list, dbErr("list commissions", rows.Err())
}

// SetStatus cambia el estado y la fecha de pago.
func (r *CommissionRepo) SetStatus(ctx context.Context, id int64, status string, paymentDate *time.Time) error {
	res, err := r.q.ExecContext(ctx, `UPDATE commissions SET status = ?, payment_date = ? WHERE id = ?`,
		status, nullTime(paymentDate), id)
	if err != nil {
		return mapWriteErr("set commission status", err)
	}
	return requireAffected(res, "set commission status")
}
