package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
)

var (
	_ repository.ClientSubBCSRepository  = (*ClientSubBCSRepo)(nil)
	_ repository.PartnerSubBCSRepository = (*PartnerSubBCSRepo)(nil)
	_ repository.UserAppRepository       = (*UserAppRepo)(nil)
)

// ClientSubBCSRepo implementación de ClientSubBCSRepository.
type ClientSubBCSRepo struct {
	q Querier
}

// NewClientSubBCSRepository construye el adaptador.
func NewClientSubBCSRepository(q Querier) *ClientSubBCSRepo {
	return &ClientSubBCSRepo{q: q}
}

const clientSubBCSSelect = `
	SELECT id, partner_id, contact_id, client_name, company_name, bcs_type, modules, users_count, status,
	       start_date, monthly_value, notes, created_at
	FROM client_sub_bcs`

func scanClientSubBCS(s rowScanner) (*entity.ClientSubBCS, error) {
	var (
		c         entity.ClientSubBCS
		contactID sql.NullInt64
		startDate sql.NullTime
	)
	err := s.Scan(&c.ID, &c.PartnerID, &contactID, &c.ClientName, &c.CompanyName, &c.BCSType, &c.Modules,
		&c.UsersCount, &c.Status, &startDate, &c.MonthlyValue, &c.Notes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ContactID = ptrInt64(contactID)
	c.StartDate = ptrTime(startDate)
	return &c, nil
}

// Create persiste un registro de Sub-BCS de cliente.
func (r *ClientSubBCSRepo) Create(ctx context.Context, c *entity.ClientSubBCS) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO client_sub_bcs (partner_id, contact_id, client_name, company_name, bcs_type, modules, users_count,
		                            status, start_date, monthly_value, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.PartnerID, nullInt64(c.ContactID), c.ClientName, c.CompanyName, c.BCSType, c.Modules, c.UsersCount,
		c.Status, nullTime(c.StartDate), c.MonthlyValue, c.Notes, c.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert client sub-bcs", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert client sub-bcs", err)
	}
	c.ID = id
	return nil
}

// GetByID obtiene un registro.
func (r *ClientSubBCSRepo) GetByID(ctx context.Context, id int64) (*entity.ClientSubBCS, error) {
	c, err := scanClientSubBCS(r.q.QueryRowContext(ctx, clientSubBCSSelect+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get client sub-bcs", err)
	}
	return c, nil
}

// ListByPartner lista los registros del partner.
func (r *ClientSubBCSRepo) ListByPartner(ctx context.Context, partnerID int64) ([]*entity.ClientSubBCS, error) {
	rows, err := r.q.QueryContext(ctx, clientSubBCSSelect+" WHERE partner_id = ? ORDER BY created_at DESC, id DESC", partnerID)
	if err != nil {
		return nil, dbErr("list client sub-bcs", err)
	}
	defer rows.Close()
	var list []*entity.ClientSubBCS
	for rows.Next() {
		c, err := scanClientSubBCS(rows)
		if err != nil {
			return nil, dbErr("list client sub-bcs", err)
		}
		list = append(list, c)
	}
	return list, dbErr("list client sub-bcs", rows.Err())
}

// SetStatus cambia el estado (active/inactive/trial).
func (r *ClientSubBCSRepo) SetStatus(ctx context.Context, id int64, status string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE client_sub_bcs SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return mapWriteErr("set client sub-bcs status", err)
	}
	return requireAffected(res, "set client sub-bcs status")
}

// Delete elimina el registro.
func (r *ClientSubBCSRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM client_sub_bcs WHERE id = ?`, id)
	if err != nil {
		return dbErr("delete client sub-bcs", err)
	}
	return requireAffected(res, "delete client sub-bcs")
}

// PartnerSubBCSRepo implementación de PartnerSubBCSRepository.
type PartnerSubBCSRepo struct {
	q Querier
}

// NewPartnerSubBCSRepository construye el adaptador.
func NewPartnerSubBCSRepository(q Querier) *PartnerSubBCSRepo {
	return &PartnerSubBCSRepo{q: q}
}

const partnerSubBCSSelect = `
	SELECT s.id, s.partner_id, s.bcs_name, s.bcs_type, s.description, s.modules, s.status, s.notes, s.created_at,
	       p.name
	FROM partner_sub_bcs s
	JOIN partners p ON p.id = s.partner_id`

func scanPartnerSubBCS(s rowScanner) (*entity.PartnerSubBCS, error) {
	var p entity.PartnerSubBCS
	err := s.Scan(&p.ID, &p.PartnerID, &p.BCSName, &p.BCSType, &p.Description, &p.Modules, &p.Status, &p.Notes,
		&p.CreatedAt, &p.PartnerName)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste una instancia BCS del partner.
func (r *PartnerSubBCSRepo) Create(ctx context.Context, p *entity.PartnerSubBCS) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO partner_sub_bcs (partner_id, bcs_name, bcs_type, description, modules, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PartnerID, p.BCSName, p.BCSType, p.Description, p.Modules, p.Status, p.Notes, p.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert partner sub-bcs", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert partner sub-bcs", err)
	}
	p.ID = id
	return nil
}

// GetByID obtiene una instancia.
func (r *PartnerSubBCSRepo) GetByID(ctx context.Context, id int64) (*entity.PartnerSubBCS, error) {
	p, err := scanPartnerSubBCS(r.q.QueryRowContext(ctx, partnerSubBCSSelect+" WHERE s.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get partner sub-bcs", err)
	}
	return p, nil
}

// List devuelve todas las instancias o solo las de un partner.
func (r *PartnerSubBCSRepo) List(ctx context.Context, partnerID *int64) ([]*entity.PartnerSubBCS, error) {
	q, args := partnerSubBCSSelect, []any{}
	if partnerID != nil {
		q += " WHERE s.partner_id = ?"
		args = append(args, *partnerID)
	}
	rows, err := r.q.QueryContext(ctx, q+" ORDER BY s.created_at DESC, s.id DESC", args...)
	if err != nil {
		return nil, dbErr("list partner sub-bcs", err)
	}
	defer rows.Close()
	var list []*entity.PartnerSubBCS
	for rows.Next() {
		p, err := scanPartnerSubBCS(rows)
		if err != nil {
			return nil, dbErr("list partner sub-bcs", err)
		}
		list = append(list, p)
	}
	return list, dbErr("list partner sub-bcs", rows.Err())
}

// SetStatus cambia el estado (active/inactive/development).
func (r *PartnerSubBCSRepo) SetStatus(ctx context.Context, id int64, status string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE partner_sub_bcs SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return mapWriteErr("set partner sub-bcs status", err)
	}
	return requireAffected(res, "set partner sub-bcs status")
}

// Delete elimina la instancia.
func (r *PartnerSubBCSRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM partner_sub_bcs WHERE id = ?`, id)
	if err != nil {
		return dbErr("delete partner sub-bcs", err)
	}
	return requireAffected(res, "delete partner sub-bcs")
}

// UserAppRepo implementación de UserAppRepository.
type UserAppRepo struct {
	q Querier
}

// NewUserAppRepository construye el adaptador.
func NewUserAppRepository(q Querier) *UserAppRepo {
	return &UserAppRepo{q: q}
}

const userAppSelect = `
	SELECT a.id, a.user_id, a.partner_id, a.app_name, a.app_description, a.app_url, a.app_icon, a.app_type,
	       a.status, a.access_count, a.last_accessed, a.created_at, u.username, COALESCE(p.name, '')
	FROM user_sub_bcs a
	JOIN users u ON u.id = a.user_id
	LEFT JOIN partners p ON p.id = a.partner_id`

func scanUserApp(s rowScanner) (*entity.UserApp, error) {
	var (
		a            entity.UserApp
		partnerID    sql.NullInt64
		lastAccessed sql.NullTime
	)
	err := s.Scan(&a.ID, &a.UserID, &partnerID, &a.Name, &a.Description, &a.URL, &a.Icon, &a.Type, &a.Status,
		&a.AccessCount, &lastAccessed, &a.CreatedAt, &a.Username, &a.PartnerName)
	if err != nil {
		return nil, err
	}
	a.PartnerID = ptrInt64(partnerID)
	a.LastAccessed = ptrTime(lastAccessed)
	return &a, nil
}

func (r *UserAppRepo) many(ctx context.Context, op, tail string, args ...any) ([]*entity.UserApp, error) {
	rows, err := r.q.QueryContext(ctx, userAppSelect+tail, args...)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()
	var list []*entity.UserApp
	for rows.Next() {
		a, err := scanUserApp(rows)
		if err != nil {
			return nil, dbErr(op, err)
		}
		list = append(list, a)
	}
	return list, dbErr(op, rows.Err())
}

// Create persiste una app asignada a un cliente.
func (r *UserAppRepo) Create(ctx context.Context, a *entity.UserApp) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO user_sub_bcs (user_id, partner_id, app_name, app_description, app_url, app_icon, app_type,
		                          status, access_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		a.UserID, nullInt64(a.PartnerID), a.Name, a.Description, a.URL, a.Icon, a.Type, a.Status, a.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert user app", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert user app", err)
	}
	a.ID = id
	return nil
}

// GetByID obtiene una app.
func (r *UserAppRepo) GetByID(ctx context.Context, id int64) (*entity.UserApp, error) {
	a, err := scanUserApp(r.q.QueryRowContext(ctx, userAppSelect+" WHERE a.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get user app", err)
	}
	return a, nil
}

// ListActiveByUser apps activas del cliente, alfabéticas.
func (r *UserAppRepo) ListActiveByUser(ctx context.Context, userID int64) ([]*entity.UserApp, error) {
	return r.many(ctx, "list user apps", " WHERE a.user_id = ? AND a.status = 'active' ORDER BY a.app_name", userID)
}

// ListAll todas las apps (monitoreo del admin).
func (r *UserAppRepo) ListAll(ctx context.Context) ([]*entity.UserApp, error) {
	return r.many(ctx, "list apps", " ORDER BY a.created_at DESC, a.id DESC")
}

// ListByPartner apps asignadas por un partner.
func (r *UserAppRepo) ListByPartner(ctx context.Context, partnerID int64) ([]*entity.UserApp, error) {
	return r.many(ctx, "list partner apps", " WHERE a.partner_id = ? ORDER BY a.created_at DESC, a.id DESC", partnerID)
}

// SetStatus activa o desactiva la app.
func (r *UserAppRepo) SetStatus(ctx context.Context, id int64, status string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE user_sub_bcs SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return mapWriteErr("set user app status", err)
	}
	return requireAffected(res, "set user app status")
}

// Delete elimina la app.
func (r *UserAppRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM user_sub_bcs WHERE id = ?`, id)
	if err != nil {
		return dbErr("delete user app", err)
	}
	return requireAffected(res, "delete user app")
}

// RecordAccess incrementa el contador en una sola sentencia (sin carreras entre lecturas).
func (r *UserAppRepo) RecordAccess(ctx context.Context, id, userID int64, at time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE user_sub_bcs SET access_count = access_count + 1, last_accessed = ?
		WHERE id = ? AND user_id = ? AND status = 'active'`,
		at.UTC(), id, userID,
	)
	if err != nil {
		return false, dbErr("record app access", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, dbErr("record app access", err)
	}
	return n > 0, nil
}

// StatsForUser resumen de uso de las apps del cliente.
func (r *UserAppRepo) StatsForUser(ctx context.Context, userID int64) (*entity.UserAppStats, error) {
	var st entity.UserAppStats
	err := r.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0), COALESCE(SUM(access_count), 0)
		FROM user_sub_bcs WHERE user_id = ?`, userID).Scan(&st.TotalApps, &st.TotalAccesses)
	if err != nil {
		return nil, dbErr("user app stats", err)
	}

	err = r.q.QueryRowContext(ctx, `
		SELECT app_name, access_count FROM user_sub_bcs
		WHERE user_id = ? AND access_count > 0
		ORDER BY access_count DESC, app_name LIMIT 1`, userID).Scan(&st.MostUsedApp, &st.MostUsedCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, dbErr("user app stats", err)
	}

	var last sql.NullTime
	err = r.q.QueryRowContext(ctx, `
		SELECT app_name, last_accessed FROM user_sub_bcs
		WHERE user_id = ? AND last_accessed IS NOT NULL
		ORDER BY last_accessed DESC LIMIT 1`, userID).Scan(&st.LastAccessed, &last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, dbErr("user app stats", err)
	}
	st.LastAccessedAt = ptrTime(last)
	return &st, nil
}
