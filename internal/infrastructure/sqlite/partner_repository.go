package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
)

var (
	_ repository.PartnerRepository             = (*PartnerRepo)(nil)
	_ repository.PartnerRegistrationRepository = (*PartnerRegistrationRepo)(nil)
)

// PartnerRepo implementación de PartnerRepository.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador. Pasar db o tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

const partnerSelect = `
	SELECT p.id, p.name, p.company, p.email, p.phone, p.address, p.region, p.specialization, p.status,
	       p.notes, p.user_id, p.created_at, p.updated_at, COALESCE(u.username, '')
	FROM partners p
	LEFT JOIN users u ON u.id = p.user_id`

func scanPartner(s rowScanner) (*entity.Partner, error) {
	var (
		p      entity.Partner
		userID sql.NullInt64
	)
	err := s.Scan(&p.ID, &p.Name, &p.Company, &p.Email, &p.Phone, &p.Address, &p.Region, &p.Specialization,
		&p.Status, &p.Notes, &userID, &p.CreatedAt, &p.UpdatedAt, &p.Username)
	if err != nil {
		return nil, err
	}
	p.UserID = ptrInt64(userID)
	return &p, nil
}

// Create persiste un partner y asigna su ID.
func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO partners (name, company, email, phone, address, region, specialization, status, notes, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Company, p.Email, p.Phone, p.Address, p.Region, p.Specialization, p.Status, p.Notes,
		nullInt64(p.UserID), p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert partner", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert partner", err)
	}
	p.ID = id
	return nil
}

func (r *PartnerRepo) one(ctx context.Context, op, where string, args ...any) (*entity.Partner, error) {
	p, err := scanPartner(r.q.QueryRowContext(ctx, partnerSelect+" WHERE "+where, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr(op, err)
	}
	return p, nil
}

// GetByID obtiene un partner por ID.
func (r *PartnerRepo) GetByID(ctx context.Context, id int64) (*entity.Partner, error) {
	return r.one(ctx, "get partner", "p.id = ?", id)
}

// GetByUserID obtiene el partner vinculado a una cuenta.
func (r *PartnerRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Partner, error) {
	return r.one(ctx, "get partner by user", "p.user_id = ?", userID)
}

// EmailTaken indica si otro partner ya usa el email.
func (r *PartnerRepo) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM partners WHERE email = ? AND id != ?`, email, excludeID).Scan(&n)
	if err != nil {
		return false, dbErr("check partner email", err)
	}
	return n > 0, nil
}

// List devuelve todos los partners, más recientes primero.
func (r *PartnerRepo) List(ctx context.Context) ([]*entity.Partner, error) {
	rows, err := r.q.QueryContext(ctx, partnerSelect+" ORDER BY p.created_at DESC, p.id DESC")
	if err != nil {
		return nil, dbErr("list partners", err)
	}
	defer rows.Close()
	var list []*entity.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, dbErr("list partners", err)
		}
		list = append(list, p)
	}
	return list, dbErr("list partners", rows.Err())
}

// Update persiste los datos editables del partner.
func (r *PartnerRepo) Update(ctx context.Context, p *entity.Partner) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE partners SET name = ?, company = ?, email = ?, phone = ?, address = ?, region = ?,
		       specialization = ?, status = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Company, p.Email, p.Phone, p.Address, p.Region, p.Specialization, p.Status, p.Notes,
		p.UpdatedAt.UTC(), p.ID,
	)
	if err != nil {
		return mapWriteErr("update partner", err)
	}
	return requireAffected(res, "update partner")
}

// SetStatus cambia el estado (active/inactive).
func (r *PartnerRepo) SetStatus(ctx context.Context, id int64, status string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE partners SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return mapWriteErr("set partner status", err)
	}
	return requireAffected(res, "set partner status")
}

// LinkUser vincula la cuenta de acceso al partner.
func (r *PartnerRepo) LinkUser(ctx context.Context, partnerID, userID int64) error {
	res, err := r.q.ExecContext(ctx, `UPDATE partners SET user_id = ? WHERE id = ?`, userID, partnerID)
	if err != nil {
		return mapWriteErr("link partner user", err)
	}
	return requireAffected(res, "link partner user")
}

// Delete elimina el partner; sus registros dependientes se eliminan en cascada.
func (r *PartnerRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM partners WHERE id = ?`, id)
	if err != nil {
		return mapWriteErr("delete partner", err)
	}
	return requireAffected(res, "delete partner")
}

// Stats conteos de partners.
func (r *PartnerRepo) Stats(ctx context.Context) (*entity.PartnerStats, error) {
	var st entity.PartnerStats
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN user_id IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM partners`).Scan(&st.Total, &st.Active, &st.Accounts)
	if err != nil {
		return nil, dbErr("partner stats", err)
	}
	st.Inactive = st.Total - st.Active
	return &st, nil
}

// PartnerRegistrationRepo implementación de PartnerRegistrationRepository.
type PartnerRegistrationRepo struct {
	q Querier
}

// NewPartnerRegistrationRepository construye el adaptador.
func NewPartnerRegistrationRepository(q Querier) *PartnerRegistrationRepo {
	return &PartnerRegistrationRepo{q: q}
}

const registrationSelect = `
	SELECT id, partner_name, contact_email, company, region, sectors, status, partner_id, created_at
	FROM partner_registrations`

func scanRegistration(s rowScanner) (*entity.PartnerRegistration, error) {
	var (
		reg       entity.PartnerRegistration
		partnerID sql.NullInt64
	)
	err := s.Scan(&reg.ID, &reg.PartnerName, &reg.ContactEmail, &reg.Company, &reg.Region, &reg.Sectors,
		&reg.Status, &partnerID, &reg.CreatedAt)
	if err != nil {
		return nil, err
	}
	reg.PartnerID = ptrInt64(partnerID)
	return &reg, nil
}

// Create persiste una solicitud.
func (r *PartnerRegistrationRepo) Create(ctx context.Context, reg *entity.PartnerRegistration) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO partner_registrations (partner_name, contact_email, company, region, sectors, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		reg.PartnerName, reg.ContactEmail, reg.Company, reg.Region, reg.Sectors, reg.Status, reg.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert registration", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert registration", err)
	}
	reg.ID = id
	return nil
}

// GetByID obtiene una solicitud.
func (r *PartnerRegistrationRepo) GetByID(ctx context.Context, id int64) (*entity.PartnerRegistration, error) {
	reg, err := scanRegistration(r.q.QueryRowContext(ctx, registrationSelect+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get registration", err)
	}
	return reg, nil
}

// List devuelve las solicitudes; status vacío = todas.
func (r *PartnerRegistrationRepo) List(ctx context.Context, status string) ([]*entity.PartnerRegistration, error) {
	rows, err := r.q.QueryContext(ctx, registrationSelect+" WHERE (? = '' OR status = ?) ORDER BY created_at DESC, id DESC", status, status)
	if err != nil {
		return nil, dbErr("list registrations", err)
	}
	defer rows.Close()
	var list []*entity.PartnerRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, dbErr("list registrations", err)
		}
		list = append(list, reg)
	}
	return list, dbErr("list registrations", rows.Err())
}

// SetStatus resuelve la solicitud y guarda el partner creado, si hay.
func (r *PartnerRegistrationRepo) SetStatus(ctx context.Context, id int64, status string, partnerID *int64) error {
	res, err := r.q.ExecContext(ctx, `UPDATE partner_registrations SET status = ?, partner_id = ? WHERE id = ?`,
		status, nullInt64(partnerID), id)
	if err != nil {
		return mapWriteErr("set registration status", err)
	}
	return requireAffected(res, "set registration status")
}
