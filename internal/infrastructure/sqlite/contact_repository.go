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
	_ repository.ContactRepository  = (*ContactRepo)(nil)
	_ repository.ActivityRepository = (*ActivityRepo)(nil)
)

// ContactRepo implementación de ContactRepository.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar db o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

const contactSelect = `
	SELECT id, partner_id, name, company, email, phone, position, industry, status, notes,
	       validated, validation_date, converted_to_user, converted_user_id, conversion_date,
	       last_contact, created_at
	FROM contacts`

func scanContact(s rowScanner) (*entity.Contact, error) {
	var (
		c                                           entity.Contact
		validationDate, conversionDate, lastContact sql.NullTime
		convertedUserID                             sql.NullInt64
	)
	err := s.Scan(&c.ID, &c.PartnerID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Position, &c.Industry,
		&c.Status, &c.Notes, &c.Validated, &validationDate, &c.ConvertedToUser, &convertedUserID,
		&conversionDate, &lastContact, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ValidationDate = ptrTime(validationDate)
	c.ConvertedUserID = ptrInt64(convertedUserID)
	c.ConversionDate = ptrTime(conversionDate)
	c.LastContact = ptrTime(lastContact)
	return &c, nil
}

// Create persiste un contacto nuevo (siempre sin validar y sin convertir).
func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO contacts (partner_id, name, company, email, phone, position, industry, status, notes, last_contact, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.PartnerID, c.Name, c.Company, c.Email, c.Phone, c.Position, c.Industry, c.Status, c.Notes,
		nullTime(c.LastContact), c.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert contact", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert contact", err)
	}
	c.ID = id
	return nil
}

// GetByID obtiene un contacto (nil, nil si no existe).
func (r *ContactRepo) GetByID(ctx context.Context, id int64) (*entity.Contact, error) {
	c, err := scanContact(r.q.QueryRowContext(ctx, contactSelect+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get contact", err)
	}
	return c, nil
}

// ListByPartner lista los contactos del partner aplicando el filtro de vista.
func (r *ContactRepo) ListByPartner(ctx context.Context, partnerID int64, f entity.ContactFilter) ([]*entity.Contact, error) {
	var (
		where = []string{"partner_id = ?"}
		args  = []any{partnerID}
	)
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	switch f.Validation {
	case string(entity.ContactValidated):
		where = append(where, "validated = 1 AND converted_to_user = 0")
	case string(entity.ContactUnvalidated):
		where = append(where, "validated = 0")
	case string(entity.ContactConverted):
		where = append(where, "converted_to_user = 1")
	}
	if f.Industry != "" {
		where = append(where, "industry = ?")
		args = append(args, f.Industry)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		where = append(where, `(name LIKE ? ESCAPE '\' OR company LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\')`)
		args = append(args, p, p, p)
	}

	rows, err := r.q.QueryContext(ctx, contactSelect+" WHERE "+strings.Join(where, " AND ")+" ORDER BY created_at DESC, id DESC", args...)
	if err != nil {
		return nil, dbErr("list contacts", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, dbErr("list contacts", err)
		}
		list = append(list, c)
	}
	return list, dbErr("list contacts", rows.Err())
}

// Update persiste los datos de contacto. No toca los campos del ciclo de vida.
func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE contacts SET name = ?, company = ?, email = ?, phone = ?, position = ?, industry = ?,
		       status = ?, notes = ?, last_contact = ?
		WHERE id = ?`,
		c.Name, c.Company, c.Email, c.Phone, c.Position, c.Industry, c.Status, c.Notes, nullTime(c.LastContact), c.ID,
	)
	if err != nil {
		return mapWriteErr("update contact", err)
	}
	return requireAffected(res, "update contact")
}

// SetStatus cambia el estado activo/inactivo.
func (r *ContactRepo) SetStatus(ctx context.Context, id int64, status string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE contacts SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return mapWriteErr("set contact status", err)
	}
	return requireAffected(res, "set contact status")
}

// MarkValidated fija validated = 1 y la fecha de validación.
func (r *ContactRepo) MarkValidated(ctx context.Context, id int64, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `UPDATE contacts SET validated = 1, validation_date = ? WHERE id = ?`, at.UTC(), id)
	if err != nil {
		return dbErr("validate contact", err)
	}
	return requireAffected(res, "validate contact")
}

// MarkConverted marca el contacto como convertido. Solo afecta contactos validados sin convertir.
func (r *ContactRepo) MarkConverted(ctx context.Context, id, userID int64, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE contacts SET converted_to_user = 1, converted_user_id = ?, conversion_date = ?
		WHERE id = ? AND validated = 1 AND converted_to_user = 0`,
		userID, at.UTC(), id,
	)
	if err != nil {
		return mapWriteErr("convert contact", err)
	}
	return requireAffected(res, "convert contact")
}

// ClearConversion quita la marca de conversión de los contactos ligados a userID.
// validated se conserva, así el contacto puede convertirse de nuevo.
func (r *ContactRepo) ClearConversion(ctx context.Context, userID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE contacts SET converted_to_user = 0, converted_user_id = NULL, conversion_date = NULL
		WHERE converted_user_id = ?`,
		userID,
	)
	if err != nil {
		return 0, dbErr("clear contact conversion", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dbErr("clear contact conversion", err)
	}
	return n, nil
}

// Delete elimina el contacto; las actividades quedan sin contacto.
func (r *ContactRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return mapWriteErr("delete contact", err)
	}
	return requireAffected(res, "delete contact")
}

// ActivityRepo implementación de ActivityRepository.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

const activitySelect = `
	SELECT a.id, a.partner_id, a.contact_id, a.lead_id, a.opportunity_id, a.activity_type, a.subject,
	       a.description, a.activity_date, a.follow_up_date, a.completed, a.validation_success, a.created_at,
	       COALESCE(c.name, '')
	FROM activities a
	LEFT JOIN contacts c ON c.id = a.contact_id`

func scanActivity(s rowScanner) (*entity.Activity, error) {
	var (
		a                        entity.Activity
		contactID, leadID, oppID sql.NullInt64
		followUp                 sql.NullTime
	)
	err := s.Scan(&a.ID, &a.PartnerID, &contactID, &leadID, &oppID, &a.Type, &a.Subject, &a.Description,
		&a.ActivityDate, &followUp, &a.Completed, &a.ValidationSuccess, &a.CreatedAt, &a.ContactName)
	if err != nil {
		return nil, err
	}
	a.ContactID = ptrInt64(contactID)
	a.LeadID = ptrInt64(leadID)
	a.OpportunityID = ptrInt64(oppID)
	a.FollowUpDate = ptrTime(followUp)
	return &a, nil
}

// Create persiste una actividad y asigna su ID.
func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO activities (partner_id, contact_id, lead_id, opportunity_id, activity_type, subject, description,
		                        activity_date, follow_up_date, completed, validation_success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.PartnerID, nullInt64(a.ContactID), nullInt64(a.LeadID), nullInt64(a.OpportunityID), a.Type, a.Subject,
		a.Description, a.ActivityDate.UTC(), nullTime(a.FollowUpDate), a.Completed, a.ValidationSuccess, a.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert activity", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert activity", err)
	}
	a.ID = id
	return nil
}

// GetByID obtiene una actividad.
func (r *ActivityRepo) GetByID(ctx context.Context, id int64) (*entity.Activity, error) {
	a, err := scanActivity(r.q.QueryRowContext(ctx, activitySelect+" WHERE a.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get activity", err)
	}
	return a, nil
}

// ListByPartner lista actividades del partner, más recientes primero.
func (r *ActivityRepo) ListByPartner(ctx context.Context, partnerID int64, pendingOnly bool) ([]*entity.Activity, error) {
	q := activitySelect + " WHERE a.partner_id = ?"
	if pendingOnly {
		q += " AND a.completed = 0"
	}
	rows, err := r.q.QueryContext(ctx, q+" ORDER BY a.activity_date DESC, a.id DESC", partnerID)
	if err != nil {
		return nil, dbErr("list activities", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, dbErr("list activities", err)
		}
		list = append(list, a)
	}
	return list, dbErr("list activities", rows.Err())
}

// SetCompleted marca la actividad como completada o pendiente.
func (r *ActivityRepo) SetCompleted(ctx context.Context, id int64, completed bool) error {
	res, err := r.q.ExecContext(ctx, `UPDATE activities SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return dbErr("complete activity", err)
	}
	return requireAffected(res, "complete activity")
}

// Delete elimina la actividad.
func (r *ActivityRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return dbErr("delete activity", err)
	}
	return requireAffected(res, "delete activity")
}
