package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/bcs-blackbox/internal/domain/entity"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar db o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT u.id, u.username, COALESCE(u.email, ''), u.password_hash, u.role_id, r.name, u.is_active,
	       u.created_by_partner_id, u.created_at, u.updated_at,
	       COALESCE(cp.name, ''), lp.id
	FROM users u
	JOIN roles r ON r.id = u.role_id
	LEFT JOIN partners cp ON cp.id = u.created_by_partner_id
	LEFT JOIN partners lp ON lp.user_id = u.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*entity.User, error) {
	var (
		u         entity.User
		createdBy sql.NullInt64
		linked    sql.NullInt64
	)
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.IsActive,
		&createdBy, &u.CreatedAt, &u.UpdatedAt, &u.CreatedByPartnerName, &linked)
	if err != nil {
		return nil, err
	}
	u.CreatedByPartnerID = ptrInt64(createdBy)
	u.PartnerID = ptrInt64(linked)
	return &u, nil
}

func (r *UserRepo) one(ctx context.Context, op, where string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx, userSelect+" WHERE "+where, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr(op, err)
	}
	return u, nil
}

func (r *UserRepo) many(ctx context.Context, op, tail string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.QueryContext(ctx, userSelect+tail, args...)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, dbErr(op, err)
		}
		list = append(list, u)
	}
	return list, dbErr(op, rows.Err())
}

// Create persiste un nuevo usuario y asigna su ID.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, role_id, is_active, created_by_partner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, nullString(u.Email), u.PasswordHash, u.RoleID, u.IsActive, nullInt64(u.CreatedByPartnerID),
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapWriteErr("insert user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dbErr("insert user", err)
	}
	u.ID = id
	return nil
}

// GetByID obtiene un usuario por ID (nil, nil si no existe).
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.one(ctx, "get user", "u.id = ?", id)
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.one(ctx, "get user by username", "u.username = ?", username)
}

// FindActiveByIdentifier busca un usuario activo cuyo username o email coincida.
func (r *UserRepo) FindActiveByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	return r.one(ctx, "find user", "(u.username = ? OR u.email = ?) AND u.is_active = 1 ORDER BY u.username = ? DESC LIMIT 1",
		identifier, identifier, identifier)
}

// UsernameTaken indica si otro usuario ya usa el username.
func (r *UserRepo) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ? AND id != ?`, username, excludeID).Scan(&n)
	if err != nil {
		return false, dbErr("check username", err)
	}
	return n > 0, nil
}

// EmailTaken indica si otro usuario ya usa el email.
func (r *UserRepo) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	if email == "" {
		return false, nil
	}
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`, email, excludeID).Scan(&n)
	if err != nil {
		return false, dbErr("check email", err)
	}
	return n > 0, nil
}

// List devuelve todos los usuarios, más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return r.many(ctx, "list users", " ORDER BY u.created_at DESC, u.id DESC")
}

// ListByRole devuelve los usuarios de un rol.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	return r.many(ctx, "list users by role", " WHERE r.name = ? ORDER BY u.username", role)
}

// Update persiste username, email, rol y estado.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET username = ?, email = ?, role_id = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		u.Username, nullString(u.Email), u.RoleID, u.IsActive, u.UpdatedAt.UTC(), u.ID,
	)
	if err != nil {
		return mapWriteErr("update user", err)
	}
	return requireAffected(res, "update user")
}

// UpdatePassword reemplaza el hash de la contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return dbErr("update password", err)
	}
	return requireAffected(res, "update password")
}

// SetActive activa o desactiva la cuenta.
func (r *UserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.q.ExecContext(ctx, `UPDATE users SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return dbErr("set user active", err)
	}
	return requireAffected(res, "set user active")
}

// Delete elimina el usuario; sus apps se eliminan en cascada.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapWriteErr("delete user", err)
	}
	return requireAffected(res, "delete user")
}

// Stats conteos de usuarios por estado y rol.
func (r *UserRepo) Stats(ctx context.Context) (*entity.UserStats, error) {
	st := &entity.UserStats{ByRole: map[string]int{}}
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(is_active), 0),
		       COALESCE(SUM(CASE WHEN created_by_partner_id IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM users`).Scan(&st.Total, &st.Active, &st.CreatedByPartner)
	if err != nil {
		return nil, dbErr("user stats", err)
	}
	st.Inactive = st.Total - st.Active

	rows, err := r.q.QueryContext(ctx, `
		SELECT r.name, COUNT(u.id) FROM roles r
		LEFT JOIN users u ON u.role_id = r.id
		GROUP BY r.name`)
	if err != nil {
		return nil, dbErr("user stats by role", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, dbErr("user stats by role", err)
		}
		st.ByRole[name] = n
	}
	st.Admins = st.ByRole[entity.RoleAdmin]
	return st, dbErr("user stats by role", rows.Err())
}

// RoleRepo implementación de RoleRepository.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// GetByName obtiene un rol por nombre (nil, nil si no existe).
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRowContext(ctx, `SELECT id, name, description FROM roles WHERE name = ?`, name).
		Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get role", err)
	}
	return &role, nil
}

// List devuelve los roles sembrados.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, description FROM roles ORDER BY id`)
	if err != nil {
		return nil, dbErr("list roles", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, dbErr("list roles", err)
		}
		list = append(list, &role)
	}
	return list, dbErr("list roles", rows.Err())
}
