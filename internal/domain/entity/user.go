package entity

import "time"

// Roles sembrados al arrancar.
const (
	RoleAdmin   = "admin"
	RolePartner = "partner"
	RoleCliente = "cliente"
)

// ReservedAdminUsername cuenta administradora que nunca se puede eliminar.
const ReservedAdminUsername = "admin"

// Role rol del sistema.
type Role struct {
	ID          int64
	Name        string
	Description string
}

// User cuenta de acceso a la plataforma.
type User struct {
	ID                 int64
	Username           string
	Email              string // vacío = sin email (NULL en la base)
	PasswordHash       string
	RoleID             int64
	RoleName           string
	IsActive           bool
	CreatedByPartnerID *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Solo lectura (joins)
	CreatedByPartnerName string
	PartnerID            *int64 // partner vinculado a la cuenta, si el rol es partner
}

// IsProtected indica si la cuenta es la administradora reservada.
func (u *User) IsProtected() bool {
	return u.Username == ReservedAdminUsername
}

// UserStats conteos para el panel de administración.
type UserStats struct {
	Total            int
	Active           int
	Inactive         int
	Admins           int
	CreatedByPartner int
	ByRole           map[string]int
}
