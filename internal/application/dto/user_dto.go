package dto

import "time"

// LoginRequest entrada para login: identificador = username o email.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// SessionResponse identidad autenticada.
type SessionResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Email     string `json:"email,omitempty"`
	PartnerID *int64 `json:"partner_id,omitempty"`
}

// LoginResponse salida con token JWT y sesión.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expires_in"` // segundos
	User      SessionResponse `json:"user"`
}

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin partner cliente"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUserRequest entrada para editar un usuario; Password vacío = sin cambio.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"required,oneof=admin partner cliente"`
	IsActive *bool  `json:"is_active"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                   int64     `json:"id"`
	Username             string    `json:"username"`
	Email                string    `json:"email,omitempty"`
	Role                 string    `json:"role"`
	IsActive             bool      `json:"is_active"`
	CreatedByPartnerID   *int64    `json:"created_by_partner_id,omitempty"`
	CreatedByPartnerName string    `json:"created_by_partner,omitempty"`
	PartnerID            *int64    `json:"partner_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// UserStatsResponse conteos de usuarios.
type UserStatsResponse struct {
	Total            int            `json:"total"`
	Active           int            `json:"active"`
	Inactive         int            `json:"inactive"`
	Admins           int            `json:"admins"`
	CreatedByPartner int            `json:"created_by_partner"`
	ByRole           map[string]int `json:"by_role"`
}
