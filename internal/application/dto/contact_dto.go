package dto

import "time"

// ContactRequest alta o edición de contacto.
type ContactRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	Company  string `json:"company" validate:"omitempty,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=40"`
	Position string `json:"position" validate:"omitempty,max=100"`
	Industry string `json:"industry" validate:"omitempty,max=100"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
	Notes    string `json:"notes"`
}

// ContactFilterQuery filtros del listado (query string).
type ContactFilterQuery struct {
	Status     string `query:"status" validate:"omitempty,oneof=active inactive"`
	Validation string `query:"validation" validate:"omitempty,oneof=all validated unvalidated converted"`
	Industry   string `query:"industry"`
	Search     string `query:"q"`
}

// ContactResponse salida de un contacto con su etapa.
type ContactResponse struct {
	ID              int64      `json:"id"`
	PartnerID       int64      `json:"partner_id"`
	Name            string     `json:"name"`
	Company         string     `json:"company,omitempty"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Position        string     `json:"position,omitempty"`
	Industry        string     `json:"industry,omitempty"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	State           string     `json:"state"`
	Validated       bool       `json:"validated"`
	ValidationDate  *time.Time `json:"validation_date,omitempty"`
	ConvertedToUser bool       `json:"converted_to_user"`
	ConvertedUserID *int64     `json:"converted_user_id,omitempty"`
	ConversionDate  *time.Time `json:"conversion_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ConvertContactRequest conversión de un contacto validado en usuario cliente.
type ConvertContactRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// UsernameSuggestionResponse usuario sugerido para convertir un contacto.
type UsernameSuggestionResponse struct {
	Username string `json:"username"`
}

// ActivityRequest registro de actividad; ValidationSuccess solo aplica a "Validación de Cliente".
type ActivityRequest struct {
	ContactID         *int64 `json:"contact_id"`
	Type              string `json:"activity_type" validate:"required,max=60"`
	Subject           string `json:"subject" validate:"required,max=200"`
	Description       string `json:"description"`
	ActivityDate      string `json:"activity_date" validate:"omitempty,datetime=2006-01-02"`
	FollowUpDate      string `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
	Completed         bool   `json:"completed"`
	ValidationSuccess bool   `json:"validation_success"`
}

// ActivityResponse salida de una actividad.
type ActivityResponse struct {
	ID                int64      `json:"id"`
	ContactID         *int64     `json:"contact_id,omitempty"`
	ContactName       string     `json:"contact_name,omitempty"`
	LeadID            *int64     `json:"lead_id,omitempty"`
	OpportunityID     *int64     `json:"opportunity_id,omitempty"`
	Type              string     `json:"activity_type"`
	Subject           string     `json:"subject"`
	Description       string     `json:"description,omitempty"`
	ActivityDate      time.Time  `json:"activity_date"`
	FollowUpDate      *time.Time `json:"follow_up_date,omitempty"`
	Completed         bool       `json:"completed"`
	ValidationSuccess bool       `json:"validation_success"`
	ContactValidated  bool       `json:"contact_validated,omitempty"`
}

// ActivityCompletedRequest marca una actividad como completada o pendiente.
type ActivityCompletedRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}
