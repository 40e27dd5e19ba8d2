package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusRequest cambio de estado genérico (active/inactive/trial/development...).
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ActiveRequest activar o desactivar un registro.
type ActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// DateLayout formato de fechas (sin hora) aceptado en las entradas.
const DateLayout = "2006-01-02"
