package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bcs-blackbox/internal/application/crm"
	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/validation"
)

// ContactHandler contactos del partner, su conversión a cliente y las actividades.
type ContactHandler struct {
	uc *crm.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *crm.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contacto
// @Tags         partner-contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "Datos del contacto"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/partner/contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetPartnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// List godoc
// @Summary      Listar contactos
// @Tags         partner-contacts
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "active | inactive"
// @Param        validation  query  string  false  "all | validated | unvalidated | converted"
// @Param        industry    query  string  false  "Industria"
// @Param        q           query  string  false  "Búsqueda por nombre, empresa o email"
// @Success      200  {array}  dto.ContactResponse
// @Router       /api/partner/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	var q dto.ContactFilterQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(c.UserContext(), GetPartnerID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener contacto
// @Tags         partner-contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del contacto"
// @Success      200  {object}  dto.ContactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partner/contacts/{id} [get]
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), GetPartnerID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar contacto
// @Tags         partner-contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID del contacto"
// @Param        body  body  dto.ContactRequest  true  "Datos del contacto"
// @Success      200   {object}  dto.ContactResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partner/contacts/{id} [put]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetPartnerID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Activar o desactivar contacto
// @Tags         partner-contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del contacto"
// @Param        body  body  dto.StatusRequest  true  "active | inactive"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/partner/contacts/{id}/status [patch]
func (h *ContactHandler) SetStatus(c *fiber.Ctx) error {
	id, status, err := idAndStatus(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetStatus(c.UserContext(), GetPartnerID(c), id, status); err != nil {
		return respondError(c, err)
	}
	return message(c, "estado actualizado")
}

// Delete godoc
// @Summary      Eliminar contacto
// @Tags         partner-contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del contacto"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/partner/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetPartnerID(c), id); err != nil {
		return respondError(c, err)
	}
	return message(c, "contacto eliminado")
}

// SuggestUsername godoc
// @Summary      Usuario sugerido para la conversión
// @Tags         partner-contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del contacto"
// @Success      200  {object}  dto.UsernameSuggestionResponse
// @Router       /api/partner/contacts/{id}/username-suggestion [get]
func (h *ContactHandler) SuggestUsername(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SuggestUsername(c.UserContext(), GetPartnerID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Convert godoc
// @Summary      Convertir contacto validado en usuario cliente
// @Description  Crea el usuario (rol cliente) y marca el contacto como convertido en una sola transacción.
// @Tags         partner-contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del contacto"
// @Param        body  body  dto.ConvertContactRequest  true  "username, password, confirm_password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/partner/contacts/{id}/convert [post]
func (h *ContactHandler) Convert(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ConvertContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Convert(c.UserContext(), GetPartnerID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// CreateActivity godoc
// @Summary      Registrar actividad
// @Description  "Validación de Cliente" completada y con validation_success=true valida el contacto.
// @Tags         partner-activities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ActivityRequest  true  "Datos de la actividad"
// @Success      201   {object}  dto.ActivityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partner/activities [post]
func (h *ContactHandler) CreateActivity(c *fiber.Ctx) error {
	var in dto.ActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateActivity(c.UserContext(), GetPartnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// ListActivities godoc
// @Summary      Listar actividades
// @Tags         partner-activities
// @Security     Bearer
// @Produce      json
// @Param        pending  query  bool  false  "Solo pendientes"
// @Success      200  {array}  dto.ActivityResponse
// @Router       /api/partner/activities [get]
func (h *ContactHandler) ListActivities(c *fiber.Ctx) error {
	list, err := h.uc.ListActivities(c.UserContext(), GetPartnerID(c), c.QueryBool("pending"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// SetActivityCompleted godoc
// @Summary      Completar o reabrir actividad
// @Tags         partner-activities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID de la actividad"
// @Param        body  body  dto.ActivityCompletedRequest  true  "completed"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/partner/activities/{id}/completed [patch]
func (h *ContactHandler) SetActivityCompleted(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ActivityCompletedRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validation.Struct(in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetActivityCompleted(c.UserContext(), GetPartnerID(c), id, *in.Completed); err != nil {
		return respondError(c, err)
	}
	return message(c, "actividad actualizada")
}

// DeleteActivity godoc
// @Summary      Eliminar actividad
// @Tags         partner-activities
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la actividad"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/partner/activities/{id} [delete]
func (h *ContactHandler) DeleteActivity(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteActivity(c.UserContext(), GetPartnerID(c), id); err != nil {
		return respondError(c, err)
	}
	return message(c, "actividad eliminada")
}
