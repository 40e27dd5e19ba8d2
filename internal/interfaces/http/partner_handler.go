package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/usecase"
)

// PartnerHandler gestión de partners y de solicitudes de alta (admin).
type PartnerHandler struct {
	uc *usecase.PartnerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *usecase.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear partner
// @Description  Con username y password crea también la cuenta de acceso en la misma transacción.
// @Tags         admin-partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartnerRequest  true  "Datos del partner"
// @Success      201   {object}  dto.PartnerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/partners [post]
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// List godoc
// @Summary      Listar partners
// @Tags         admin-partners
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PartnerResponse
// @Router       /api/admin/partners [get]
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener partner
// @Tags         admin-partners
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del partner"
// @Success      200  {object}  dto.PartnerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/partners/{id} [get]
func (h *PartnerHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar partner
// @Description  Sincroniza la cuenta vinculada; si no existe y llegan username y password la crea.
// @Tags         admin-partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del partner"
// @Param        body  body  dto.UpdatePartnerRequest  true  "Datos del partner"
// @Success      200   {object}  dto.PartnerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/partners/{id} [put]
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar estado del partner
// @Tags         admin-partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del partner"
// @Param        body  body  dto.StatusRequest  true  "active | inactive"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/admin/partners/{id}/status [patch]
func (h *PartnerHandler) SetStatus(c *fiber.Ctx) error {
	id, status, err := idAndStatus(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetStatus(c.UserContext(), id, status); err != nil {
		return respondError(c, err)
	}
	return message(c, "estado actualizado")
}

// CreateAccount godoc
// @Summary      Crear cuenta de acceso del partner
// @Tags         admin-partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del partner"
// @Param        body  body  dto.CreateAccountRequest  true  "username (opcional, por defecto el email) y password"
// @Success      201   {object}  dto.PartnerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/partners/{id}/account [post]
func (h *PartnerHandler) CreateAccount(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateAccount(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// Delete godoc
// @Summary      Eliminar partner y su cuenta
// @Tags         admin-partners
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del partner"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/partners/{id} [delete]
func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return message(c, "partner eliminado")
}

// Stats godoc
// @Summary      Estadísticas de partners
// @Tags         admin-partners
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PartnerStatsResponse
// @Router       /api/admin/partners/stats [get]
func (h *PartnerHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListRegistrations godoc
// @Summary      Solicitudes de alta de partners
// @Tags         admin-registrations
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected"
// @Success      200  {array}  dto.PartnerRegistrationResponse
// @Router       /api/admin/registrations [get]
func (h *PartnerHandler) ListRegistrations(c *fiber.Ctx) error {
	list, err := h.uc.ListRegistrations(c.UserContext(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ApproveRegistration godoc
// @Summary      Aprobar solicitud (crea el partner)
// @Tags         admin-registrations
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la solicitud"
// @Success      201  {object}  dto.PartnerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/registrations/{id}/approve [post]
func (h *PartnerHandler) ApproveRegistration(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ApproveRegistration(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// RejectRegistration godoc
// @Summary      Rechazar solicitud
// @Tags         admin-registrations
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/admin/registrations/{id}/reject [post]
func (h *PartnerHandler) RejectRegistration(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RejectRegistration(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return message(c, "solicitud rechazada")
}
