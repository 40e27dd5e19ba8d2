package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/usecase"
	"github.com/jhoicas/bcs-blackbox/internal/application/validation"
)

// SubBCSHandler apps asignadas a clientes y registros Sub-BCS de partners.
// Las rutas de apps y partner-sub-bcs se montan en /api/admin y /api/partner; el alcance lo decide el actor.
type SubBCSHandler struct {
	uc *usecase.SubBCSUseCase
}

// NewSubBCSHandler construye el handler.
func NewSubBCSHandler(uc *usecase.SubBCSUseCase) *SubBCSHandler {
	return &SubBCSHandler{uc: uc}
}

// AssignApp godoc
// @Summary      Asignar app a un cliente
// @Description  Un partner solo puede asignar apps a clientes que él mismo creó.
// @Tags         apps
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignAppRequest  true  "Datos de la app"
// @Success      201   {object}  dto.AppResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/apps [post]
// @Router       /api/partner/apps [post]
func (h *SubBCSHandler) AssignApp(c *fiber.Ctx) error {
	var in dto.AssignAppRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AssignApp(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// ListApps godoc
// @Summary      Listar apps asignadas
// @Tags         apps
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AppResponse
// @Router       /api/admin/apps [get]
// @Router       /api/partner/apps [get]
func (h *SubBCSHandler) ListApps(c *fiber.Ctx) error {
	list, err := h.uc.ListApps(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// SetAppStatus godoc
// @Summary      Cambiar estado de una app
// @Tags         apps
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID de la app"
// @Param        body  body  dto.StatusRequest  true  "active | inactive"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/apps/{id}/status [patch]
// @Router       /api/partner/apps/{id}/status [patch]
func (h *SubBCSHandler) SetAppStatus(c *fiber.Ctx) error {
	id, status, err := idAndStatus(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetAppStatus(c.UserContext(), actorFrom(c), id, status); err != nil {
		return respondError(c, err)
	}
	return message(c, "estado actualizado")
}

// DeleteApp godoc
// @Summary      Eliminar app asignada
// @Tags         apps
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la app"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/apps/{id} [delete]
// @Router       /api/partner/apps/{id} [delete]
func (h *SubBCSHandler) DeleteApp(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteApp(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return message(c, "app eliminada")
}

// MyApps godoc
// @Summary      Apps del cliente autenticado
// @Tags         client
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AppResponse
// @Router       /api/client/apps [get]
func (h *SubBCSHandler) MyApps(c *fiber.Ctx) error {
	list, err := h.uc.ListUserApps(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// RecordAccess godoc
// @Summary      Registrar apertura de una app
// @Description  Suma 1 a access_count y fija last_accessed en cada llamada, sin deduplicar.
// @Tags         client
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la app"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/client/apps/{id}/access [post]
func (h *SubBCSHandler) RecordAccess(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RecordAccess(c.UserContext(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return message(c, "acceso registrado")
}

// CreateClientSubBCS godoc
// @Summary      Registrar Sub-BCS de un cliente
// @Tags         partner-client-sub-bcs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientSubBCSRequest  true  "Datos del Sub-BCS"
// @Success      201   {object}  dto.ClientSubBCSResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/partner/client-sub-bcs [post]
func (h *SubBCSHandler) CreateClientSubBCS(c *fiber.Ctx) error {
	var in dto.ClientSubBCSRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateClientSubBCS(c.UserContext(), GetPartnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// ListClientSubBCS godoc
// @Summary      Sub-BCS de clientes del partner
// @Tags         partner-client-sub-bcs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClientSubBCSResponse
// @Router       /api/partner/client-sub-bcs [get]
func (h *SubBCSHandler) ListClientSubBCS(c *fiber.Ctx) error {
	list, err := h.uc.ListClientSubBCS(c.UserContext(), GetPartnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// SetClientSubBCSStatus godoc
// @Summary      Cambiar estado de un Sub-BCS de cliente
// @Tags         partner-client-sub-bcs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID"
// @Param        body  body  dto.StatusRequest  true  "active | inactive | trial"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/partner/client-sub-bcs/{id}/status [patch]
func (h *SubBCSHandler) SetClientSubBCSStatus(c *fiber.Ctx) error {
	id, status, err := idAndStatus(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetClientSubBCSStatus(c.UserContext(), GetPartnerID(c), id, status); err != nil {
		return respondError(c, err)
	}
	return message(c, "estado actualizado")
}

// DeleteClientSubBCS godoc
// @Summary      Eliminar Sub-BCS de cliente
// @Tags         partner-client-sub-bcs
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/partner/client-sub-bcs/{id} [delete]
func (h *SubBCSHandler) DeleteClientSubBCS(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteClientSubBCS(c.UserContext(), GetPartnerID(c), id); err != nil {
		return respondError(c, err)
	}
	return message(c, "Sub-BCS eliminado")
}

// CreatePartnerSubBCS godoc
// @Summary      Crear Sub-BCS de partner
// @Description  El admin indica partner_id y descripción; el partner lo crea para sí mismo.
// @Tags         partner-sub-bcs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartnerSubBCSRequest  true  "Datos del Sub-BCS"
// @Success      201   {object}  dto.PartnerSubBCSResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/partner-sub-bcs [post]
// @Router       /api/partner/partner-sub-bcs [post]
func (h *SubBCSHandler) CreatePartnerSubBCS(c *fiber.Ctx) error {
	var in dto.PartnerSubBCSRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreatePartnerSubBCS(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// ListPartnerSubBCS godoc
// @Summary      Listar Sub-BCS de partners
// @Tags         partner-sub-bcs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PartnerSubBCSResponse
// @Router       /api/admin/partner-sub-bcs [get]
// @Router       /api/partner/partner-sub-bcs [get]
func (h *SubBCSHandler) ListPartnerSubBCS(c *fiber.Ctx) error {
	list, err := h.uc.ListPartnerSubBCS(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// SetPartnerSubBCSStatus godoc
// @Summary      Cambiar estado de un Sub-BCS de partner
// @Tags         partner-sub-bcs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID"
// @Param        body  body  dto.StatusRequest  true  "active | inactive | development"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/admin/partner-sub-bcs/{id}/status [patch]
// @Router       /api/partner/partner-sub-bcs/{id}/status [patch]
func (h *SubBCSHandler) SetPartnerSubBCSStatus(c *fiber.Ctx) error {
	id, status, err := idAndStatus(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetPartnerSubBCSStatus(c.UserContext(), actorFrom(c), id, status); err != nil {
		return respondError(c, err)
	}
	return message(c, "estado actualizado")
}

// DeletePartnerSubBCS godoc
// @Summary      Eliminar Sub-BCS de partner
// @Tags         partner-sub-bcs
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/admin/partner-sub-bcs/{id} [delete]
// @Router       /api/partner/partner-sub-bcs/{id} [delete]
func (h *SubBCSHandler) DeletePartnerSubBCS(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeletePartnerSubBCS(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return message(c, "Sub-BCS eliminado")
}

// idAndStatus lee :id y el cuerpo {status}.
func idAndStatus(c *fiber.Ctx) (int64, string, error) {
	id, err := paramID(c, "id")
	if err != nil {
		return 0, "", err
	}
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return 0, "", errInvalidBody
	}
	if err := validation.Struct(in); err != nil {
		return 0, "", err
	}
	return id, in.Status, nil
}
