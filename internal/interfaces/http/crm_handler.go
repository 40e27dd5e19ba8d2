package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bcs-blackbox/internal/application/crm"
	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
)

// CRMHandler pipeline comercial del partner: leads, oportunidades y comisiones.
type CRMHandler struct {
	uc *crm.LeadUseCase
}

// NewCRMHandler construye el handler.
func NewCRMHandler(uc *crm.LeadUseCase) *CRMHandler {
	return &CRMHandler{uc: uc}
}

// CreateLead godoc
// @Summary      Crear lead
// @Tags         partner-leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LeadRequest  true  "Datos del lead"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/partner/leads [post]
func (h *CRMHandler) CreateLead(c *fiber.Ctx) error {
	var in dto.LeadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateLead(c.UserContext(), GetPartnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// ListLeads godoc
// @Summary      Listar leads
// @Tags         partner-leads
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "new | contacted | qualified | unqualified"
// @Param        source  query  string  false  "Origen"
// @Success      200  {array}  dto.LeadResponse
// @Router       /api/partner/leads [get]
func (h *CRMHandler) ListLeads(c *fiber.Ctx) error {
	var q dto.LeadFilterQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	list, err := h.uc.ListLeads(c.UserContext(), GetPartnerID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListLandingLeads godoc
// @Summary      Leads recibidos desde la landing
// @Tags         admin-landing
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "new | contacted | qualified | unqualified"
// @Success      200  {array}  dto.LeadResponse
// @Router       /api/admin/landing-leads [get]
func (h *CRMHandler) ListLandingLeads(c *fiber.Ctx) error {
	var q dto.LeadFilterQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	list, err := h.uc.ListLandingLeads(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetLead godoc
// @Summary      Obtener lead
// @Tags         partner-leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del lead"
// @Success      200  {object}  dto.LeadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partner/leads/{id} [get]
func (h *CRMHandler) GetLead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetLead(c.UserContext(), GetPartnerID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateLead godoc
// @Summary      Editar lead
// @Tags         partner-leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID del lead"
// @Param        body  body  dto.LeadRequest  true  "Datos del lead"
// @Success      200   {object}  dto.LeadResponse
// @Router       /api/partner/leads/{id} [put]
func (h *CRMHandler) UpdateLead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.LeadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateLead(c.UserContext(), GetPartnerID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateLeadStatus godoc
// @Summary      Cambiar estado del lead
// @Tags         partner-leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del lead"
// @Param        body  body  dto.StatusRequest  true  "new | contacted | qualified | unqualified"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/partner/leads/{id}/status [patch]
func (h *CRMHandler) UpdateLeadStatus(c *fiber.Ctx) error {
	id, status, err := idAndStatus(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.UpdateLeadStatus(c.UserContext(), GetPartnerID(c), id, status); err != nil {
		return respondError(c, err)
	}
	return message(c, "estado actualizado")
}

// DeleteLead godoc
// @Summary      Eliminar lead (y sus oportunidades y actividades)
// @Tags         partner-leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del lead"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/partner/leads/{id} [delete]
func (h *CRMHandler) DeleteLead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteLead(c.UserContext(), GetPartnerID(c), id); err != nil {
		return respondError(c, err)
	}
	return message(c, "lead eliminado")
}

// CreateOpportunity godoc
// @Summary      Crear oportunidad
// @Description  El lead debe estar contactado o calificado.
// @Tags         partner-opportunities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpportunityRequest  true  "Datos de la oportunidad"
// @Success      201   {object}  dto.OpportunityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/partner/opportunities [post]
func (h *CRMHandler) CreateOpportunity(c *fiber.Ctx) error {
	var in dto.OpportunityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateOpportunity(c.UserContext(), GetPartnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// ListOpportunities godoc
// @Summary      Listar oportunidades
// @Tags         partner-opportunities
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OpportunityResponse
// @Router       /api/partner/opportunities [get]
func (h *CRMHandler) ListOpportunities(c *fiber.Ctx) error {
	list, err := h.uc.ListOpportunities(c.UserContext(), GetPartnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetOpportunity godoc
// @Summary      Obtener oportunidad
// @Tags         partner-opportunities
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la oportunidad"
// @Success      200  {object}  dto.OpportunityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partner/opportunities/{id} [get]
func (h *CRMHandler) GetOpportunity(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetOpportunity(c.UserContext(), GetPartnerID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateOpportunity godoc
// @Summary      Editar oportunidad
// @Tags         partner-opportunities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la oportunidad"
// @Param        body  body  dto.OpportunityRequest  true  "Datos de la oportunidad"
// @Success      200   {object}  dto.OpportunityResponse
// @Router       /api/partner/opportunities/{id} [put]
func (h *CRMHandler) UpdateOpportunity(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.OpportunityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateOpportunity(c.UserContext(), GetPartnerID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteOpportunity godoc
// @Summary      Eliminar oportunidad
// @Tags         partner-opportunities
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la oportunidad"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/partner/opportunities/{id} [delete]
func (h *CRMHandler) DeleteOpportunity(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteOpportunity(c.UserContext(), GetPartnerID(c), id); err != nil {
		return respondError(c, err)
	}
	return message(c, "oportunidad eliminada")
}

// CreateCommission godoc
// @Summary      Registrar comisión
// @Description  Tasa por defecto 50%; monto = valor mensual x tasa.
// @Tags         partner-commissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommissionRequest  true  "Datos de la comisión"
// @Success      201   {object}  dto.CommissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/partner/commissions [post]
func (h *CRMHandler) CreateCommission(c *fiber.Ctx) error {
	var in dto.CommissionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCommission(c.UserContext(), GetPartnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// ListCommissions godoc
// @Summary      Listar comisiones
// @Tags         partner-commissions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CommissionResponse
// @Router       /api/partner/commissions [get]
func (h *CRMHandler) ListCommissions(c *fiber.Ctx) error {
	list, err := h.uc.ListCommissions(c.UserContext(), GetPartnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// SetCommissionStatus godoc
// @Summary      Cambiar estado de una comisión
// @Tags         partner-commissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID de la comisión"
// @Param        body  body  dto.CommissionStatusRequest  true  "active | inactive | paid"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/partner/commissions/{id}/status [patch]
func (h *CRMHandler) SetCommissionStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CommissionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetCommissionStatus(c.UserContext(), GetPartnerID(c), id, in); err != nil {
		return respondError(c, err)
	}
	return message(c, "estado actualizado")
}
