package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	appanalytics "github.com/jhoicas/bcs-blackbox/internal/application/analytics"
	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler paneles de cada rol y descargas (xlsx, PDF).
// Los números se recalculan en cada petición.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	export *appanalytics.ExportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, export *appanalytics.ExportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, export: export}
}

// Admin godoc
// @Summary      Panel del administrador
// @Tags         admin-dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminDashboardResponse
// @Router       /api/admin/dashboard [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	out, err := h.uc.Admin(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Partner godoc
// @Summary      Panel del partner
// @Tags         partner-dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PartnerDashboardResponse
// @Router       /api/partner/dashboard [get]
func (h *DashboardHandler) Partner(c *fiber.Ctx) error {
	out, err := h.uc.Partner(c.UserContext(), GetPartnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CRM godoc
// @Summary      Panel CRM del partner (pipeline y leads)
// @Tags         partner-dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CRMDashboardResponse
// @Router       /api/partner/crm/dashboard [get]
func (h *DashboardHandler) CRM(c *fiber.Ctx) error {
	out, err := h.uc.CRM(c.UserContext(), GetPartnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Commissions godoc
// @Summary      Panel de comisiones
// @Tags         partner-commissions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CommissionDashboardResponse
// @Router       /api/partner/commissions/dashboard [get]
func (h *DashboardHandler) Commissions(c *fiber.Ctx) error {
	out, err := h.uc.Commissions(c.UserContext(), GetPartnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Client godoc
// @Summary      Panel del cliente
// @Tags         client
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClientDashboardResponse
// @Router       /api/client/dashboard [get]
func (h *DashboardHandler) Client(c *fiber.Ctx) error {
	out, err := h.uc.Client(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportContacts godoc
// @Summary      Exportar contactos (xlsx)
// @Tags         partner-contacts
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status      query  string  false  "active | inactive"
// @Param        validation  query  string  false  "all | validated | unvalidated | converted"
// @Success      200
// @Router       /api/partner/contacts/export [get]
func (h *DashboardHandler) ExportContacts(c *fiber.Ctx) error {
	var q dto.ContactFilterQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	data, err := h.export.Contacts(c.UserContext(), GetPartnerID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimeXLSX, datedName("contactos", "xlsx"), data)
}

// ExportLeads godoc
// @Summary      Exportar leads (xlsx)
// @Tags         partner-leads
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status  query  string  false  "new | contacted | qualified | unqualified"
// @Success      200
// @Router       /api/partner/leads/export [get]
func (h *DashboardHandler) ExportLeads(c *fiber.Ctx) error {
	var q dto.LeadFilterQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	data, err := h.export.Leads(c.UserContext(), GetPartnerID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimeXLSX, datedName("leads", "xlsx"), data)
}

// CommissionStatement godoc
// @Summary      Estado de comisiones del mes (PDF)
// @Tags         partner-commissions
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/partner/commissions/statement.pdf [get]
func (h *DashboardHandler) CommissionStatement(c *fiber.Ctx) error {
	data, filename, err := h.export.CommissionStatement(c.UserContext(), GetPartnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, "application/pdf", filename, data)
}

func sendFile(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}

func datedName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", prefix, time.Now().UTC().Format("20060102"), uuid.NewString()[:8], ext)
}
