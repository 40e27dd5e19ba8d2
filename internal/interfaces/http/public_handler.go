package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/application/landing"
)

// PublicHandler formularios de la landing (sin autenticación).
type PublicHandler struct {
	uc *landing.UseCase
}

// NewPublicHandler construye el handler.
func NewPublicHandler(uc *landing.UseCase) *PublicHandler {
	return &PublicHandler{uc: uc}
}

// SubmitLead godoc
// @Summary      Formulario de contacto de la landing
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LandingLeadRequest  true  "nombre, email, empresa, sector, mensaje"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/public/leads [post]
func (h *PublicHandler) SubmitLead(c *fiber.Ctx) error {
	var in dto.LandingLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SubmitLead(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// RegisterPartner godoc
// @Summary      Solicitud para ser partner
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartnerRegistrationRequest  true  "Datos del solicitante"
// @Success      201   {object}  dto.PartnerRegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/public/partner-registrations [post]
func (h *PublicHandler) RegisterPartner(c *fiber.Ctx) error {
	var in dto.PartnerRegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterPartner(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}
