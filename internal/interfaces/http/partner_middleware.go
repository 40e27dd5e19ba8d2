package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
)

// partnerChecker es el contrato mínimo del middleware; lo implementa *usecase.PartnerUseCase.
type partnerChecker interface {
	IsActive(ctx context.Context, partnerID int64) (bool, error)
}

// RequireActivePartner verifica que la sesión esté vinculada a un partner activo.
// Debe usarse DESPUÉS de AuthMiddleware y RequireRole("partner").
//
// Comportamiento:
//   - 403 PARTNER_REQUIRED si el token no trae partner_id.
//   - 403 PARTNER_INACTIVE si el partner fue desactivado después de emitir el token.
//   - 503 PARTNER_CHECK_FAILED si falla la consulta.
func RequireActivePartner(checker partnerChecker, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		partnerID := GetPartnerID(c)
		if partnerID <= 0 {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PARTNER_REQUIRED",
				Message: "la cuenta no está vinculada a un partner",
			})
		}

		active, err := checker.IsActive(c.UserContext(), partnerID)
		if err != nil {
			log.Error().Err(err).Int64("partner_id", partnerID).Msg("verificación de partner")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PARTNER_CHECK_FAILED",
				Message: "no se pudo verificar el partner, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PARTNER_INACTIVE",
				Message: "el partner está inactivo",
			})
		}

		return c.Next()
	}
}
