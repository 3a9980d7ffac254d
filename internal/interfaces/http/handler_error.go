package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/pkg/logger"
)

// internalError responde un 500 genérico y loguea el detalle del error: los
// nombres de operaciones de storage envueltos en el error nunca viajan al
// cliente.
func internalError(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no mapeado en handler")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno del servidor",
	})
}
