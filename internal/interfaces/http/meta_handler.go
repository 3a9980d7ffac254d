package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/application/usecase"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/pkg/logger"
)

// MetaHandler maneja los objetivos mensuales de venta.
type MetaHandler struct {
	uc  *usecase.MetaUseCase
	log *logger.Logger
}

// NewMetaHandler construye el handler de metas.
func NewMetaHandler(uc *usecase.MetaUseCase, log *logger.Logger) *MetaHandler {
	return &MetaHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar metas de los vendedores visibles para el actor
// @Tags         metas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.MetaResponse
// @Router       /api/metas [get]
func (h *MetaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetActor(c))
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o sobreescribir la meta de un vendedor para un mes
// @Tags         metas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpsertMetaRequest  true  "vendedor_id, mes, meta_ventas, meta_leads"
// @Success      200   {object}  dto.MetaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/metas [post]
func (h *MetaHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertMetaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Upsert(GetActor(c), in)
	if err != nil {
		return metaError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar los valores de una meta existente
// @Tags         metas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                    true  "id de la meta"
// @Param        body  body  dto.UpdateMetaRequest  true  "meta_ventas, meta_leads"
// @Success      200   {object}  dto.MetaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/metas/{id} [put]
func (h *MetaHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	var in dto.UpdateMetaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetActor(c), id, in)
	if err != nil {
		return metaError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una meta
// @Tags         metas
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "id de la meta"
// @Success      200  {object}  dto.OkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/metas/{id} [delete]
func (h *MetaHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	if err := h.uc.Delete(GetActor(c), id); err != nil {
		return metaError(c, h.log, err)
	}
	return c.JSON(dto.OkResponse{Ok: true, Message: "meta eliminada"})
}

// metaError mapea los errores de dominio de metas a HTTP.
func metaError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "fuera del alcance del actor"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el vendedor no existe"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "META_NOT_FOUND", Message: "la meta no existe"})
	default:
		return internalError(c, log, err)
	}
}
