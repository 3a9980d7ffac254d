package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/application/usecase"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/pkg/logger"
)

// LeadHandler maneja el CRUD de leads y su historial de estados.
type LeadHandler struct {
	uc  *usecase.LeadUseCase
	log *logger.Logger
}

// NewLeadHandler construye el handler de leads.
func NewLeadHandler(uc *usecase.LeadUseCase, log *logger.Logger) *LeadHandler {
	return &LeadHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar leads visibles para el actor
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.LeadResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetActor(c))
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener un lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "id del lead"
// @Success      200  {object}  dto.LeadResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	out, err := h.uc.Get(GetActor(c), id)
	if err != nil {
		return leadError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear lead (asignación automática si no trae vendedor)
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateLeadRequest  true  "nombre, telefono, modelo"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return leadError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar lead (cambio de estado genera historial)
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                    true  "id del lead"
// @Param        body  body  dto.UpdateLeadRequest  true  "campos del lead"
// @Success      200   {object}  dto.LeadResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	var in dto.UpdateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return leadError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar lead con su historial (solo owner)
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "id del lead"
// @Success      200  {object}  dto.OkResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return leadError(c, h.log, err)
	}
	return c.JSON(dto.OkResponse{Ok: true, Message: "lead eliminado"})
}

// History godoc
// @Summary      Historial de estados de un lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "id del lead"
// @Success      200  {array}   dto.LeadHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/historial [get]
func (h *LeadHandler) History(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	out, err := h.uc.History(GetActor(c), id)
	if err != nil {
		return leadError(c, h.log, err)
	}
	return c.JSON(out)
}

// leadError mapea los errores de dominio de leads a HTTP.
func leadError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "fuera del alcance del actor"})
	case errors.Is(err, domain.ErrLeadNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LEAD_NOT_FOUND", Message: "el lead no existe"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el vendedor no existe"})
	default:
		return internalError(c, log, err)
	}
}
