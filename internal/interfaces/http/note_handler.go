package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/application/usecase"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/pkg/logger"
)

// NoteHandler maneja las notas internas sobre leads.
type NoteHandler struct {
	uc  *usecase.NoteUseCase
	log *logger.Logger
}

// NewNoteHandler construye el handler de notas internas.
func NewNoteHandler(uc *usecase.NoteUseCase, log *logger.Logger) *NoteHandler {
	return &NoteHandler{uc: uc, log: log}
}

// ListByLead godoc
// @Summary      Listar notas internas de un lead
// @Tags         notas
// @Produce      json
// @Security     BearerAuth
// @Param        leadId  path  int  true  "id del lead"
// @Success      200  {array}  dto.NoteResponse
// @Router       /api/notas/lead/{leadId} [get]
func (h *NoteHandler) ListByLead(c *fiber.Ctx) error {
	leadID, err := strconv.ParseInt(c.Params("leadId"), 10, 64)
	if err != nil || leadID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de lead inválido"})
	}
	out, err := h.uc.ListByLead(leadID)
	if err != nil {
		return noteError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear nota interna atribuida al actor
// @Tags         notas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateNoteRequest  true  "lead_id, texto"
// @Success      201   {object}  dto.NoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notas [post]
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetActor(c), in)
	if err != nil {
		return noteError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar nota (autor o jerarquía gerencial)
// @Tags         notas
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "id de la nota"
// @Success      200  {object}  dto.OkResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/notas/{id} [delete]
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	if err := h.uc.Delete(GetActor(c), id); err != nil {
		return noteError(c, h.log, err)
	}
	return c.JSON(dto.OkResponse{Ok: true, Message: "nota eliminada"})
}

// noteError mapea los errores de dominio de notas a HTTP.
func noteError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el autor o un superior puede eliminar la nota"})
	case errors.Is(err, domain.ErrLeadNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LEAD_NOT_FOUND", Message: "el lead no existe"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOTE_NOT_FOUND", Message: "la nota no existe"})
	default:
		return internalError(c, log, err)
	}
}
