package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/application/usecase"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/pkg/logger"
)

// QuoteHandler maneja las plantillas de presupuesto y su PDF.
type QuoteHandler struct {
	uc  *usecase.QuoteUseCase
	log *logger.Logger
}

// NewQuoteHandler construye el handler de presupuestos.
func NewQuoteHandler(uc *usecase.QuoteUseCase, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar plantillas activas de presupuesto
// @Tags         presupuestos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.QuoteTemplateResponse
// @Router       /api/presupuestos [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive()
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener una plantilla
// @Tags         presupuestos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "id de la plantilla"
// @Success      200  {object}  dto.QuoteTemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/presupuestos/{id} [get]
func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	out, err := h.uc.Get(id)
	if err != nil {
		return quoteError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear plantilla de presupuesto (solo owner)
// @Tags         presupuestos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SaveQuoteTemplateRequest  true  "modelo, marca y condiciones"
// @Success      201   {object}  dto.QuoteTemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/presupuestos [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveQuoteTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetActor(c), in)
	if err != nil {
		return quoteError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar plantilla (solo owner)
// @Tags         presupuestos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                           true  "id de la plantilla"
// @Param        body  body  dto.SaveQuoteTemplateRequest  true  "campos de la plantilla"
// @Success      200   {object}  dto.QuoteTemplateResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/presupuestos/{id} [put]
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	var in dto.SaveQuoteTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetActor(c), id, in)
	if err != nil {
		return quoteError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar plantilla (solo owner, borrado lógico)
// @Tags         presupuestos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "id de la plantilla"
// @Success      200  {object}  dto.OkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/presupuestos/{id} [delete]
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	if err := h.uc.Delete(id); err != nil {
		return quoteError(c, h.log, err)
	}
	return c.JSON(dto.OkResponse{Ok: true, Message: "plantilla eliminada"})
}

// GeneratePDF godoc
// @Summary      Generar el PDF del presupuesto para un cliente
// @Tags         presupuestos
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id    path  int                  true  "id de la plantilla"
// @Param        body  body  dto.QuotePDFRequest  true  "cliente, telefono, email"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/presupuestos/{id}/pdf [post]
func (h *QuoteHandler) GeneratePDF(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
	}
	var in dto.QuotePDFRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pdfBytes, err := h.uc.GeneratePDF(c.UserContext(), id, in)
	if err != nil {
		return quoteError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="presupuesto-%d.pdf"`, id))
	return c.Send(pdfBytes)
}

// quoteError mapea los errores de dominio de presupuestos a HTTP.
func quoteError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TEMPLATE_NOT_FOUND", Message: "la plantilla no existe"})
	default:
		return internalError(c, log, err)
	}
}
