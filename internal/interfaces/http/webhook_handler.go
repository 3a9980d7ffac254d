package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/application/usecase"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/pkg/logger"
)

// WebhookHandler recibe leads desde integraciones externas (Meta vía Zapier).
// El endpoint es público: el lead se atribuye al usuario sistema configurado.
type WebhookHandler struct {
	uc           *usecase.LeadUseCase
	systemUserID int64
	log          *logger.Logger
}

// NewWebhookHandler construye el handler del webhook de captación.
func NewWebhookHandler(uc *usecase.LeadUseCase, systemUserID int64, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{uc: uc, systemUserID: systemUserID, log: log}
}

// ReceiveLead godoc
// @Summary      Recibir lead desde Meta/Zapier
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WebhookLeadRequest  true  "payload con alias de Meta"
// @Success      201   {object}  dto.WebhookLeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/webhook/zapier/meta-lead [post]
func (h *WebhookHandler) ReceiveLead(c *fiber.Ctx) error {
	var in dto.WebhookLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lead, err := h.uc.CreateFromWebhook(c.UserContext(), h.systemUserID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.WebhookLeadResponse{
		Success:    true,
		Message:    "lead recibido",
		EventID:    uuid.NewString(),
		Lead:       *lead,
		LeadID:     lead.ID,
		AssignedTo: lead.VendedorNombre,
	})
}

// Ping godoc
// @Summary      Verificar disponibilidad del webhook
// @Tags         webhook
// @Produce      json
// @Success      200  {object}  dto.WebhookPingResponse
// @Router       /api/webhook/zapier/test [get]
func (h *WebhookHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(dto.WebhookPingResponse{
		Success:   true,
		Message:   "webhook operativo",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
