package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alluma/crm-api/internal/application/auth"
	"github.com/alluma/crm-api/internal/application/usecase"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	LeadUC          *usecase.LeadUseCase
	MetaUC          *usecase.MetaUseCase
	QuoteUC         *usecase.QuoteUseCase
	NoteUC          *usecase.NoteUseCase
	JWTSecret       string
	WebhookSystemID int64
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/verify", AuthMiddleware(deps.JWTSecret), authHandler.Verify)

	// Webhook de captación (público: lo llama Zapier, no un usuario)
	webhookHandler := NewWebhookHandler(deps.LeadUC, deps.WebhookSystemID, deps.Log)
	api.Post("/webhook/zapier/meta-lead", webhookHandler.ReceiveLead)
	api.Get("/webhook/zapier/test", webhookHandler.Ping)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios: lectura para todos (filtrada por alcance), escritura para la
	// línea gerencial, borrado solo owner.
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users.Get("/", userHandler.List)
	users.Post("/", RequireRole(entity.RoleOwner, entity.RoleDirector, entity.RoleGerente), userHandler.Create)
	users.Put("/:id", RequireRole(entity.RoleOwner, entity.RoleDirector, entity.RoleGerente), userHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleOwner), userHandler.Delete)

	// Leads: CRUD bajo alcance jerárquico; el borrado duro además exige owner.
	leads := protected.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC, deps.Log)
	leads.Get("/", leadHandler.List)
	leads.Post("/", leadHandler.Create)
	leads.Get("/:id", leadHandler.Get)
	leads.Put("/:id", leadHandler.Update)
	leads.Delete("/:id", RequireRole(entity.RoleOwner), leadHandler.Delete)
	leads.Get("/:id/historial", leadHandler.History)

	// Metas: lectura para todos (filtrada por alcance), escritura para la
	// línea de supervisión hacia arriba.
	metas := protected.Group("/metas")
	metaHandler := NewMetaHandler(deps.MetaUC, deps.Log)
	metas.Get("/", metaHandler.List)
	metas.Post("/", RequireRole(entity.RoleOwner, entity.RoleDirector, entity.RoleGerente, entity.RoleSupervisor), metaHandler.Upsert)
	metas.Put("/:id", RequireRole(entity.RoleOwner, entity.RoleDirector, entity.RoleGerente, entity.RoleSupervisor), metaHandler.Update)
	metas.Delete("/:id", RequireRole(entity.RoleOwner, entity.RoleDirector, entity.RoleGerente, entity.RoleSupervisor), metaHandler.Delete)

	// Presupuestos: plantillas visibles para todos, escritura solo owner.
	quotes := protected.Group("/presupuestos")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.Log)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.Get)
	quotes.Post("/", RequireRole(entity.RoleOwner), quoteHandler.Create)
	quotes.Put("/:id", RequireRole(entity.RoleOwner), quoteHandler.Update)
	quotes.Delete("/:id", RequireRole(entity.RoleOwner), quoteHandler.Delete)
	quotes.Post("/:id/pdf", quoteHandler.GeneratePDF)

	// Notas internas
	notes := protected.Group("/notas")
	noteHandler := NewNoteHandler(deps.NoteUC, deps.Log)
	notes.Get("/lead/:leadId", noteHandler.ListByLead)
	notes.Post("/", noteHandler.Create)
	notes.Delete("/:id", noteHandler.Delete)
}
