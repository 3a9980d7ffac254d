package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/alluma/crm-api/internal/application/access"
	"github.com/alluma/crm-api/internal/application/assignment"
	"github.com/alluma/crm-api/internal/application/auth"
	"github.com/alluma/crm-api/internal/application/usecase"
	infrapdf "github.com/alluma/crm-api/internal/infrastructure/pdf"
	"github.com/alluma/crm-api/internal/infrastructure/postgres"
	httpRouter "github.com/alluma/crm-api/internal/interfaces/http"
	"github.com/alluma/crm-api/pkg/config"
	"github.com/alluma/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	metaRepo := postgres.NewMetaRepository(pool)
	quoteRepo := postgres.NewQuoteTemplateRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Núcleo de control de acceso y asignación
	resolver := access.NewResolver(userRepo, log)
	classifier := access.NewClassifier(userRepo, cfg.Teams.Managers, cfg.Teams.DefaultTeam, log)
	engine := assignment.NewEngine(userRepo, leadRepo, classifier, cfg.Assignment.Strategy, cfg.Assignment.Strict, log)

	pdfGenerator := infrapdf.NewMarotoQuoteGenerator()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, resolver)
	leadUC := usecase.NewLeadUseCase(txRunner, leadRepo, userRepo, resolver, engine)
	metaUC := usecase.NewMetaUseCase(metaRepo, resolver)
	quoteUC := usecase.NewQuoteUseCase(quoteRepo, pdfGenerator)
	noteUC := usecase.NewNoteUseCase(noteRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		UserUC:          userUC,
		LeadUC:          leadUC,
		MetaUC:          metaUC,
		QuoteUC:         quoteUC,
		NoteUC:          noteUC,
		JWTSecret:       cfg.JWT.Secret,
		WebhookSystemID: cfg.Webhook.SystemUserID,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
