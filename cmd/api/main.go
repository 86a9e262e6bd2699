package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/despachos-api/internal/application/analytics"
	"github.com/jhoicas/despachos-api/internal/application/auth"
	"github.com/jhoicas/despachos-api/internal/application/reconcile"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/despachos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/despachos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/despachos-api/internal/infrastructure/sheets"
	infraxlsx "github.com/jhoicas/despachos-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/despachos-api/internal/interfaces/http"
	"github.com/jhoicas/despachos-api/pkg/config"
	"github.com/jhoicas/despachos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("preset", cfg.Pipeline.Preset).
		Msg("iniciando aplicación")

	opts, err := pipelineOptions(cfg.Pipeline)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración del pipeline")
	}

	// Historial de pasadas: opcional; sin DB el pipeline funciona igual.
	var runs repository.RunRepository
	if cfg.DB.Enabled {
		ctx := context.Background()
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		runs = postgres.NewRunRepository(pool)
	}

	sheetsClient := sheets.NewClient(cfg.Sheets.BaseURL, cfg.Sheets.APIKey, cfg.Sheets.Timeout)
	despachos := reconcile.NewService(sheetsClient, runs, opts, nil, log.Zerolog())

	operators := make([]entity.Operator, 0, len(cfg.Auth.Operators))
	for _, op := range cfg.Auth.Operators {
		operators = append(operators, entity.Operator{Username: op.Username, Role: op.Role, PasswordHash: op.PasswordHash})
	}
	if len(operators) == 0 {
		log.Warn().Msg("AUTH_OPERATORS vacío: nadie podrá iniciar sesión")
	}
	authUC := auth.NewAuthUseCase(operators, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Despachos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   cfg.App.Name,
			"preset":    cfg.Pipeline.Preset,
			"historial": runs != nil,
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Despachos:     despachos,
		Exporter:      infraxlsx.NewExporter(),
		DispatchSheet: infrapdf.NewDispatchSheetGenerator(cfg.App.Name),
		AuthUC:        authUC,
		DashboardUC:   appanalytics.NewDashboardUseCase(despachos),
		JWTSecret:     cfg.JWT.Secret,
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
