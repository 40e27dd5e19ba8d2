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
	appanalytics "github.com/jhoicas/bcs-blackbox/internal/application/analytics"
	"github.com/jhoicas/bcs-blackbox/internal/application/auth"
	"github.com/jhoicas/bcs-blackbox/internal/application/crm"
	"github.com/jhoicas/bcs-blackbox/internal/application/landing"
	"github.com/jhoicas/bcs-blackbox/internal/application/usecase"
	infraexcel "github.com/jhoicas/bcs-blackbox/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/bcs-blackbox/internal/infrastructure/pdf"
	"github.com/jhoicas/bcs-blackbox/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/bcs-blackbox/internal/interfaces/http"
	"github.com/jhoicas/bcs-blackbox/pkg/config"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
	"github.com/jhoicas/bcs-blackbox/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", cfg.DB.Path).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a SQLite")
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	hasher, err := password.NewHasher(cfg.Security.PasswordScheme)
	if err != nil {
		log.Fatal().Err(err).Msg("esquema de contraseñas")
	}
	if hasher.Scheme() == password.SchemeSHA256 {
		log.Warn().Msg("contraseñas con SHA-256 sin sal (compatibilidad); use PASSWORD_SCHEME=bcrypt para cuentas nuevas")
	}

	repos := sqlite.NewRepositories(db)
	txRunner := sqlite.NewTxRunner(db)
	analyticsRepo := sqlite.NewAnalyticsRepository(db)

	authUC := auth.NewAuthUseCase(repos.Users, repos.Roles, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	if _, err := authUC.EnsureAdmin(ctx, auth.AdminSeed{
		Password: cfg.Seed.AdminPassword,
		Email:    cfg.Seed.AdminEmail,
	}); err != nil {
		log.Fatal().Err(err).Msg("sembrar cuenta admin")
	}

	userUC := usecase.NewUserUseCase(repos.Users, repos.Roles, txRunner, hasher, log)
	partnerUC := usecase.NewPartnerUseCase(repos.Partners, repos.Registrations, txRunner, hasher, log)
	subBCSUC := usecase.NewSubBCSUseCase(repos, log)
	contactUC := crm.NewContactUseCase(repos.Contacts, repos.Activities, txRunner, hasher, log)
	leadUC := crm.NewLeadUseCase(repos, txRunner, log)
	landingUC := landing.NewUseCase(repos.Leads, partnerUC, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, repos)

	// PDF del estado de comisiones y exportaciones xlsx
	exportUC := appanalytics.NewExportUseCase(
		repos, dashboardUC, infraexcel.NewExporter(), infrapdf.NewStatementGenerator(cfg.App.Name),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BCS Blackbox API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		PartnerUC:   partnerUC,
		SubBCSUC:    subBCSUC,
		ContactUC:   contactUC,
		LeadUC:      leadUC,
		LandingUC:   landingUC,
		DashboardUC: dashboardUC,
		ExportUC:    exportUC,
		JWTSecret:   cfg.JWT.Secret,
		Logger:      log,
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
