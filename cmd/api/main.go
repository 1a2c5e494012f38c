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

	"github.com/gfsilva/setup-rastreio/internal/application/auth"
	"github.com/gfsilva/setup-rastreio/internal/application/tracking"
	"github.com/gfsilva/setup-rastreio/internal/application/usecase"
	"github.com/gfsilva/setup-rastreio/internal/infrastructure/export"
	infrapdf "github.com/gfsilva/setup-rastreio/internal/infrastructure/pdf"
	"github.com/gfsilva/setup-rastreio/internal/infrastructure/postgres"
	"github.com/gfsilva/setup-rastreio/internal/infrastructure/redisnotify"
	httpRouter "github.com/gfsilva/setup-rastreio/internal/interfaces/http"
	"github.com/gfsilva/setup-rastreio/pkg/config"
	"github.com/gfsilva/setup-rastreio/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	equipRepo := postgres.NewEquipmentRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	sectorRepo := postgres.NewSectorRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificador em tempo real (Redis pub/sub); opcional, a app funciona
	// sem ele — os alertas persistidos continuam disponíveis na API.
	var notifier tracking.LowStockNotifier
	if cfg.Redis.Addr != "" {
		redisNotifier, err := redisnotify.NewNotifier(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexão com Redis")
		}
		defer redisNotifier.Close()
		notifier = redisNotifier
		log.Info().Str("channel", cfg.Redis.Channel).Msg("notificações em tempo real ativas")
	} else {
		log.Warn().Msg("REDIS_ADDR vazio: notificações em tempo real desativadas")
	}

	trackingUC := tracking.NewUseCase(txRunner, notifier, cfg.Inventory.LowStockThreshold, log)
	historyUC := tracking.NewHistoryUseCase(movRepo, equipRepo, locationRepo, sectorRepo)
	reportUC := tracking.NewReportUseCase(equipRepo, movRepo, cfg.Inventory.LowStockThreshold)
	equipmentUC := usecase.NewEquipmentUseCase(equipRepo, movRepo)
	catalogUC := usecase.NewCatalogUseCase(categoryRepo, locationRepo, sectorRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	notificationUC := usecase.NewNotificationUseCase(notifRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGen := infrapdf.NewMarotoGenerator()
	csvExporter := export.NewCSVExporter()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Setup Rastreio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EquipmentUC:    equipmentUC,
		CatalogUC:      catalogUC,
		UserUC:         userUC,
		NotificationUC: notificationUC,
		TrackingUC:     trackingUC,
		HistoryUC:      historyUC,
		ReportUC:       reportUC,
		AuthUC:         authUC,
		PDFGen:         pdfGen,
		CSVExporter:    csvExporter,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, fechando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
