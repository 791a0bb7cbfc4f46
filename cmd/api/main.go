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

	_ "github.com/tu-usuario/stock-engine/docs"
	"github.com/tu-usuario/stock-engine/internal/application/inventory"
	infracache "github.com/tu-usuario/stock-engine/internal/infrastructure/cache"
	infrapdf "github.com/tu-usuario/stock-engine/internal/infrastructure/pdf"
	"github.com/tu-usuario/stock-engine/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/stock-engine/internal/interfaces/http"
	"github.com/tu-usuario/stock-engine/pkg/config"
	"github.com/tu-usuario/stock-engine/pkg/logger"
)

// @title        Stock Engine API
// @description  Motor de stock y disponibilidad: ledger de movimientos, ajustes, lotes y alertas.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in   header
// @name Authorization
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

	movementRepo := postgres.NewStockMovementRepository(pool)
	stockRepo := postgres.NewVariantStockRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de disponibilidad (opcional): sin REDIS_ADDR el motor lee siempre de la BD.
	var availabilityCache inventory.AvailabilityCache
	if cfg.Redis.Addr != "" {
		redisClient, err := infracache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		availabilityCache = infracache.NewRedisAvailabilityCache(
			redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log,
		)
	}

	reportGenerator := infrapdf.NewMarotoStockReportGenerator()

	adjustUC := inventory.NewAdjustStockUseCase(
		txRunner, variantRepo, availabilityCache, log, cfg.Inventory.DefaultLowStockThreshold,
	)
	availabilityUC := inventory.NewAvailabilityUseCase(
		stockRepo, movementRepo, availabilityCache, reportGenerator, log,
		cfg.Inventory.DefaultLowStockThreshold,
	)
	lotUC := inventory.NewLotUseCase(
		txRunner, lotRepo, stockRepo, variantRepo,
		cfg.Inventory.ExpiryHorizonDays, cfg.Inventory.UrgentExpiryDays,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Engine API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AdjustUC:       adjustUC,
		AvailabilityUC: availabilityUC,
		LotUC:          lotUC,
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

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
