package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/catalog"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dispatch"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/orders"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/picking"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/infrastructure/netsis"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/Bhardaks/wms-netsis-entegre-sub001/internal/interfaces/http"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/pkg/config"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/pkg/logger"
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

	orderRepo := postgres.NewOrderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := catalog.NewResolver(productRepo)
	productUC := catalog.NewProductUseCase(productRepo)
	ingestUC := orders.NewIngestUseCase(txRunner, orderRepo, resolver)
	queryUC := orders.NewQueryUseCase(orderRepo)
	pickingUC := picking.NewUseCase(txRunner)

	// Cliente Netsis — sin NETSIS_BASE_URL las operaciones de despacho fallan
	// como ERP inalcanzable hasta configurarlo.
	var erpClient netsis.Client
	if cfg.Netsis.BaseURL != "" {
		erpClient = netsis.NewRESTClient(cfg.Netsis.BaseURL, cfg.Netsis.APIKey)
	} else {
		log.Warn().Msg("NETSIS_BASE_URL vacío: integración con el ERP deshabilitada")
	}
	dispatchUC := dispatch.NewUseCase(txRunner, erpClient, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		Resolver:   resolver,
		IngestUC:   ingestUC,
		QueryUC:    queryUC,
		PickingUC:  pickingUC,
		DispatchUC: dispatchUC,
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
