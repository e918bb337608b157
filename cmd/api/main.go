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

	"github.com/nicklvs1307/stockfy/internal/application/analytics"
	"github.com/nicklvs1307/stockfy/internal/application/inventory"
	"github.com/nicklvs1307/stockfy/internal/application/labeling"
	"github.com/nicklvs1307/stockfy/internal/application/usecase"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/pdf"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/printer"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/xlsx"
	httpRouter "github.com/nicklvs1307/stockfy/internal/interfaces/http"
	"github.com/nicklvs1307/stockfy/pkg/config"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	if cfg.Printer.Addr == "" {
		log.Warn().Msg("PRINTER_ADDR vacío: la impresión de etiquetas será simulada")
	}
	zebra := printer.NewZebraPrinter(cfg.Printer.Addr, cfg.Printer.Timeout(), printer.Footer{
		CompanyLine: cfg.Label.CompanyLine,
		AddressLine: cfg.Label.AddressLine,
	}, log)
	labelPDF := pdf.NewLabelPDFGenerator(cfg.Label.CompanyLine, cfg.Label.AddressLine)

	deps := httpRouter.RouterDeps{
		ProductUC:    usecase.NewProductUseCase(st.products, st.categories),
		CategoryUC:   usecase.NewCategoryUseCase(st.categories),
		EmployeeUC:   usecase.NewEmployeeUseCase(st.employees),
		LedgerUC:     inventory.NewLedgerUseCase(st.tx, st.stock, st.products, log),
		MovementUC:   inventory.NewMovementUseCase(st.tx, st.movements, st.products, log),
		LossUC:       inventory.NewLossUseCase(st.tx, st.losses, st.products, log),
		ProductionUC: inventory.NewProductionUseCase(st.tx, st.production, st.products, st.employees, log),
		CountUC:      inventory.NewCountUseCase(st.tx, st.counts, st.products, st.employees, log),
		LabelUC:      labeling.NewLabelUseCase(st.labels, st.products, st.employees, zebra, labelPDF, log),
		ReportUC:     analytics.NewReportUseCase(st.labels, st.production, st.counts, st.products, xlsx.NewReportExporter()),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en /docs solo si existe docs/swagger.json.
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Stockfy API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, deps)

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
