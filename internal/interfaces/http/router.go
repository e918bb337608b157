package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nicklvs1307/stockfy/internal/application/analytics"
	"github.com/nicklvs1307/stockfy/internal/application/inventory"
	"github.com/nicklvs1307/stockfy/internal/application/labeling"
	"github.com/nicklvs1307/stockfy/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	CategoryUC   *usecase.CategoryUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	LedgerUC     *inventory.LedgerUseCase
	MovementUC   *inventory.MovementUseCase
	LossUC       *inventory.LossUseCase
	ProductionUC *inventory.ProductionUseCase
	CountUC      *inventory.CountUseCase
	LabelUC      *labeling.LabelUseCase
	ReportUC     *analytics.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	employees := api.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	// Ledger
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.MovementUC)
	stock.Get("/balances", stockHandler.ListBalances)
	stock.Post("/balances", stockHandler.ApplyDelta)
	stock.Get("/balances/:productId", stockHandler.GetBalance)
	stock.Post("/movements", stockHandler.CreateMovement)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/movements/:id", stockHandler.GetMovement)
	stock.Put("/movements/:id", stockHandler.UpdateMovement)
	stock.Delete("/movements/:id", stockHandler.DeleteMovement)

	losses := api.Group("/losses")
	lossHandler := NewLossHandler(deps.LossUC)
	losses.Post("/", lossHandler.Create)
	losses.Get("/", lossHandler.List)
	losses.Get("/:id", lossHandler.GetByID)
	losses.Put("/:id", lossHandler.Update)
	losses.Delete("/:id", lossHandler.Delete)

	production := api.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	production.Post("/", productionHandler.Create)
	production.Get("/", productionHandler.List)
	production.Get("/:id", productionHandler.GetByID)
	production.Put("/:id", productionHandler.Update)
	production.Delete("/:id", productionHandler.Delete)

	counts := api.Group("/counts")
	countHandler := NewCountHandler(deps.CountUC)
	counts.Post("/", countHandler.Create)
	counts.Post("/batch", countHandler.CreateBatch)
	counts.Get("/", countHandler.List)
	counts.Get("/:id", countHandler.GetByID)

	// Rutas fijas antes de /:id
	labels := api.Group("/labels")
	labelHandler := NewLabelHandler(deps.LabelUC)
	labels.Post("/", labelHandler.Create)
	labels.Get("/", labelHandler.List)
	labels.Get("/groups", labelHandler.Groups)
	labels.Delete("/expired", labelHandler.DeleteExpired)
	labels.Get("/:id", labelHandler.GetByID)
	labels.Put("/:id", labelHandler.Update)
	labels.Delete("/:id", labelHandler.Delete)
	labels.Post("/:id/print", labelHandler.Print)
	labels.Get("/:id/pdf", labelHandler.PDF)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/:kind", reportHandler.Get)
	reports.Get("/:kind/export", reportHandler.Export)
}
