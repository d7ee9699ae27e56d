package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/catalog"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dispatch"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/orders"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/picking"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *catalog.ProductUseCase
	Resolver   *catalog.Resolver
	IngestUC   *orders.IngestUseCase
	QueryUC    *orders.QueryUseCase
	PickingUC  *picking.UseCase
	DispatchUC *dispatch.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo y homologación de códigos
	catalogHandler := NewCatalogHandler(deps.ProductUC, deps.Resolver)
	products := api.Group("/products")
	products.Post("/", catalogHandler.Create)
	products.Get("/", catalogHandler.List)
	products.Get("/:id", catalogHandler.GetByID)
	api.Get("/catalog/resolve", catalogHandler.Resolve)

	// Pedidos: ingesta y consulta
	orderHandler := NewOrderHandler(deps.IngestUC, deps.QueryUC)
	ordersGroup := api.Group("/orders")
	ordersGroup.Post("/", orderHandler.Ingest)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/fulfillment", orderHandler.GetFulfillmentStatus)

	// Picking
	pickingHandler := NewPickingHandler(deps.PickingUC)
	api.Post("/picking/scans", pickingHandler.RecordScan)
	ordersGroup.Post("/:id/reset", pickingHandler.ResetOrder)

	// Despacho a Netsis
	dispatchHandler := NewDispatchHandler(deps.DispatchUC)
	ordersGroup.Post("/:id/dispatch", dispatchHandler.Create)
	ordersGroup.Delete("/:id/dispatch", dispatchHandler.Clear)
	api.Post("/admin/reset-all", dispatchHandler.ResetAll)
}
