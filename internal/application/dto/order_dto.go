package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NormalizedOrderLine línea del documento normalizado de pedido que entrega
// el adaptador de ingesta del storefront.
type NormalizedOrderLine struct {
	ExternalLineID string          `json:"external_line_id" validate:"required"`
	Quantity       int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// NormalizedOrder documento normalizado de pedido. El núcleo no lo obtiene
// por sí mismo: lo recibe ya normalizado.
type NormalizedOrder struct {
	OrderNumber string                `json:"order_number" validate:"required"`
	CustomerRef string                `json:"customer_ref"`
	Items       []NormalizedOrderLine `json:"items" validate:"required,min=1"`
}

// IngestResult resultado de la ingesta: el pedido persistido y los
// identificadores de línea que no matchearon contra el catálogo (la ingesta
// no falla por ellos, se aceptan parcialmente resueltos).
type IngestResult struct {
	OrderID     string   `json:"order_id"`
	OrderNumber string   `json:"order_number"`
	Unmatched   []string `json:"unmatched"`
}

// OrderItemResponse salida de una línea de pedido.
type OrderItemResponse struct {
	ID             string          `json:"id"`
	ExternalLineID string          `json:"external_line_id"`
	ProductID      *string         `json:"product_id"`
	PackageID      *int64          `json:"package_id"`
	RequestedQty   int             `json:"requested_quantity"`
	PickedQty      int             `json:"picked_quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID                string              `json:"id"`
	OrderNumber       string              `json:"order_number"`
	CustomerRef       string              `json:"customer_ref"`
	Status            string              `json:"status"`
	FulfillmentStatus string              `json:"fulfillment_status"`
	DispatchNoteID    *string             `json:"dispatch_note_id"`
	DispatchStatus    string              `json:"dispatch_status"`
	DispatchError     *string             `json:"dispatch_error"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Items             []OrderItemResponse `json:"items,omitempty"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// FulfillmentStatusResponse estado de preparación derivado de un pedido.
type FulfillmentStatusResponse struct {
	OrderID           string `json:"order_id"`
	FulfillmentStatus string `json:"fulfillment_status"`
}
