package dto

// RecordScanRequest entrada para registrar un escaneo contra una línea.
type RecordScanRequest struct {
	OrderItemID string `json:"order_item_id" validate:"required"`
	Barcode     string `json:"barcode" validate:"required"`
}

// RecordScanResponse resultado de un escaneo aceptado.
type RecordScanResponse struct {
	Accepted          bool   `json:"accepted"`
	OrderItemID       string `json:"order_item_id"`
	NewPickedQuantity int    `json:"new_picked_quantity"`
	FulfillmentStatus string `json:"fulfillment_status"`
}

// ResetOrderResponse resultado del reset administrativo de un pedido.
type ResetOrderResponse struct {
	Success      bool   `json:"success"`
	OrderID      string `json:"order_id"`
	ScansDeleted int    `json:"scans_deleted"`
	Message      string `json:"message"`
}
