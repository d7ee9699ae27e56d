package dto

// Valores de QuantitiesSource: de dónde salieron las cantidades de la
// remisión creada en Netsis. "warehouse" es la transferencia correcta;
// "erp-order" es el fallback degradado (cantidades recordadas por el ERP).
const (
	QuantitiesSourceWarehouse = "warehouse"
	QuantitiesSourceErpOrder  = "erp-order"
)

// DispatchResponse resultado de crear una remisión. El caller distingue
// "funcionó bien" de "funcionó por el fallback degradado" vía QuantitiesSource,
// sin inspeccionar textos de respuesta.
type DispatchResponse struct {
	Success          bool   `json:"success"`
	OrderID          string `json:"order_id"`
	NoteID           string `json:"note_id"`
	QuantitiesSource string `json:"quantities_source"` // warehouse | erp-order
	LinesCreated     int    `json:"lines_created"`
	Message          string `json:"message"`
}

// ClearDispatchResponse resultado de revertir la remisión de un pedido.
type ClearDispatchResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

// ResetAllResponse resultado del reset masivo.
type ResetAllResponse struct {
	Success     bool   `json:"success"`
	OrdersReset int64  `json:"orders_reset"`
	Message     string `json:"message"`
}
