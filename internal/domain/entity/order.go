package entity

import "time"

// Estados gruesos del ciclo de vida del pedido. La promoción a fulfilled es
// siempre explícita (automática al completar el picking, o administrativa);
// solo las operaciones de reset lo devuelven a open.
const (
	OrderStatusOpen      = "open"
	OrderStatusApproved  = "approved"
	OrderStatusFulfilled = "fulfilled"
)

// Estados de preparación derivados de las líneas. Nunca se asignan a mano
// fuera del recálculo (ver fulfillment.Derive) salvo por el reset administrativo.
const (
	FulfillmentNotFulfilled       = "NOT_FULFILLED"
	FulfillmentPartiallyFulfilled = "PARTIALLY_FULFILLED"
	FulfillmentFulfilled          = "FULFILLED"
)

// Estados de la remisión (irsaliye) en Netsis. La ausencia de remisión se
// representa con cadena vacía; CLEARED es el centinela que distingue
// "nunca despachado" de "despachado y revertido".
const (
	DispatchStatusNone      = ""
	DispatchStatusPending   = "PENDING"
	DispatchStatusCommitted = "COMMITTED"
	DispatchStatusCleared   = "CLEARED"
)

// Order es el agregado de un pedido del almacén. OrderNumber es la clave
// externa estable (la del storefront); ID es interno. Los pedidos nunca se
// eliminan, solo se resetean.
type Order struct {
	ID                string
	OrderNumber       string
	CustomerRef       string
	Status            string // open | approved | fulfilled
	FulfillmentStatus string // NOT_FULFILLED | PARTIALLY_FULFILLED | FULFILLED
	DispatchNoteID    *string
	DispatchStatus    string // "" | PENDING | COMMITTED | CLEARED
	DispatchError     *string
	DispatchPayload   *string // JSON del request enviado a Netsis, para auditoría
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items []*OrderItem
}

// HasActiveDispatch indica si el pedido tiene una remisión no revertida
// (PENDING cuenta: hay una creación en vuelo).
func (o *Order) HasActiveDispatch() bool {
	if o.DispatchStatus == DispatchStatusPending || o.DispatchStatus == DispatchStatusCommitted {
		return true
	}
	return o.DispatchNoteID != nil && o.DispatchStatus != DispatchStatusCleared
}
