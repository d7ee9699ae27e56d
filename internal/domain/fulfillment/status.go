// Package fulfillment deriva el estado de preparación de un pedido a partir
// del progreso de picking de sus líneas. Es una función pura: el mismo
// historial de escaneos produce siempre el mismo estado.
package fulfillment

import "github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"

// Status es el estado de preparación agregado de un pedido.
type Status string

const (
	NotFulfilled       Status = entity.FulfillmentNotFulfilled
	PartiallyFulfilled Status = entity.FulfillmentPartiallyFulfilled
	Fulfilled          Status = entity.FulfillmentFulfilled
)

// Derive calcula el estado a partir de las líneas actuales del pedido.
// Solo cuentan las líneas resueltas con cantidad solicitada positiva: una
// línea sin producto homologado no puede escanearse y no debe impedir que
// el resto del pedido se considere completo.
//
//   - Todas con picked == 0                  -> NOT_FULFILLED
//   - Todas con picked == requested (y >= 1) -> FULFILLED
//   - Cualquier otra mezcla                  -> PARTIALLY_FULFILLED
func Derive(items []*entity.OrderItem) Status {
	countable := 0
	anyPicked := false
	allComplete := true

	for _, it := range items {
		if !it.Resolved() || it.RequestedQty <= 0 {
			continue
		}
		countable++
		if it.PickedQty > 0 {
			anyPicked = true
		}
		if it.PickedQty != it.RequestedQty {
			allComplete = false
		}
	}

	switch {
	case countable == 0 || !anyPicked:
		return NotFulfilled
	case allComplete:
		return Fulfilled
	default:
		return PartiallyFulfilled
	}
}
