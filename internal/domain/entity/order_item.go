package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem es una línea de pedido. ExternalLineID es el identificador tal
// como llegó del storefront; ProductID/PackageID quedan en nil cuando el
// resolver no encontró coincidencia (la línea se conserva para visibilidad,
// pero no puede escanearse).
//
// Invariante: 0 <= PickedQty <= RequestedQty en todo momento.
type OrderItem struct {
	ID             string
	OrderID        string
	ExternalLineID string
	ProductID      *string
	PackageID      *int64
	RequestedQty   int
	PickedQty      int
	UnitPrice      decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Resolved indica si la línea quedó asociada a un producto del catálogo.
func (i *OrderItem) Resolved() bool {
	return i.ProductID != nil
}
