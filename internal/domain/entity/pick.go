package entity

import "time"

// Estados de una sesión de picking.
const (
	PickStatusOpen      = "OPEN"
	PickStatusCompleted = "COMPLETED"
)

// Pick agrupa los escaneos de un pedido en una sesión. Se abre con el primer
// escaneo y se marca COMPLETED cuando el pedido queda FULFILLED.
type Pick struct {
	ID        string
	OrderID   string
	Status    string // OPEN | COMPLETED
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PickScan es un evento inmutable de escaneo contra una línea de pedido.
// El log de escaneos es la fuente de verdad: picked_quantity de la línea es
// una vista materializada recomputable sumando Quantity de sus escaneos.
// Solo el reset administrativo los elimina (en cascada con su Pick).
type PickScan struct {
	ID          string
	PickID      string
	OrderItemID string
	Barcode     string
	Quantity    int // normalmente 1 (una unidad por escaneo)
	ScannedAt   time.Time
}
