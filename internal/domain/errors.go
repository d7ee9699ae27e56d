package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Picking: fallas de validación de un escaneo. Recuperables: rechazan el
	// escaneo sin mutar picked_quantity ni abortar nada más.
	ErrItemNotFound    = errors.New("línea de pedido no encontrada")
	ErrBarcodeMismatch = errors.New("el código de barras no pertenece al producto de la línea")
	ErrOverPick        = errors.New("el escaneo excede la cantidad solicitada de la línea")

	// Despacho: precondiciones rechazadas de forma síncrona, sin cambio de estado.
	ErrNotFulfilled      = errors.New("el pedido no está completamente preparado")
	ErrAlreadyDispatched = errors.New("el pedido ya tiene una remisión activa en el ERP")

	// Despacho: fallas externas. El pedido queda reintentable y el detalle se
	// persiste verbatim en dispatch_error.
	ErrErpUnreachable = errors.New("el ERP Netsis no respondió")
	ErrErpRejected    = errors.New("el ERP Netsis rechazó la remisión")
)
