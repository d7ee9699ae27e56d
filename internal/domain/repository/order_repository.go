package repository

import (
	"context"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia del agregado Order (DIP).
// Los métodos ForUpdate bloquean la fila (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error

	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)

	GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	GetItemByID(ctx context.Context, itemID string) (*entity.OrderItem, error)
	GetItemByIDForUpdate(ctx context.Context, itemID string) (*entity.OrderItem, error)
	UpdateItemPicked(ctx context.Context, itemID string, pickedQty int) error
	ZeroPickedByOrder(ctx context.Context, orderID string) error

	// UpdateStatus actualiza status y fulfillment_status en una sola sentencia.
	UpdateStatus(ctx context.Context, orderID, status, fulfillmentStatus string) error

	// UpdateDispatch persiste los campos de remisión del pedido
	// (dispatch_note_id, dispatch_status, dispatch_error, dispatch_payload).
	UpdateDispatch(ctx context.Context, order *entity.Order) error

	// ResetAllDispatchAndStatus es el tramo set-based del reset masivo: limpia
	// los campos de remisión de todos los pedidos, demote fulfilled -> open y
	// fulfillment_status -> NOT_FULFILLED. Devuelve cuántos pedidos tocó.
	ResetAllDispatchAndStatus(ctx context.Context) (int64, error)
	ZeroPickedAll(ctx context.Context) error
}
