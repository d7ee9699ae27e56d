package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, customer_ref, status, fulfillment_status,
		dispatch_note_id, dispatch_status, dispatch_error, dispatch_payload, created_at, updated_at`

// Create persiste un pedido nuevo. Número de pedido repetido -> ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_number, customer_ref, status, fulfillment_status,
			dispatch_note_id, dispatch_status, dispatch_error, dispatch_payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderNumber, order.CustomerRef, order.Status, order.FulfillmentStatus,
		order.DispatchNoteID, order.DispatchStatus, order.DispatchError, order.DispatchPayload,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de pedido.
func (r *OrderRepo) CreateItem(ctx context.Context, item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, external_line_id, product_id, package_id,
			requested_quantity, picked_quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OrderID, item.ExternalLineID, item.ProductID, item.PackageID,
		item.RequestedQty, item.PickedQty, item.UnitPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *OrderRepo) getOne(ctx context.Context, query string, arg any) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerRef, &o.Status, &o.FulfillmentStatus,
		&o.DispatchNoteID, &o.DispatchStatus, &o.DispatchError, &o.DispatchPayload,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// GetByID obtiene un pedido por ID interno.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el pedido bloqueando la fila (SELECT FOR UPDATE).
// Serializa escaneos y despachos sobre el mismo pedido.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// GetByNumber obtiene un pedido por su número externo.
func (r *OrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
}

// List lista pedidos por fecha de creación descendente, con paginación.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerRef, &o.Status, &o.FulfillmentStatus,
			&o.DispatchNoteID, &o.DispatchStatus, &o.DispatchError, &o.DispatchPayload,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

const itemColumns = `id, order_id, external_line_id, product_id, package_id,
		requested_quantity, picked_quantity, unit_price, created_at, updated_at`

// GetItems obtiene las líneas de un pedido en orden de creación.
func (r *OrderRepo) GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ExternalLineID, &it.ProductID, &it.PackageID,
			&it.RequestedQty, &it.PickedQty, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *OrderRepo) getItem(ctx context.Context, query, itemID string) (*entity.OrderItem, error) {
	var it entity.OrderItem
	err := r.q.QueryRow(ctx, query, itemID).Scan(
		&it.ID, &it.OrderID, &it.ExternalLineID, &it.ProductID, &it.PackageID,
		&it.RequestedQty, &it.PickedQty, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return &it, nil
}

// GetItemByID obtiene una línea por ID.
func (r *OrderRepo) GetItemByID(ctx context.Context, itemID string) (*entity.OrderItem, error) {
	return r.getItem(ctx, `SELECT `+itemColumns+` FROM order_items WHERE id = $1`, itemID)
}

// GetItemByIDForUpdate obtiene la línea bloqueando la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetItemByIDForUpdate(ctx context.Context, itemID string) (*entity.OrderItem, error) {
	return r.getItem(ctx, `SELECT `+itemColumns+` FROM order_items WHERE id = $1 FOR UPDATE`, itemID)
}

// UpdateItemPicked actualiza el contador materializado de la línea. El CHECK
// de la tabla (0 <= picked <= requested) respalda el invariante en el borde.
func (r *OrderRepo) UpdateItemPicked(ctx context.Context, itemID string, pickedQty int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE order_items SET picked_quantity = $2, updated_at = now() WHERE id = $1`,
		itemID, pickedQty,
	)
	if err != nil {
		return fmt.Errorf("update picked quantity: %w", err)
	}
	return nil
}

// ZeroPickedByOrder pone picked_quantity = 0 en todas las líneas del pedido.
func (r *OrderRepo) ZeroPickedByOrder(ctx context.Context, orderID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE order_items SET picked_quantity = 0, updated_at = now() WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("zero picked by order: %w", err)
	}
	return nil
}

// UpdateStatus actualiza status y fulfillment_status en una sola sentencia.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID, status, fulfillmentStatus string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $2, fulfillment_status = $3, updated_at = now() WHERE id = $1`,
		orderID, status, fulfillmentStatus,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// UpdateDispatch persiste los campos de remisión del pedido.
func (r *OrderRepo) UpdateDispatch(ctx context.Context, order *entity.Order) error {
	_, err := r.q.Exec(ctx,
		`UPDATE orders SET dispatch_note_id = $2, dispatch_status = $3, dispatch_error = $4,
			dispatch_payload = $5, updated_at = now() WHERE id = $1`,
		order.ID, order.DispatchNoteID, order.DispatchStatus, order.DispatchError, order.DispatchPayload,
	)
	if err != nil {
		return fmt.Errorf("update order dispatch: %w", err)
	}
	return nil
}

// ResetAllDispatchAndStatus limpia remisión y degrada estados de todos los
// pedidos en una sola sentencia set-based.
func (r *OrderRepo) ResetAllDispatchAndStatus(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET
			dispatch_note_id = NULL,
			dispatch_status = '',
			dispatch_error = NULL,
			dispatch_payload = NULL,
			status = CASE WHEN status = 'fulfilled' THEN 'open' ELSE status END,
			fulfillment_status = 'NOT_FULFILLED',
			updated_at = now()`)
	if err != nil {
		return 0, fmt.Errorf("reset all orders: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ZeroPickedAll pone picked_quantity = 0 en todas las líneas de todos los pedidos.
func (r *OrderRepo) ZeroPickedAll(ctx context.Context) error {
	_, err := r.q.Exec(ctx, `UPDATE order_items SET picked_quantity = 0, updated_at = now()`)
	if err != nil {
		return fmt.Errorf("zero picked all: %w", err)
	}
	return nil
}
