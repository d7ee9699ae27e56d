package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/repository"
)

var _ repository.PickRepository = (*PickRepo)(nil)

// PickRepo implementación del puerto PickRepository sobre PostgreSQL (usable con pool o tx).
type PickRepo struct {
	q Querier
}

// NewPickRepository construye el adaptador de picking. Pasar pool o tx (Querier).
func NewPickRepository(q Querier) *PickRepo {
	return &PickRepo{q: q}
}

// Create persiste una sesión de picking.
func (r *PickRepo) Create(ctx context.Context, pick *entity.Pick) error {
	query := `
		INSERT INTO picks (id, order_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, pick.ID, pick.OrderID, pick.Status, pick.CreatedAt, pick.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert pick: %w", err)
	}
	return nil
}

// GetOpenByOrder obtiene la sesión OPEN del pedido, si existe.
func (r *PickRepo) GetOpenByOrder(ctx context.Context, orderID string) (*entity.Pick, error) {
	query := `
		SELECT id, order_id, status, created_at, updated_at
		FROM picks WHERE order_id = $1 AND status = $2
		ORDER BY created_at LIMIT 1`
	var p entity.Pick
	err := r.q.QueryRow(ctx, query, orderID, entity.PickStatusOpen).Scan(
		&p.ID, &p.OrderID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open pick: %w", err)
	}
	return &p, nil
}

// UpdateStatus actualiza el estado de la sesión.
func (r *PickRepo) UpdateStatus(ctx context.Context, pickID, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE picks SET status = $2, updated_at = now() WHERE id = $1`,
		pickID, status,
	)
	if err != nil {
		return fmt.Errorf("update pick status: %w", err)
	}
	return nil
}

// CreateScan apendea un evento de escaneo. Los escaneos nunca se actualizan.
func (r *PickRepo) CreateScan(ctx context.Context, scan *entity.PickScan) error {
	query := `
		INSERT INTO pick_scans (id, pick_id, order_item_id, barcode, quantity, scanned_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		scan.ID, scan.PickID, scan.OrderItemID, scan.Barcode, scan.Quantity, scan.ScannedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pick scan: %w", err)
	}
	return nil
}

// ListScansByOrder lista los escaneos de un pedido en orden cronológico.
func (r *PickRepo) ListScansByOrder(ctx context.Context, orderID string) ([]*entity.PickScan, error) {
	query := `
		SELECT s.id, s.pick_id, s.order_item_id, s.barcode, s.quantity, s.scanned_at
		FROM pick_scans s
		JOIN picks p ON p.id = s.pick_id
		WHERE p.order_id = $1
		ORDER BY s.scanned_at, s.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list pick scans: %w", err)
	}
	defer rows.Close()
	var list []*entity.PickScan
	for rows.Next() {
		var s entity.PickScan
		if err := rows.Scan(&s.ID, &s.PickID, &s.OrderItemID, &s.Barcode, &s.Quantity, &s.ScannedAt); err != nil {
			return nil, fmt.Errorf("scan pick scan: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SumScanQuantityByItem recomputa el contador de la línea desde el log.
func (r *PickRepo) SumScanQuantityByItem(ctx context.Context, orderItemID string) (int, error) {
	var sum int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM pick_scans WHERE order_item_id = $1`,
		orderItemID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum scan quantity: %w", err)
	}
	return sum, nil
}

// DeleteByOrder elimina las sesiones del pedido; los escaneos caen por
// ON DELETE CASCADE.
func (r *PickRepo) DeleteByOrder(ctx context.Context, orderID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM picks WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete picks by order: %w", err)
	}
	return nil
}

// DeleteAll elimina toda la evidencia de picking (reset masivo).
func (r *PickRepo) DeleteAll(ctx context.Context) error {
	_, err := r.q.Exec(ctx, `DELETE FROM picks`)
	if err != nil {
		return fmt.Errorf("delete all picks: %w", err)
	}
	return nil
}
