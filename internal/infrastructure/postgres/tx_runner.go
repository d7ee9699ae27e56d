package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dispatch"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/orders"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/picking"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/repository"
)

// TxRunner satisface los puertos de transacción de cada caso de uso.
var _ picking.TxRunner = (*TxRunner)(nil)
var _ dispatch.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Todas las mutaciones multi-fila del sistema (escaneo,
// resets, despachos) pasan por acá: visibilidad todo-o-nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	pickRepo repository.PickRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	pickRepo := NewPickRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(orderRepo, pickRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
