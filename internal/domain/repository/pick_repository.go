package repository

import (
	"context"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
)

// PickRepository define el puerto de persistencia de sesiones de picking y
// sus escaneos. Los escaneos son append-only: solo los deletes de reset
// (por pedido o globales) los eliminan, en cascada con su Pick.
type PickRepository interface {
	Create(ctx context.Context, pick *entity.Pick) error
	GetOpenByOrder(ctx context.Context, orderID string) (*entity.Pick, error)
	UpdateStatus(ctx context.Context, pickID, status string) error

	CreateScan(ctx context.Context, scan *entity.PickScan) error
	ListScansByOrder(ctx context.Context, orderID string) ([]*entity.PickScan, error)
	// SumScanQuantityByItem recomputa picked_quantity desde el log de eventos
	// (vista materializada verificable contra la columna de la línea).
	SumScanQuantityByItem(ctx context.Context, orderItemID string) (int, error)

	DeleteByOrder(ctx context.Context, orderID string) error
	DeleteAll(ctx context.Context) error
}
