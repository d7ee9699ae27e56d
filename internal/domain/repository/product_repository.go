package repository

import (
	"context"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo.
// El matching es exacto y sensible a mayúsculas; las búsquedas por código
// devuelven (nil, nil) cuando no hay coincidencia.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// CreatePackage inserta el paquete y rellena pkg.ID con el secuencial asignado.
	CreatePackage(ctx context.Context, pkg *entity.ProductPackage) error

	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByErpCode(ctx context.Context, erpCode string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)

	// GetPackageByBarcode devuelve el paquete cuyo barcode coincide exactamente.
	// Si varios coinciden gana el de ID ascendente menor (primero creado),
	// desempate deliberadamente determinista.
	GetPackageByBarcode(ctx context.Context, barcode string) (*entity.ProductPackage, error)
	GetPackageByID(ctx context.Context, id int64) (*entity.ProductPackage, error)
	ListPackagesByProduct(ctx context.Context, productID string) ([]*entity.ProductPackage, error)
}
