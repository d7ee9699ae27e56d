package catalog

import (
	"context"
	"fmt"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/repository"
)

// Match es el resultado de resolver un identificador de línea externo:
// el producto y, para productos compuestos, el subpaquete concreto cuyo
// código de barras coincidió.
type Match struct {
	Product *entity.Product
	Package *entity.ProductPackage
}

// Resolver mapea identificadores de línea heterogéneos (SKU propio, código
// ERP o barcode de paquete) a productos del catálogo. Matching exacto y
// sensible a mayúsculas; sin fuzzy.
type Resolver struct {
	productRepo repository.ProductRepository
}

// NewResolver construye el resolver.
func NewResolver(productRepo repository.ProductRepository) *Resolver {
	return &Resolver{productRepo: productRepo}
}

// ResolveLine intenta, en orden: barcode de paquete (la coincidencia más
// específica gana; empates por ID ascendente los resuelve el repositorio),
// luego SKU del producto, luego código ERP. Devuelve (nil, nil) cuando no
// hay coincidencia: un identificador sin match no es un error, el caller
// decide aceptar el pedido parcialmente resuelto.
func (r *Resolver) ResolveLine(ctx context.Context, identifier string) (*Match, error) {
	if identifier == "" {
		return nil, nil
	}

	pkg, err := r.productRepo.GetPackageByBarcode(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("buscar paquete por barcode: %w", err)
	}
	if pkg != nil {
		product, err := r.productRepo.GetByID(ctx, pkg.ProductID)
		if err != nil {
			return nil, fmt.Errorf("cargar producto del paquete: %w", err)
		}
		if product == nil {
			// Paquete huérfano: lo trata como sin coincidencia.
			return nil, nil
		}
		return &Match{Product: product, Package: pkg}, nil
	}

	product, err := r.productRepo.GetBySKU(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("buscar producto por sku: %w", err)
	}
	if product != nil {
		return &Match{Product: product}, nil
	}

	product, err = r.productRepo.GetByErpCode(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("buscar producto por código erp: %w", err)
	}
	if product != nil {
		return &Match{Product: product}, nil
	}

	return nil, nil
}
