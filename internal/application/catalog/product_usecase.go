package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dto"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/repository"
)

// ProductUseCase administra el catálogo que alimenta al resolver.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create crea un producto con sus subpaquetes. SKU duplicado -> ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, p := range in.Packages {
		if p.Name == "" || p.Barcode == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		ErpCode:   in.ErpCode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	for _, p := range in.Packages {
		pkg := &entity.ProductPackage{
			ProductID: product.ID,
			Name:      p.Name,
			Barcode:   p.Barcode,
			CreatedAt: now,
		}
		if err := uc.productRepo.CreatePackage(ctx, pkg); err != nil {
			return nil, err
		}
		product.Packages = append(product.Packages, pkg)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto con sus paquetes; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	packages, err := uc.productRepo.ListPackagesByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Packages = packages
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	products, err := uc.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Count: len(products)},
	}
	for _, p := range products {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

// Resolve expone el resolver como consulta (para la UI de homologación).
func (uc *ProductUseCase) Resolve(ctx context.Context, resolver *Resolver, identifier string) (*dto.ResolveResponse, error) {
	match, err := resolver.ResolveLine(ctx, identifier)
	if err != nil {
		return nil, err
	}
	out := &dto.ResolveResponse{Identifier: identifier}
	if match == nil {
		return out, nil
	}
	out.Matched = true
	out.Product = toProductResponse(match.Product)
	if match.Package != nil {
		pr := toPackageResponse(match.Package)
		out.Package = &pr
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		ErpCode:   p.ErpCode,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, pkg := range p.Packages {
		out.Packages = append(out.Packages, toPackageResponse(pkg))
	}
	return out
}

func toPackageResponse(pkg *entity.ProductPackage) dto.PackageResponse {
	return dto.PackageResponse{
		ID:        pkg.ID,
		ProductID: pkg.ProductID,
		Name:      pkg.Name,
		Barcode:   pkg.Barcode,
		CreatedAt: pkg.CreatedAt,
	}
}
