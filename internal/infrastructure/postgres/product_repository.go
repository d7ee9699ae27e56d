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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia del catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo. SKU repetido -> ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, erp_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Name, product.ErpCode, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// CreatePackage inserta el paquete y rellena pkg.ID con el BIGSERIAL asignado.
func (r *ProductRepo) CreatePackage(ctx context.Context, pkg *entity.ProductPackage) error {
	query := `
		INSERT INTO product_packages (product_id, name, barcode, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, pkg.ProductID, pkg.Name, pkg.Barcode, pkg.CreatedAt).Scan(&pkg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product package: %w", err)
	}
	return nil
}

const productColumns = `id, sku, name, erp_code, created_at, updated_at`

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.ErpCode, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU matching exacto y sensible a mayúsculas por SKU propio.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetByErpCode matching exacto por código ERP homologado.
func (r *ProductRepo) GetByErpCode(ctx context.Context, erpCode string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE erp_code = $1 ORDER BY created_at LIMIT 1`, erpCode)
}

// List lista productos con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.ErpCode, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

const packageColumns = `id, product_id, name, barcode, created_at`

// GetPackageByBarcode matching exacto por barcode de paquete. Ante empates
// gana el ID ascendente menor (primero creado): desempate determinista.
func (r *ProductRepo) GetPackageByBarcode(ctx context.Context, barcode string) (*entity.ProductPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM product_packages WHERE barcode = $1 ORDER BY id ASC LIMIT 1`
	return r.getPackage(ctx, query, barcode)
}

// GetPackageByID obtiene un paquete por su ID secuencial.
func (r *ProductRepo) GetPackageByID(ctx context.Context, id int64) (*entity.ProductPackage, error) {
	return r.getPackage(ctx, `SELECT `+packageColumns+` FROM product_packages WHERE id = $1`, id)
}

func (r *ProductRepo) getPackage(ctx context.Context, query string, arg any) (*entity.ProductPackage, error) {
	var pkg entity.ProductPackage
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&pkg.ID, &pkg.ProductID, &pkg.Name, &pkg.Barcode, &pkg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product package: %w", err)
	}
	return &pkg, nil
}

// ListPackagesByProduct lista los paquetes de un producto por ID ascendente.
func (r *ProductRepo) ListPackagesByProduct(ctx context.Context, productID string) ([]*entity.ProductPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM product_packages WHERE product_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product packages: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductPackage
	for rows.Next() {
		var pkg entity.ProductPackage
		if err := rows.Scan(&pkg.ID, &pkg.ProductID, &pkg.Name, &pkg.Barcode, &pkg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product package: %w", err)
		}
		list = append(list, &pkg)
	}
	return list, rows.Err()
}
