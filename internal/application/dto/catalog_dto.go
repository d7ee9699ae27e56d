package dto

import "time"

// CreatePackageRequest subpaquete dentro de la creación de un producto.
type CreatePackageRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Barcode string `json:"barcode" validate:"required,min=1,max=100"`
}

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	SKU      string                 `json:"sku" validate:"required,min=1,max=100"`
	Name     string                 `json:"name" validate:"required,min=1,max=200"`
	ErpCode  string                 `json:"erp_code"`
	Packages []CreatePackageRequest `json:"packages"`
}

// PackageResponse salida de un subpaquete.
type PackageResponse struct {
	ID        int64     `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Barcode   string    `json:"barcode"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse salida de un producto con sus paquetes.
type ProductResponse struct {
	ID        string            `json:"id"`
	SKU       string            `json:"sku"`
	Name      string            `json:"name"`
	ErpCode   string            `json:"erp_code"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Packages  []PackageResponse `json:"packages,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ResolveResponse resultado de resolver un identificador de línea externo.
// Matched=false significa "sin coincidencia", no un error.
type ResolveResponse struct {
	Identifier string           `json:"identifier"`
	Matched    bool             `json:"matched"`
	Product    *ProductResponse `json:"product,omitempty"`
	Package    *PackageResponse `json:"package,omitempty"`
}
