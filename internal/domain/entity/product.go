package entity

import "time"

// Product es un SKU del catálogo interno. SKU es el código propio del
// almacén; ErpCode es el código de stock con el que Netsis conoce el mismo
// producto (puede estar vacío si aún no se homologó).
type Product struct {
	ID        string
	SKU       string
	Name      string
	ErpCode   string
	CreatedAt time.Time
	UpdatedAt time.Time

	Packages []*ProductPackage
}

// StockCode devuelve el código con el que se reporta el producto a Netsis:
// el código ERP homologado si existe, si no el SKU propio.
func (p *Product) StockCode() string {
	if p.ErpCode != "" {
		return p.ErpCode
	}
	return p.SKU
}

// ProductPackage es un subpaquete de un producto compuesto: cada paquete
// tiene su propio código de barras y debe escanearse individualmente.
// El ID es secuencial (BIGSERIAL): el orden ascendente de ID es el orden de
// creación y se usa como desempate determinista en el matching.
type ProductPackage struct {
	ID        int64
	ProductID string
	Name      string
	Barcode   string
	CreatedAt time.Time
}
