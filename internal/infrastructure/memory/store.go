// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en tests de casos de uso; no ofrece atomicidad real
// (las garantías transaccionales son responsabilidad del adaptador
// PostgreSQL) y no es seguro para uso concurrente.
package memory

import (
	"context"
	"sort"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/repository"
)

var (
	_ repository.OrderRepository   = (*OrderStore)(nil)
	_ repository.PickRepository    = (*PickStore)(nil)
	_ repository.ProductRepository = (*ProductStore)(nil)
)

// Store guarda todos los agregados en memoria. Los repositorios por agregado
// se obtienen con Orders, Picks y Products; todos comparten el mismo estado.
type Store struct {
	orders    map[string]*entity.Order
	items     map[string]*entity.OrderItem
	itemOrder []string // IDs de líneas en orden de inserción
	products  map[string]*entity.Product
	packages  map[int64]*entity.ProductPackage
	picks     map[string]*entity.Pick
	scans     map[string]*entity.PickScan
	scanOrder []string
	nextPkgID int64
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		orders:   make(map[string]*entity.Order),
		items:    make(map[string]*entity.OrderItem),
		products: make(map[string]*entity.Product),
		packages: make(map[int64]*entity.ProductPackage),
		picks:    make(map[string]*entity.Pick),
		scans:    make(map[string]*entity.PickScan),
	}
}

// Orders devuelve la vista OrderRepository del store.
func (s *Store) Orders() *OrderStore { return &OrderStore{s: s} }

// Picks devuelve la vista PickRepository del store.
func (s *Store) Picks() *PickStore { return &PickStore{s: s} }

// Products devuelve la vista ProductRepository del store.
func (s *Store) Products() *ProductStore { return &ProductStore{s: s} }

// Run satisface los puertos TxRunner de los casos de uso: ejecuta fn contra
// las vistas del propio store, sin transaccionalidad real.
func (s *Store) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	pickRepo repository.PickRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(s.Orders(), s.Picks(), s.Products())
}

// ── OrderRepository ───────────────────────────────────────────────────────────

// OrderStore es la vista OrderRepository del Store.
type OrderStore struct {
	s *Store
}

func copyOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = nil
	return &c
}

func copyItem(it *entity.OrderItem) *entity.OrderItem {
	c := *it
	return &c
}

func (r *OrderStore) Create(ctx context.Context, order *entity.Order) error {
	for _, o := range r.s.orders {
		if o.OrderNumber == order.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *OrderStore) CreateItem(ctx context.Context, item *entity.OrderItem) error {
	r.s.items[item.ID] = copyItem(item)
	r.s.itemOrder = append(r.s.itemOrder, item.ID)
	return nil
}

func (r *OrderStore) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *OrderStore) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderStore) GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	for _, o := range r.s.orders {
		if o.OrderNumber == orderNumber {
			return copyOrder(o), nil
		}
	}
	return nil, nil
}

func (r *OrderStore) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	ids := make([]string, 0, len(r.s.orders))
	for id := range r.s.orders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*entity.Order
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		out = append(out, copyOrder(r.s.orders[id]))
	}
	return out, nil
}

func (r *OrderStore) GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, id := range r.s.itemOrder {
		if it := r.s.items[id]; it != nil && it.OrderID == orderID {
			out = append(out, copyItem(it))
		}
	}
	return out, nil
}

func (r *OrderStore) GetItemByID(ctx context.Context, itemID string) (*entity.OrderItem, error) {
	it, ok := r.s.items[itemID]
	if !ok {
		return nil, nil
	}
	return copyItem(it), nil
}

func (r *OrderStore) GetItemByIDForUpdate(ctx context.Context, itemID string) (*entity.OrderItem, error) {
	return r.GetItemByID(ctx, itemID)
}

func (r *OrderStore) UpdateItemPicked(ctx context.Context, itemID string, pickedQty int) error {
	it, ok := r.s.items[itemID]
	if !ok {
		return domain.ErrItemNotFound
	}
	it.PickedQty = pickedQty
	return nil
}

func (r *OrderStore) ZeroPickedByOrder(ctx context.Context, orderID string) error {
	for _, it := range r.s.items {
		if it.OrderID == orderID {
			it.PickedQty = 0
		}
	}
	return nil
}

func (r *OrderStore) UpdateStatus(ctx context.Context, orderID, status, fulfillmentStatus string) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.FulfillmentStatus = fulfillmentStatus
	return nil
}

func (r *OrderStore) UpdateDispatch(ctx context.Context, order *entity.Order) error {
	o, ok := r.s.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	o.DispatchNoteID = order.DispatchNoteID
	o.DispatchStatus = order.DispatchStatus
	o.DispatchError = order.DispatchError
	o.DispatchPayload = order.DispatchPayload
	return nil
}

func (r *OrderStore) ResetAllDispatchAndStatus(ctx context.Context) (int64, error) {
	var touched int64
	for _, o := range r.s.orders {
		o.DispatchNoteID = nil
		o.DispatchStatus = entity.DispatchStatusNone
		o.DispatchError = nil
		o.DispatchPayload = nil
		if o.Status == entity.OrderStatusFulfilled {
			o.Status = entity.OrderStatusOpen
		}
		o.FulfillmentStatus = entity.FulfillmentNotFulfilled
		touched++
	}
	return touched, nil
}

func (r *OrderStore) ZeroPickedAll(ctx context.Context) error {
	for _, it := range r.s.items {
		it.PickedQty = 0
	}
	return nil
}

// ── PickRepository ────────────────────────────────────────────────────────────

// PickStore es la vista PickRepository del Store.
type PickStore struct {
	s *Store
}

func (r *PickStore) Create(ctx context.Context, pick *entity.Pick) error {
	c := *pick
	r.s.picks[pick.ID] = &c
	return nil
}

func (r *PickStore) GetOpenByOrder(ctx context.Context, orderID string) (*entity.Pick, error) {
	for _, p := range r.s.picks {
		if p.OrderID == orderID && p.Status == entity.PickStatusOpen {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *PickStore) UpdateStatus(ctx context.Context, pickID, status string) error {
	p, ok := r.s.picks[pickID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *PickStore) CreateScan(ctx context.Context, scan *entity.PickScan) error {
	c := *scan
	r.s.scans[scan.ID] = &c
	r.s.scanOrder = append(r.s.scanOrder, scan.ID)
	return nil
}

func (r *PickStore) ListScansByOrder(ctx context.Context, orderID string) ([]*entity.PickScan, error) {
	var out []*entity.PickScan
	for _, id := range r.s.scanOrder {
		sc := r.s.scans[id]
		if sc == nil {
			continue
		}
		if p, ok := r.s.picks[sc.PickID]; ok && p.OrderID == orderID {
			c := *sc
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *PickStore) SumScanQuantityByItem(ctx context.Context, orderItemID string) (int, error) {
	sum := 0
	for _, sc := range r.s.scans {
		if sc.OrderItemID == orderItemID {
			sum += sc.Quantity
		}
	}
	return sum, nil
}

func (r *PickStore) DeleteByOrder(ctx context.Context, orderID string) error {
	for id, p := range r.s.picks {
		if p.OrderID != orderID {
			continue
		}
		for scanID, sc := range r.s.scans {
			if sc.PickID == id {
				delete(r.s.scans, scanID)
			}
		}
		delete(r.s.picks, id)
	}
	return nil
}

func (r *PickStore) DeleteAll(ctx context.Context) error {
	r.s.picks = make(map[string]*entity.Pick)
	r.s.scans = make(map[string]*entity.PickScan)
	r.s.scanOrder = nil
	return nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

// ProductStore es la vista ProductRepository del Store.
type ProductStore struct {
	s *Store
}

func (r *ProductStore) Create(ctx context.Context, product *entity.Product) error {
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	c := *product
	c.Packages = nil
	r.s.products[product.ID] = &c
	return nil
}

func (r *ProductStore) CreatePackage(ctx context.Context, pkg *entity.ProductPackage) error {
	r.s.nextPkgID++
	pkg.ID = r.s.nextPkgID
	c := *pkg
	r.s.packages[pkg.ID] = &c
	return nil
}

func (r *ProductStore) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductStore) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductStore) GetByErpCode(ctx context.Context, erpCode string) (*entity.Product, error) {
	if erpCode == "" {
		return nil, nil
	}
	for _, p := range r.s.products {
		if p.ErpCode == erpCode {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductStore) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	ids := make([]string, 0, len(r.s.products))
	for id := range r.s.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*entity.Product
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		c := *r.s.products[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r *ProductStore) GetPackageByBarcode(ctx context.Context, barcode string) (*entity.ProductPackage, error) {
	var best *entity.ProductPackage
	for _, pkg := range r.s.packages {
		if pkg.Barcode != barcode {
			continue
		}
		// Empates por ID ascendente, igual que el adaptador PostgreSQL.
		if best == nil || pkg.ID < best.ID {
			best = pkg
		}
	}
	if best == nil {
		return nil, nil
	}
	c := *best
	return &c, nil
}

func (r *ProductStore) GetPackageByID(ctx context.Context, id int64) (*entity.ProductPackage, error) {
	pkg, ok := r.s.packages[id]
	if !ok {
		return nil, nil
	}
	c := *pkg
	return &c, nil
}

func (r *ProductStore) ListPackagesByProduct(ctx context.Context, productID string) ([]*entity.ProductPackage, error) {
	ids := make([]int64, 0)
	for id, pkg := range r.s.packages {
		if pkg.ProductID == productID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*entity.ProductPackage
	for _, id := range ids {
		c := *r.s.packages[id]
		out = append(out, &c)
	}
	return out, nil
}
