package picking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dto"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/picking"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/infrastructure/memory"
)

// fixture deja un pedido open con dos líneas resueltas: item-a (2 unidades
// del producto simple, barcode = SKU) e item-b (1 unidad atada al paquete
// PKG-001 del producto compuesto).
func fixture(t *testing.T) (*memory.Store, *picking.UseCase) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	simple := &entity.Product{ID: "prod-simple", SKU: "CAMA-90", ErpCode: "NET-CAMA-90"}
	require.NoError(t, store.Products().Create(ctx, simple))

	composite := &entity.Product{ID: "prod-comp", SKU: "ROPERO-3P"}
	require.NoError(t, store.Products().Create(ctx, composite))
	pkg := &entity.ProductPackage{ProductID: composite.ID, Name: "p1", Barcode: "PKG-001"}
	require.NoError(t, store.Products().CreatePackage(ctx, pkg))

	order := &entity.Order{
		ID:                "order-1",
		OrderNumber:       "SO-1001",
		Status:            entity.OrderStatusOpen,
		FulfillmentStatus: entity.FulfillmentNotFulfilled,
	}
	require.NoError(t, store.Orders().Create(ctx, order))

	simpleID := simple.ID
	require.NoError(t, store.Orders().CreateItem(ctx, &entity.OrderItem{
		ID: "item-a", OrderID: order.ID, ExternalLineID: "CAMA-90",
		ProductID: &simpleID, RequestedQty: 2,
	}))
	compID := composite.ID
	pkgID := pkg.ID
	require.NoError(t, store.Orders().CreateItem(ctx, &entity.OrderItem{
		ID: "item-b", OrderID: order.ID, ExternalLineID: "PKG-001",
		ProductID: &compID, PackageID: &pkgID, RequestedQty: 1,
	}))

	return store, picking.NewUseCase(store)
}

func TestRecordScanStatusTransitions(t *testing.T) {
	store, uc := fixture(t)
	ctx := context.Background()

	out, err := uc.RecordScan(ctx, dto.RecordScanRequest{OrderItemID: "item-a", Barcode: "CAMA-90"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.NewPickedQuantity)
	assert.Equal(t, entity.FulfillmentPartiallyFulfilled, out.FulfillmentStatus)

	out, err = uc.RecordScan(ctx, dto.RecordScanRequest{OrderItemID: "item-a", Barcode: "CAMA-90"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.NewPickedQuantity)
	assert.Equal(t, entity.FulfillmentPartiallyFulfilled, out.FulfillmentStatus)

	out, err = uc.RecordScan(ctx, dto.RecordScanRequest{OrderItemID: "item-b", Barcode: "PKG-001"})
	require.NoError(t, err)
	assert.Equal(t, entity.FulfillmentFulfilled, out.FulfillmentStatus)

	order, err := store.Orders().GetByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusFulfilled, order.Status)
	assert.Equal(t, entity.FulfillmentFulfilled, order.FulfillmentStatus)

	// Al completar el pedido la sesión de picking queda cerrada.
	pick, err := store.Picks().GetOpenByOrder(ctx, "order-1")
	require.NoError(t, err)
	assert.Nil(t, pick)
}

// El contador de la línea es una vista materializada del log: la suma de los
// escaneos registrados debe coincidir con picked_quantity.
func TestRecordScanLogMatchesCounter(t *testing.T) {
	store, uc := fixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := uc.RecordScan(ctx, dto.RecordScanRequest{OrderItemID: "item-a", Barcode: "NET-CAMA-90"})
		require.NoError(t, err)
	}

	item, err := store.Orders().GetItemByID(ctx, "item-a")
	require.NoError(t, err)
	sum, err := store.Picks().SumScanQuantityByItem(ctx, "item-a")
	require.NoError(t, err)
	assert.Equal(t, item.PickedQty, sum)
	assert.Equal(t, 2, sum)
}

func TestRecordScanBarcodeMismatch(t *testing.T) {
	store, uc := fixture(t)
	ctx := context.Background()

	_, err := uc.RecordScan(ctx, dto.RecordScanRequest{OrderItemID: "item-a", Barcode: "OTRO-CODIGO"})
	require.ErrorIs(t, err, domain.ErrBarcodeMismatch)

	// El rechazo no deja rastro: ni contador ni escaneos.
	item, err := store.Orders().GetItemByID(ctx, "item-a")
	require.NoError(t, err)
	assert.Equal(t, 0, item.PickedQty)
	scans, err := store.Picks().ListScansByOrder(ctx, "order-1")
	require.NoError(t, err)
	assert.Empty(t, scans)
}

// Una línea atada a un paquete solo acepta el barcode del paquete, no el SKU
// del producto padre.
func TestRecordScanPackageBoundLine(t *testing.T) {
	_, uc := fixture(t)
	ctx := context.Background()

	_, err := uc.RecordScan(ctx, dto.RecordScanRequest{OrderItemID: "item-b", Barcode: "ROPERO-3P"})
	require.ErrorIs(t, err, domain.ErrBarcodeMismatch)

	out, err := uc.RecordScan(ctx, dto.RecordScanRequest{OrderItemID: "item-b", Barcode: "PKG-001"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.NewPickedQuantity)
}

func TestRecordScanOverPick(t *testing.T) {
	store, uc := fixture(t)
	ctx := context.Background()

	_, err := uc.RecordScan(ctx, dto.RecordScanRequest{OrderItemID: "item-b", Barcode: "PKG-001"})
	require.NoError(t, err)

	_, err = uc.RecordScan(ctx, dto.RecordScanRequest{OrderItemID: "item-b", Barcode: "PKG-001"})
	require.ErrorIs(t, err, domain.ErrOverPick)

	item, err := store.Orders().GetItemByID(ctx, "item-b")
	require.NoError(t, err)
	assert.Equal(t, 1, item.PickedQty)
}

func TestRecordScanUnresolvedLine(t *testing.T) {
	store, uc := fixture(t)
	ctx := context.Background()

	require.NoError(t, store.Orders().CreateItem(ctx, &entity.OrderItem{
		ID: "item-c", OrderID: "order-1", ExternalLineID: "DESCONOCIDO", RequestedQty: 1,
	}))

	_, err := uc.RecordScan(ctx, dto.RecordScanRequest{OrderItemID: "item-c", Barcode: "DESCONOCIDO"})
	require.ErrorIs(t, err, domain.ErrBarcodeMismatch)
}

func TestRecordScanItemNotFound(t *testing.T) {
	_, uc := fixture(t)

	_, err := uc.RecordScan(context.Background(), dto.RecordScanRequest{OrderItemID: "no-existe", Barcode: "X"})
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRecordScanInvalidInput(t *testing.T) {
	_, uc := fixture(t)

	_, err := uc.RecordScan(context.Background(), dto.RecordScanRequest{OrderItemID: "", Barcode: "X"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordScan(context.Background(), dto.RecordScanRequest{OrderItemID: "item-a", Barcode: ""})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResetOrder(t *testing.T) {
	store, uc := fixture(t)
	ctx := context.Background()

	for _, req := range []dto.RecordScanRequest{
		{OrderItemID: "item-a", Barcode: "CAMA-90"},
		{OrderItemID: "item-a", Barcode: "CAMA-90"},
		{OrderItemID: "item-b", Barcode: "PKG-001"},
	} {
		_, err := uc.RecordScan(ctx, req)
		require.NoError(t, err)
	}

	// Campos de remisión presentes: el reset por pedido NO los toca.
	order, err := store.Orders().GetByID(ctx, "order-1")
	require.NoError(t, err)
	noteID := "IRS-9"
	order.DispatchNoteID = &noteID
	order.DispatchStatus = entity.DispatchStatusCommitted
	require.NoError(t, store.Orders().UpdateDispatch(ctx, order))

	out, err := uc.ResetOrder(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, 3, out.ScansDeleted)

	order, err = store.Orders().GetByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusOpen, order.Status)
	assert.Equal(t, entity.FulfillmentNotFulfilled, order.FulfillmentStatus)
	assert.Equal(t, entity.DispatchStatusCommitted, order.DispatchStatus)
	require.NotNil(t, order.DispatchNoteID)
	assert.Equal(t, "IRS-9", *order.DispatchNoteID)

	items, err := store.Orders().GetItems(ctx, "order-1")
	require.NoError(t, err)
	for _, it := range items {
		assert.Equal(t, 0, it.PickedQty)
	}
	scans, err := store.Picks().ListScansByOrder(ctx, "order-1")
	require.NoError(t, err)
	assert.Empty(t, scans)
}

func TestResetOrderNotFound(t *testing.T) {
	_, uc := fixture(t)

	_, err := uc.ResetOrder(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
