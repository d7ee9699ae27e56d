package orders_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/catalog"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dto"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/orders"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/infrastructure/memory"
)

func fixture(t *testing.T) (*memory.Store, *orders.IngestUseCase) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	simple := &entity.Product{ID: "prod-simple", SKU: "CAMA-90", ErpCode: "NET-CAMA-90"}
	require.NoError(t, store.Products().Create(ctx, simple))

	composite := &entity.Product{ID: "prod-comp", SKU: "ROPERO-3P"}
	require.NoError(t, store.Products().Create(ctx, composite))
	pkg := &entity.ProductPackage{ProductID: composite.ID, Name: "p1", Barcode: "PKG-001"}
	require.NoError(t, store.Products().CreatePackage(ctx, pkg))

	resolver := catalog.NewResolver(store.Products())
	return store, orders.NewIngestUseCase(store, store.Orders(), resolver)
}

func TestIngest(t *testing.T) {
	store, uc := fixture(t)
	ctx := context.Background()

	out, err := uc.Ingest(ctx, dto.NormalizedOrder{
		OrderNumber: "SO-1001",
		CustomerRef: "cliente-7",
		Items: []dto.NormalizedOrderLine{
			{ExternalLineID: "CAMA-90", Quantity: 2, UnitPrice: decimal.NewFromInt(150)},
			{ExternalLineID: "PKG-001", Quantity: 1, UnitPrice: decimal.NewFromInt(300)},
			{ExternalLineID: "SKU-FANTASMA", Quantity: 4, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "SO-1001", out.OrderNumber)
	assert.Equal(t, []string{"SKU-FANTASMA"}, out.Unmatched)

	order, err := store.Orders().GetByID(ctx, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusOpen, order.Status)
	assert.Equal(t, entity.FulfillmentNotFulfilled, order.FulfillmentStatus)
	assert.Equal(t, entity.DispatchStatusNone, order.DispatchStatus)

	items, err := store.Orders().GetItems(ctx, out.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Las líneas conservan el orden del documento.
	require.NotNil(t, items[0].ProductID)
	assert.Equal(t, "prod-simple", *items[0].ProductID)
	assert.Nil(t, items[0].PackageID)

	require.NotNil(t, items[1].ProductID)
	assert.Equal(t, "prod-comp", *items[1].ProductID)
	require.NotNil(t, items[1].PackageID)

	// La línea sin coincidencia se persiste igual, sin referencias.
	assert.Nil(t, items[2].ProductID)
	assert.Equal(t, "SKU-FANTASMA", items[2].ExternalLineID)
	assert.Equal(t, 4, items[2].RequestedQty)
}

func TestIngestDuplicateOrderNumber(t *testing.T) {
	_, uc := fixture(t)
	ctx := context.Background()

	doc := dto.NormalizedOrder{
		OrderNumber: "SO-1001",
		Items:       []dto.NormalizedOrderLine{{ExternalLineID: "CAMA-90", Quantity: 1}},
	}
	_, err := uc.Ingest(ctx, doc)
	require.NoError(t, err)

	_, err = uc.Ingest(ctx, doc)
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestIngestInvalidInput(t *testing.T) {
	_, uc := fixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		doc  dto.NormalizedOrder
	}{
		{"sin número de pedido", dto.NormalizedOrder{
			Items: []dto.NormalizedOrderLine{{ExternalLineID: "CAMA-90", Quantity: 1}},
		}},
		{"sin líneas", dto.NormalizedOrder{OrderNumber: "SO-1"}},
		{"cantidad cero", dto.NormalizedOrder{
			OrderNumber: "SO-1",
			Items:       []dto.NormalizedOrderLine{{ExternalLineID: "CAMA-90", Quantity: 0}},
		}},
		{"línea sin identificador", dto.NormalizedOrder{
			OrderNumber: "SO-1",
			Items:       []dto.NormalizedOrderLine{{ExternalLineID: "", Quantity: 1}},
		}},
		{"precio negativo", dto.NormalizedOrder{
			OrderNumber: "SO-1",
			Items: []dto.NormalizedOrderLine{
				{ExternalLineID: "CAMA-90", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
			},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Ingest(ctx, tc.doc)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGetFulfillmentStatusDerivesFresh(t *testing.T) {
	store, uc := fixture(t)
	ctx := context.Background()

	out, err := uc.Ingest(ctx, dto.NormalizedOrder{
		OrderNumber: "SO-1001",
		Items:       []dto.NormalizedOrderLine{{ExternalLineID: "CAMA-90", Quantity: 2}},
	})
	require.NoError(t, err)

	query := orders.NewQueryUseCase(store.Orders())

	status, err := query.GetFulfillmentStatus(ctx, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.FulfillmentNotFulfilled, status.FulfillmentStatus)

	// El estado se deriva de las líneas en el momento de la consulta, no de
	// la columna persistida.
	items, err := store.Orders().GetItems(ctx, out.OrderID)
	require.NoError(t, err)
	require.NoError(t, store.Orders().UpdateItemPicked(ctx, items[0].ID, 2))

	status, err = query.GetFulfillmentStatus(ctx, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.FulfillmentFulfilled, status.FulfillmentStatus)
}
