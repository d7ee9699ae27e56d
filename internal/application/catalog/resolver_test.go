package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/catalog"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/infrastructure/memory"
)

func seedCatalog(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	simple := &entity.Product{ID: "prod-simple", SKU: "CAMA-90", Name: "Cama 90", ErpCode: "NET-CAMA-90"}
	require.NoError(t, store.Products().Create(ctx, simple))

	composite := &entity.Product{ID: "prod-comp", SKU: "ROPERO-3P", Name: "Ropero 3 puertas"}
	require.NoError(t, store.Products().Create(ctx, composite))
	for _, barcode := range []string{"PKG-001", "PKG-002"} {
		pkg := &entity.ProductPackage{ProductID: composite.ID, Name: "paquete " + barcode, Barcode: barcode}
		require.NoError(t, store.Products().CreatePackage(ctx, pkg))
	}
	return store
}

func TestResolveLine(t *testing.T) {
	store := seedCatalog(t)
	resolver := catalog.NewResolver(store.Products())
	ctx := context.Background()

	t.Run("por sku", func(t *testing.T) {
		match, err := resolver.ResolveLine(ctx, "CAMA-90")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "prod-simple", match.Product.ID)
		assert.Nil(t, match.Package)
	})

	t.Run("por código erp", func(t *testing.T) {
		match, err := resolver.ResolveLine(ctx, "NET-CAMA-90")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "prod-simple", match.Product.ID)
	})

	t.Run("por barcode de paquete", func(t *testing.T) {
		match, err := resolver.ResolveLine(ctx, "PKG-002")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "prod-comp", match.Product.ID)
		require.NotNil(t, match.Package)
		assert.Equal(t, "PKG-002", match.Package.Barcode)
	})

	t.Run("sin coincidencia devuelve nil sin error", func(t *testing.T) {
		match, err := resolver.ResolveLine(ctx, "NO-EXISTE")
		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("identificador vacío devuelve nil", func(t *testing.T) {
		match, err := resolver.ResolveLine(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("matching sensible a mayúsculas", func(t *testing.T) {
		match, err := resolver.ResolveLine(ctx, "cama-90")
		require.NoError(t, err)
		assert.Nil(t, match)
	})
}

// El barcode de paquete es la coincidencia más específica: gana aunque el
// mismo identificador exista como SKU de otro producto.
func TestResolveLinePackagePrecedence(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	byCode := &entity.Product{ID: "prod-a", SKU: "AMBIGUO"}
	require.NoError(t, store.Products().Create(ctx, byCode))

	byPackage := &entity.Product{ID: "prod-b", SKU: "OTRO"}
	require.NoError(t, store.Products().Create(ctx, byPackage))
	pkg := &entity.ProductPackage{ProductID: byPackage.ID, Name: "p1", Barcode: "AMBIGUO"}
	require.NoError(t, store.Products().CreatePackage(ctx, pkg))

	resolver := catalog.NewResolver(store.Products())
	match, err := resolver.ResolveLine(ctx, "AMBIGUO")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "prod-b", match.Product.ID)
	require.NotNil(t, match.Package)
}

// Barcodes duplicados entre paquetes: gana el de ID menor (primero creado),
// siempre el mismo ante entradas idénticas.
func TestResolveLineDuplicateBarcodeDeterministic(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	for _, id := range []string{"prod-1", "prod-2"} {
		require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: id, SKU: "SKU-" + id}))
		pkg := &entity.ProductPackage{ProductID: id, Name: "p", Barcode: "DUP-BC"}
		require.NoError(t, store.Products().CreatePackage(ctx, pkg))
	}

	resolver := catalog.NewResolver(store.Products())
	for i := 0; i < 5; i++ {
		match, err := resolver.ResolveLine(ctx, "DUP-BC")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "prod-1", match.Product.ID)
		assert.Equal(t, int64(1), match.Package.ID)
	}
}
