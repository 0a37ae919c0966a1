package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/application/sales"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/testutil"
)

func newSaleUseCase(store *testutil.Store) *sales.SaleUseCase {
	txRunner := testutil.NewTxRunner(store)
	stock := inventory.NewStockUseCase(txRunner, testutil.NewMovementRepo(store))
	return sales.NewSaleUseCase(txRunner, stock, testutil.NewProductRepo(store), testutil.NewSaleRepo(store))
}

func seedProduct(store *testutil.Store, code string, price int64, stock int) int64 {
	return store.SeedProduct(entity.Product{
		Code:     code,
		Name:     "Producto " + code,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		MinStock: 2,
		IsActive: true,
	})
}

func TestCreateSale_DescuentaStockYRegistraMovimiento(t *testing.T) {
	store := testutil.NewStore()
	productID := seedProduct(store, "CAFE-500", 25, 10)
	uc := newSaleUseCase(store)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: 4}},
		PaymentMethod: "cash",
	})

	require.NoError(t, err)
	assert.Equal(t, 6, store.Products[productID].Stock)
	// Precio por defecto: el del producto (snapshot).
	require.Len(t, out.Details, 1)
	assert.True(t, out.Details[0].UnitPrice.Equal(decimal.NewFromInt(25)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(100)), "total = 25 * 4")

	movs := store.MovementsFor(productID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeSale, movs[0].MovementType)
	assert.Equal(t, -4, movs[0].Quantity, "la salida se registra con signo negativo")
	assert.Equal(t, 10, movs[0].PreviousStock)
	assert.Equal(t, 6, movs[0].NewStock)
	assert.Equal(t, entity.ReferenceTypeSale, movs[0].ReferenceType)
	require.NotNil(t, movs[0].ReferenceID)
	assert.Equal(t, out.ID, *movs[0].ReferenceID)
}

func TestCreateSale_StockInsuficienteNoMutaNada(t *testing.T) {
	store := testutil.NewStore()
	productID := seedProduct(store, "CAFE-500", 25, 6)
	uc := newSaleUseCase(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: 10}},
		PaymentMethod: "cash",
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 6, store.Products[productID].Stock)
	assert.Empty(t, store.Sales, "una venta rechazada no deja cabecera")
	assert.Empty(t, store.MovementsFor(productID))
}

func TestCreateSale_UnaLineaInvalidaAbortaTodo(t *testing.T) {
	store := testutil.NewStore()
	okID := seedProduct(store, "CAFE-500", 25, 10)
	shortID := seedProduct(store, "TE-100", 10, 1)
	uc := newSaleUseCase(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: okID, Quantity: 2},
			{ProductID: shortID, Quantity: 5},
		},
		PaymentMethod: "card",
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// Sin ventas parciales: ninguna de las dos líneas tocó stock.
	assert.Equal(t, 10, store.Products[okID].Stock)
	assert.Equal(t, 1, store.Products[shortID].Stock)
	assert.Empty(t, store.Sales)
}

func TestCreateSale_ProductoInactivo(t *testing.T) {
	store := testutil.NewStore()
	productID := store.SeedProduct(entity.Product{
		Code: "BAJA-1", Price: decimal.NewFromInt(5), Stock: 10, IsActive: false,
	})
	uc := newSaleUseCase(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: 1}},
		PaymentMethod: "cash",
	})

	assert.ErrorIs(t, err, domain.ErrProductInactive)
}

func TestCreateSale_TotalConImpuestoYDescuento(t *testing.T) {
	store := testutil.NewStore()
	p1 := seedProduct(store, "CAFE-500", 25, 10)
	p2 := seedProduct(store, "TE-100", 10, 10)
	uc := newSaleUseCase(store)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: p1, Quantity: 2},                                       // 50
			{ProductID: p2, Quantity: 3, UnitPrice: decimal.NewFromInt(8)},     // 24, precio explícito
		},
		TaxAmount:      decimal.NewFromInt(14),
		DiscountAmount: decimal.NewFromInt(5),
		PaymentMethod:  "card",
	})

	require.NoError(t, err)
	// 50 + 24 + 14 - 5 = 83
	assert.True(t, out.Total.Equal(decimal.NewFromInt(83)), "total = subtotales + impuesto - descuento, got %s", out.Total)
	require.Len(t, out.Details, 2)
	assert.True(t, out.Details[1].UnitPrice.Equal(decimal.NewFromInt(8)), "el precio explícito se respeta")
	assert.True(t, out.Details[1].Subtotal.Equal(decimal.NewFromInt(24)))
}

func TestCreateSale_EntradaInvalida(t *testing.T) {
	store := testutil.NewStore()
	uc := newSaleUseCase(store)

	cases := []dto.CreateSaleRequest{
		{PaymentMethod: "cash"}, // sin líneas
		{Items: []dto.SaleItemRequest{{ProductID: 1, Quantity: 1}}}, // sin método de pago
		{Items: []dto.SaleItemRequest{{ProductID: 1, Quantity: 0}}, PaymentMethod: "cash"},
		{Items: []dto.SaleItemRequest{{ProductID: 1, Quantity: -2}}, PaymentMethod: "cash"},
		{Items: []dto.SaleItemRequest{{ProductID: 1, Quantity: 1}}, PaymentMethod: "cash", DiscountAmount: decimal.NewFromInt(-1)},
	}
	for _, in := range cases {
		_, err := uc.CreateSale(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestDeleteSale_RestauraStockConMovimientoReturn(t *testing.T) {
	store := testutil.NewStore()
	productID := seedProduct(store, "CAFE-500", 25, 10)
	uc := newSaleUseCase(store)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: 4}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.Equal(t, 6, store.Products[productID].Stock)

	err = uc.DeleteSale(context.Background(), out.ID)

	require.NoError(t, err)
	assert.Equal(t, 10, store.Products[productID].Stock)
	assert.Empty(t, store.Sales)
	assert.Empty(t, store.SaleDetails)

	// El libro queda cuadrado: el movimiento original no se toca y la reversa
	// es un evento return nuevo.
	movs := store.MovementsFor(productID)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeSale, movs[0].MovementType)
	assert.Equal(t, entity.MovementTypeReturn, movs[1].MovementType)
	assert.Equal(t, 4, movs[1].Quantity)
	assert.Equal(t, 6, movs[1].PreviousStock)
	assert.Equal(t, 10, movs[1].NewStock)
}

func TestDeleteSale_Inexistente(t *testing.T) {
	store := testutil.NewStore()
	uc := newSaleUseCase(store)

	err := uc.DeleteSale(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSale_DevuelveNilSiNoExiste(t *testing.T) {
	store := testutil.NewStore()
	uc := newSaleUseCase(store)

	out, err := uc.GetSale(404)

	require.NoError(t, err)
	assert.Nil(t, out)
}
