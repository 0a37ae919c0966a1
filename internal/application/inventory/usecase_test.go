package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/testutil"
)

func newEngine(store *testutil.Store) *inventory.StockUseCase {
	return inventory.NewStockUseCase(testutil.NewTxRunner(store), testutil.NewMovementRepo(store))
}

func seedActiveProduct(store *testutil.Store, stock int) int64 {
	return store.SeedProduct(entity.Product{
		Code:     "P-001",
		Name:     "Café molido 500g",
		Price:    decimal.NewFromInt(25),
		Stock:    stock,
		MinStock: 5,
		IsActive: true,
	})
}

func seedPendingOrder(store *testutil.Store, productID int64, ordered, received int) (orderID, detailID int64) {
	orderID = store.SeedOrder(
		entity.PurchaseOrder{
			OrderNumber: "PO-20260830-101530-123",
			SupplierID:  1,
			OrderDate:   time.Now(),
			Status:      entity.OrderStatusPending,
		},
		entity.PurchaseOrderDetail{
			ProductID:        productID,
			QuantityOrdered:  ordered,
			QuantityReceived: received,
			UnitCost:         decimal.NewFromInt(10),
			TotalCost:        decimal.NewFromInt(10).Mul(decimal.NewFromInt(int64(ordered))),
		},
	)
	details := store.OrderDetails
	for id, d := range details {
		if d.PurchaseOrderID == orderID {
			detailID = id
		}
	}
	return orderID, detailID
}

func TestReserveAndDecrement_DescuentaStock(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 10)
	uc := newEngine(store)

	previous, current, err := uc.ReserveAndDecrementInTx(testutil.NewProductRepo(store), productID, 4, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 10, previous)
	assert.Equal(t, 6, current)
	assert.Equal(t, 6, store.Products[productID].Stock)
}

func TestReserveAndDecrement_StockInsuficiente(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 6)
	uc := newEngine(store)

	_, _, err := uc.ReserveAndDecrementInTx(testutil.NewProductRepo(store), productID, 10, time.Now())

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 6, store.Products[productID].Stock, "un rechazo no debe mutar el stock")
}

func TestReserveAndDecrement_ProductoInactivo(t *testing.T) {
	store := testutil.NewStore()
	productID := store.SeedProduct(entity.Product{Code: "P-002", Stock: 10, IsActive: false})
	uc := newEngine(store)

	_, _, err := uc.ReserveAndDecrementInTx(testutil.NewProductRepo(store), productID, 1, time.Now())

	assert.ErrorIs(t, err, domain.ErrProductInactive)
}

func TestReceiveAgainstDetail_RecepcionParcial(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 0)
	orderID, detailID := seedPendingOrder(store, productID, 20, 0)
	uc := newEngine(store)

	detail, applied, err := uc.ReceiveAgainstDetail(context.Background(), orderID, detailID, 5)

	require.NoError(t, err)
	assert.Equal(t, 5, applied)
	assert.Equal(t, 5, detail.QuantityReceived)
	assert.Equal(t, 5, store.Products[productID].Stock)
	assert.Equal(t, entity.OrderStatusPending, store.Orders[orderID].Status, "la orden sigue pendiente con líneas incompletas")

	movs := store.MovementsFor(productID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypePurchase, movs[0].MovementType)
	assert.Equal(t, 5, movs[0].Quantity)
	assert.Equal(t, 0, movs[0].PreviousStock)
	assert.Equal(t, 5, movs[0].NewStock)
}

func TestReceiveAgainstDetail_SobreEntregaSeRecorta(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 0)
	orderID, detailID := seedPendingOrder(store, productID, 20, 0)
	uc := newEngine(store)

	// Se reciben 25 contra 20 ordenadas: se aplican solo 20.
	detail, applied, err := uc.ReceiveAgainstDetail(context.Background(), orderID, detailID, 25)

	require.NoError(t, err)
	assert.Equal(t, 20, applied)
	assert.Equal(t, 20, detail.QuantityReceived)
	assert.Equal(t, 20, store.Products[productID].Stock, "el delta de stock es el post-recorte")

	movs := store.MovementsFor(productID)
	require.Len(t, movs, 1)
	assert.Equal(t, 20, movs[0].Quantity)

	// Con todas las líneas completas la orden queda entregada.
	order := store.Orders[orderID]
	assert.Equal(t, entity.OrderStatusDelivered, order.Status)
	assert.NotNil(t, order.ReceivedDate)
}

func TestReceiveAgainstDetail_LineaCompletaEsNoOp(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 20)
	orderID, detailID := seedPendingOrder(store, productID, 20, 20)
	uc := newEngine(store)

	_, applied, err := uc.ReceiveAgainstDetail(context.Background(), orderID, detailID, 3)

	require.NoError(t, err)
	assert.Equal(t, 0, applied)
	assert.Equal(t, 20, store.Products[productID].Stock)
	assert.Empty(t, store.MovementsFor(productID), "una línea completa no genera movimiento")
}

func TestReceiveAgainstDetail_DetalleAjenoALaOrden(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 0)
	_, detailID := seedPendingOrder(store, productID, 20, 0)
	otherOrderID := store.SeedOrder(entity.PurchaseOrder{
		OrderNumber: "PO-20260830-101530-456",
		SupplierID:  1,
		Status:      entity.OrderStatusPending,
	})
	uc := newEngine(store)

	_, _, err := uc.ReceiveAgainstDetail(context.Background(), otherOrderID, detailID, 5)

	assert.ErrorIs(t, err, domain.ErrDetailNotFound)
	assert.Equal(t, 0, store.Products[productID].Stock)
}

func TestReceiveItems_DetalleInvalidoRevierteTodo(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 0)
	orderID, detailID := seedPendingOrder(store, productID, 20, 0)
	uc := newEngine(store)

	_, err := uc.ReceiveItems(context.Background(), orderID, []inventory.ReceiveItem{
		{DetailID: detailID, QuantityReceived: 5},
		{DetailID: 9999, QuantityReceived: 3},
	})

	assert.ErrorIs(t, err, domain.ErrDetailNotFound)
	// Rollback completo: ni la primera línea quedó aplicada.
	assert.Equal(t, 0, store.Products[productID].Stock)
	assert.Equal(t, 0, store.OrderDetails[detailID].QuantityReceived)
	assert.Empty(t, store.MovementsFor(productID))
}

func TestReceiveItems_IgnoraCantidadesNoPositivas(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 0)
	orderID, detailID := seedPendingOrder(store, productID, 20, 0)
	uc := newEngine(store)

	order, err := uc.ReceiveItems(context.Background(), orderID, []inventory.ReceiveItem{
		{DetailID: detailID, QuantityReceived: 0},
		{DetailID: detailID, QuantityReceived: -3},
		{DetailID: detailID, QuantityReceived: 7},
	})

	require.NoError(t, err)
	assert.Equal(t, 7, store.Products[productID].Stock)
	assert.Equal(t, 7, store.OrderDetails[detailID].QuantityReceived)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	require.Len(t, store.MovementsFor(productID), 1)
}

func TestReceiveItems_CompletaLaOrdenUnaSolaVez(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 0)
	orderID, detailID := seedPendingOrder(store, productID, 10, 0)
	uc := newEngine(store)

	order, err := uc.ReceiveItems(context.Background(), orderID, []inventory.ReceiveItem{
		{DetailID: detailID, QuantityReceived: 10},
	})
	require.NoError(t, err)
	require.Equal(t, entity.OrderStatusDelivered, order.Status)
	firstReceived := *store.Orders[orderID].ReceivedDate

	// Reevaluar una orden ya entregada es idempotente: no cambia received_date
	// ni duplica stock.
	order, err = uc.ReceiveItems(context.Background(), orderID, []inventory.ReceiveItem{
		{DetailID: detailID, QuantityReceived: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, order.Status)
	assert.Equal(t, firstReceived, *store.Orders[orderID].ReceivedDate)
	assert.Equal(t, 10, store.Products[productID].Stock)
	require.Len(t, store.MovementsFor(productID), 1)
}

func TestReceiveEntireOrder_AplicaSoloLoPendiente(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 3)
	orderID, detailID := seedPendingOrder(store, productID, 20, 8)
	uc := newEngine(store)

	order, err := uc.ReceiveEntireOrder(context.Background(), orderID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, order.Status)
	assert.NotNil(t, order.ReceivedDate)
	assert.Equal(t, 20, store.OrderDetails[detailID].QuantityReceived)
	// 3 existentes + 12 pendientes (20 - 8).
	assert.Equal(t, 15, store.Products[productID].Stock)

	movs := store.MovementsFor(productID)
	require.Len(t, movs, 1)
	assert.Equal(t, 12, movs[0].Quantity)
	assert.Equal(t, 3, movs[0].PreviousStock)
	assert.Equal(t, 15, movs[0].NewStock)
}

func TestReceiveEntireOrder_YaEntregada(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 20)
	now := time.Now()
	orderID := store.SeedOrder(
		entity.PurchaseOrder{
			OrderNumber:  "PO-20260830-101530-789",
			SupplierID:   1,
			Status:       entity.OrderStatusDelivered,
			ReceivedDate: &now,
		},
		entity.PurchaseOrderDetail{ProductID: productID, QuantityOrdered: 20, QuantityReceived: 20},
	)
	uc := newEngine(store)

	_, err := uc.ReceiveEntireOrder(context.Background(), orderID)

	assert.ErrorIs(t, err, domain.ErrOrderAlreadyDelivered)
	assert.Equal(t, 20, store.Products[productID].Stock)
	assert.Empty(t, store.MovementsFor(productID))
}

func TestReceiveEntireOrder_OrdenInexistente(t *testing.T) {
	store := testutil.NewStore()
	uc := newEngine(store)

	_, err := uc.ReceiveEntireOrder(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterAdjustment_Positivo(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 10)
	uc := newEngine(store)

	mov, err := uc.RegisterAdjustment(context.Background(), productID, 5, "conteo físico")

	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeAdjustment, mov.MovementType)
	assert.Equal(t, 5, mov.Quantity)
	assert.Equal(t, 10, mov.PreviousStock)
	assert.Equal(t, 15, mov.NewStock)
	assert.Equal(t, 15, store.Products[productID].Stock)
}

func TestRegisterAdjustment_NegativoNuncaBajoCero(t *testing.T) {
	store := testutil.NewStore()
	productID := seedActiveProduct(store, 3)
	uc := newEngine(store)

	_, err := uc.RegisterAdjustment(context.Background(), productID, -5, "merma")

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, store.Products[productID].Stock)
	assert.Empty(t, store.MovementsFor(productID))
}

func TestRegisterAdjustment_CantidadCero(t *testing.T) {
	store := testutil.NewStore()
	uc := newEngine(store)

	_, err := uc.RegisterAdjustment(context.Background(), 1, 0, "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterAdjustment_ProductoInactivo(t *testing.T) {
	store := testutil.NewStore()
	productID := store.SeedProduct(entity.Product{Code: "P-003", Stock: 10, IsActive: false})
	uc := newEngine(store)

	_, err := uc.RegisterAdjustment(context.Background(), productID, 1, "")

	assert.ErrorIs(t, err, domain.ErrProductInactive)
}

func TestListMovements_FiltraPorProducto(t *testing.T) {
	store := testutil.NewStore()
	p1 := seedActiveProduct(store, 10)
	p2 := store.SeedProduct(entity.Product{Code: "P-004", Stock: 10, IsActive: true})
	uc := newEngine(store)

	_, err := uc.RegisterAdjustment(context.Background(), p1, 1, "")
	require.NoError(t, err)
	_, err = uc.RegisterAdjustment(context.Background(), p2, 2, "")
	require.NoError(t, err)

	movs, err := uc.ListMovements(&p2, 20, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, p2, movs[0].ProductID)

	all, err := uc.ListMovements(nil, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
