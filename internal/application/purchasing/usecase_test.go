package purchasing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/application/purchasing"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/testutil"
)

func newOrderUseCase(store *testutil.Store) *purchasing.OrderUseCase {
	txRunner := testutil.NewTxRunner(store)
	stock := inventory.NewStockUseCase(txRunner, testutil.NewMovementRepo(store))
	return purchasing.NewOrderUseCase(
		txRunner, stock,
		testutil.NewOrderRepo(store),
		testutil.NewProductRepo(store),
		testutil.NewSupplierRepo(store),
	)
}

func seedSupplierAndProduct(store *testutil.Store) (supplierID, productID int64) {
	supplierID = store.SeedSupplier(entity.Supplier{
		Name:          "Distribuidora Norte",
		ContactPerson: "Ana Ruiz",
		Phone:         "3001234567",
	})
	productID = store.SeedProduct(entity.Product{
		Code:       "CAFE-500",
		Name:       "Café molido 500g",
		Price:      decimal.NewFromInt(25),
		Stock:      2,
		MinStock:   5,
		SupplierID: &supplierID,
		IsActive:   true,
	})
	return supplierID, productID
}

func TestCreateOrder_TotalYDetalles(t *testing.T) {
	store := testutil.NewStore()
	supplierID, productID := seedSupplierAndProduct(store)
	uc := newOrderUseCase(store)

	out, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: supplierID,
		Items: []dto.OrderItemRequest{
			{ProductID: productID, QuantityOrdered: 20, UnitCost: decimal.NewFromInt(10)},
		},
		Notes: "pedido mensual",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.True(t, strings.HasPrefix(out.OrderNumber, "PO-"), "número de orden: %s", out.OrderNumber)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(200)), "total = 10 * 20")
	require.Len(t, out.Details, 1)
	assert.Equal(t, 0, out.Details[0].QuantityReceived, "toda línea nace sin recepciones")
	assert.True(t, out.Details[0].TotalCost.Equal(decimal.NewFromInt(200)), "total_cost fijado al crear")
	// Crear una orden jamás toca el stock.
	assert.Equal(t, 2, store.Products[productID].Stock)
}

func TestCreateOrder_ProveedorInexistente(t *testing.T) {
	store := testutil.NewStore()
	uc := newOrderUseCase(store)

	_, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: 404,
		Items:      []dto.OrderItemRequest{{ProductID: 1, QuantityOrdered: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_LineaInvalida(t *testing.T) {
	store := testutil.NewStore()
	supplierID, productID := seedSupplierAndProduct(store)
	uc := newOrderUseCase(store)

	_, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: supplierID,
		Items: []dto.OrderItemRequest{
			{ProductID: productID, QuantityOrdered: 0},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Orders)
}

func TestCreateRestockOrder_CostoAl80PorCiento(t *testing.T) {
	store := testutil.NewStore()
	supplierID, productID := seedSupplierAndProduct(store)
	uc := newOrderUseCase(store)

	out, err := uc.CreateRestockOrder(context.Background(), productID, 50)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.OrderNumber, "RST-"), "número de orden: %s", out.OrderNumber)
	assert.Equal(t, supplierID, out.SupplierID, "la orden va al proveedor asignado del producto")
	require.Len(t, out.Details, 1)
	// 25 * 0.8 = 20 por unidad; 20 * 50 = 1000.
	assert.True(t, out.Details[0].UnitCost.Equal(decimal.NewFromInt(20)), "unit_cost: %s", out.Details[0].UnitCost)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(1000)), "total: %s", out.TotalAmount)
	assert.Contains(t, out.Notes, "Café molido 500g")
}

func TestCreateRestockOrder_SinProveedorAsignado(t *testing.T) {
	store := testutil.NewStore()
	productID := store.SeedProduct(entity.Product{
		Code: "HUERFANO-1", Price: decimal.NewFromInt(10), Stock: 0, IsActive: true,
	})
	uc := newOrderUseCase(store)

	_, err := uc.CreateRestockOrder(context.Background(), productID, 10)

	assert.ErrorIs(t, err, domain.ErrNoSupplierAssigned)
}

func TestCreateRestockOrder_CantidadInvalida(t *testing.T) {
	store := testutil.NewStore()
	_, productID := seedSupplierAndProduct(store)
	uc := newOrderUseCase(store)

	_, err := uc.CreateRestockOrder(context.Background(), productID, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateOrder_TransicionesManuales(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"pending a in_transit", entity.OrderStatusPending, entity.OrderStatusInTransit, false},
		{"pending a cancelled", entity.OrderStatusPending, entity.OrderStatusCancelled, false},
		{"in_transit a cancelled", entity.OrderStatusInTransit, entity.OrderStatusCancelled, false},
		{"in_transit a pending", entity.OrderStatusInTransit, entity.OrderStatusPending, false},
		{"delivered solo lo fija el motor", entity.OrderStatusPending, entity.OrderStatusDelivered, true},
		{"delivered es terminal", entity.OrderStatusDelivered, entity.OrderStatusCancelled, true},
		{"cancelled es terminal", entity.OrderStatusCancelled, entity.OrderStatusPending, true},
		{"estado desconocido", entity.OrderStatusPending, "shipped", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := testutil.NewStore()
			orderID := store.SeedOrder(entity.PurchaseOrder{
				OrderNumber: "PO-20260830-101530-321",
				SupplierID:  1,
				Status:      tc.from,
			})
			uc := newOrderUseCase(store)

			out, err := uc.UpdateOrder(context.Background(), orderID, dto.UpdateOrderRequest{Status: &tc.to})

			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
				assert.Equal(t, tc.from, store.Orders[orderID].Status, "un rechazo no cambia el estado")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.to, out.Status)
			}
		})
	}
}

func TestUpdateOrder_SoloNotasNoTocaEstado(t *testing.T) {
	store := testutil.NewStore()
	orderID := store.SeedOrder(entity.PurchaseOrder{
		OrderNumber: "PO-20260830-101530-654",
		SupplierID:  1,
		Status:      entity.OrderStatusDelivered,
	})
	uc := newOrderUseCase(store)

	notes := "entregada en bodega 2"
	out, err := uc.UpdateOrder(context.Background(), orderID, dto.UpdateOrderRequest{Notes: &notes})

	require.NoError(t, err, "notas y entrega esperada siguen siendo editables en órdenes terminales")
	assert.Equal(t, notes, out.Notes)
	assert.Equal(t, entity.OrderStatusDelivered, out.Status)
}

func TestReceiveOrder_DelegaAlMotor(t *testing.T) {
	store := testutil.NewStore()
	supplierID, productID := seedSupplierAndProduct(store)
	uc := newOrderUseCase(store)

	created, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: supplierID,
		Items: []dto.OrderItemRequest{
			{ProductID: productID, QuantityOrdered: 20, UnitCost: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	out, err := uc.ReceiveOrder(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, out.Status)
	require.Len(t, out.Details, 1)
	assert.Equal(t, 20, out.Details[0].QuantityReceived)
	assert.Equal(t, 22, store.Products[productID].Stock, "2 existentes + 20 recibidas")
}

func TestReceiveItems_ParcialNoEntrega(t *testing.T) {
	store := testutil.NewStore()
	supplierID, productID := seedSupplierAndProduct(store)
	uc := newOrderUseCase(store)

	created, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: supplierID,
		Items: []dto.OrderItemRequest{
			{ProductID: productID, QuantityOrdered: 20, UnitCost: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	out, err := uc.ReceiveItems(context.Background(), created.ID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiveItemRequest{{DetailID: created.Details[0].ID, QuantityReceived: 5}},
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.Equal(t, 5, out.Details[0].QuantityReceived)
	assert.Equal(t, 7, store.Products[productID].Stock)
}

func TestDeleteOrder_NoRevierteStock(t *testing.T) {
	store := testutil.NewStore()
	supplierID, productID := seedSupplierAndProduct(store)
	uc := newOrderUseCase(store)

	created, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: supplierID,
		Items: []dto.OrderItemRequest{
			{ProductID: productID, QuantityOrdered: 20, UnitCost: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	_, err = uc.ReceiveItems(context.Background(), created.ID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiveItemRequest{{DetailID: created.Details[0].ID, QuantityReceived: 5}},
	})
	require.NoError(t, err)

	err = uc.DeleteOrder(created.ID)

	require.NoError(t, err)
	assert.Empty(t, store.Orders)
	assert.Empty(t, store.OrderDetails)
	// El stock recibido y su movimiento de auditoría se conservan.
	assert.Equal(t, 7, store.Products[productID].Stock)
	assert.Len(t, store.MovementsFor(productID), 1)
}

func TestGetOrder_DevuelveNilSiNoExiste(t *testing.T) {
	store := testutil.NewStore()
	uc := newOrderUseCase(store)

	out, err := uc.GetOrder(404)

	require.NoError(t, err)
	assert.Nil(t, out)
}
