package purchasing

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/purchasing"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// Intentos de número de orden aleatorio antes de caer al sufijo de milisegundos.
const maxOrderNumberAttempts = 10

// Descuento mayorista asumido para órdenes de reposición: 80% del precio de venta.
var restockCostFactor = decimal.NewFromFloat(0.8)

// OrderUseCase crea y gestiona órdenes de compra. La recepción (que muta
// stock) se delega por completo al motor de inventario.
type OrderUseCase struct {
	txRunner     inventory.TxRunner
	stock        *inventory.StockUseCase
	orderRepo    repository.PurchaseOrderRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner inventory.TxRunner,
	stock *inventory.StockUseCase,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		stock:        stock,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// generateOrderNumber produce un número único {PREFIX}-{YYYYMMDD}-{HHMMSS}-{RRR}.
// Tras maxOrderNumberAttempts colisiones usa el sufijo de milisegundos, que a
// resolución de reloj es único.
func (uc *OrderUseCase) generateOrderNumber(prefix string) (string, error) {
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		candidate := purchasing.FormatOrderNumber(prefix, time.Now(), 100+rand.IntN(900))
		exists, err := uc.orderRepo.ExistsByOrderNumber(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return purchasing.FallbackOrderNumber(prefix, time.Now()), nil
}

// CreateOrder valida proveedor y productos, calcula el total como la suma de
// unit_cost * quantity_ordered e inserta cabecera y detalles (con
// quantity_received = 0) en una transacción.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.SupplierID == 0 || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	total := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == 0 || item.QuantityOrdered <= 0 || item.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.QuantityOrdered))))
	}

	orderNumber, err := uc.generateOrderNumber(purchasing.OrderPrefixPurchase)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		OrderNumber:      orderNumber,
		SupplierID:       in.SupplierID,
		OrderDate:        now,
		ExpectedDelivery: in.ExpectedDelivery,
		Status:           entity.OrderStatusPending,
		TotalAmount:      total,
		Notes:            in.Notes,
		CreatedAt:        now,
	}
	details := make([]*entity.PurchaseOrderDetail, 0, len(in.Items))

	err = uc.txRunner.Run(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, item := range in.Items {
			detail := &entity.PurchaseOrderDetail{
				PurchaseOrderID: order.ID,
				ProductID:       item.ProductID,
				QuantityOrdered: item.QuantityOrdered,
				UnitCost:        item.UnitCost,
				TotalCost:       item.UnitCost.Mul(decimal.NewFromInt(int64(item.QuantityOrdered))),
			}
			if err := orderRepo.CreateDetail(detail); err != nil {
				return err
			}
			details = append(details, detail)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, details), nil
}

// CreateRestockOrder crea una orden de reposición de una sola línea para el
// proveedor del producto, con costo unitario al 80% del precio de venta.
func (uc *OrderUseCase) CreateRestockOrder(ctx context.Context, productID int64, quantity int) (*dto.OrderResponse, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrNotFound
	}
	if product.SupplierID == nil {
		return nil, domain.ErrNoSupplierAssigned
	}

	orderNumber, err := uc.generateOrderNumber(purchasing.OrderPrefixRestock)
	if err != nil {
		return nil, err
	}

	unitCost := product.Price.Mul(restockCostFactor)
	total := unitCost.Mul(decimal.NewFromInt(int64(quantity)))
	now := time.Now()
	order := &entity.PurchaseOrder{
		OrderNumber: orderNumber,
		SupplierID:  *product.SupplierID,
		OrderDate:   now,
		Status:      entity.OrderStatusPending,
		TotalAmount: total,
		Notes:       fmt.Sprintf("Orden de reposición para %s", product.Name),
		CreatedAt:   now,
	}
	var detail *entity.PurchaseOrderDetail

	err = uc.txRunner.Run(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		detail = &entity.PurchaseOrderDetail{
			PurchaseOrderID: order.ID,
			ProductID:       productID,
			QuantityOrdered: quantity,
			UnitCost:        unitCost,
			TotalCost:       total,
		}
		return orderRepo.CreateDetail(detail)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, []*entity.PurchaseOrderDetail{detail}), nil
}

// UpdateOrder aplica una actualización parcial de la cabecera. El estado
// delivered nunca se fija por esta vía (solo lo fija el motor al recibir), y
// una orden delivered o cancelled ya no admite cambios de estado.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, id int64, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	if in.Status != nil && *in.Status != order.Status {
		if err := validateManualTransition(order.Status, *in.Status); err != nil {
			return nil, err
		}
		order.Status = *in.Status
	}
	if in.ExpectedDelivery != nil {
		order.ExpectedDelivery = in.ExpectedDelivery
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}

	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	details, err := uc.orderRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, details), nil
}

// validateManualTransition máquina de estados para el update genérico:
// delivered solo lo fija el motor; delivered y cancelled son terminales.
func validateManualTransition(from, to string) error {
	switch to {
	case entity.OrderStatusPending, entity.OrderStatusInTransit, entity.OrderStatusCancelled:
	default:
		return domain.ErrInvalidStatusChange
	}
	if from == entity.OrderStatusDelivered || from == entity.OrderStatusCancelled {
		return domain.ErrInvalidStatusChange
	}
	return nil
}

// ReceiveOrder recibe la orden completa (delegado al motor de inventario).
func (uc *OrderUseCase) ReceiveOrder(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	order, err := uc.stock.ReceiveEntireOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := uc.orderRepo.ListDetails(order.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, details), nil
}

// ReceiveItems recibe cantidades parciales contra detalles concretos
// (delegado al motor de inventario).
func (uc *OrderUseCase) ReceiveItems(ctx context.Context, id int64, in dto.ReceiveItemsRequest) (*dto.OrderResponse, error) {
	items := make([]inventory.ReceiveItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.ReceiveItem{DetailID: it.DetailID, QuantityReceived: it.QuantityReceived})
	}
	order, err := uc.stock.ReceiveItems(ctx, id, items)
	if err != nil {
		return nil, err
	}
	details, err := uc.orderRepo.ListDetails(order.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, details), nil
}

// GetOrder devuelve una orden con sus líneas, o nil si no existe.
func (uc *OrderUseCase) GetOrder(id int64) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	details, err := uc.orderRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, details), nil
}

// ListOrders lista órdenes paginadas, sin detalles.
func (uc *OrderUseCase) ListOrders(limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteOrder elimina la orden y sus detalles. No revierte stock: solo las
// recepciones mutan inventario y quedan en el libro de movimientos.
func (uc *OrderUseCase) DeleteOrder(id int64) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.Delete(id)
}

func toOrderResponse(order *entity.PurchaseOrder, details []*entity.PurchaseOrderDetail) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:               order.ID,
		OrderNumber:      order.OrderNumber,
		SupplierID:       order.SupplierID,
		OrderDate:        order.OrderDate,
		ExpectedDelivery: order.ExpectedDelivery,
		ReceivedDate:     order.ReceivedDate,
		Status:           order.Status,
		TotalAmount:      order.TotalAmount,
		Notes:            order.Notes,
		Details:          make([]dto.OrderDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.OrderDetailResponse{
			ID:               d.ID,
			ProductID:        d.ProductID,
			QuantityOrdered:  d.QuantityOrdered,
			QuantityReceived: d.QuantityReceived,
			UnitCost:         d.UnitCost,
			TotalCost:        d.TotalCost,
		})
	}
	return out
}
