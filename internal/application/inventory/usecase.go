package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// StockUseCase es la única autoridad que muta products.stock. Toda mutación
// ocurre dentro de una transacción con bloqueo de fila (SELECT FOR UPDATE) y
// deja exactamente un registro en inventory_movements cuyo previous_stock /
// new_stock encuadra el cambio.
type StockUseCase struct {
	txRunner TxRunner
	movRepo  repository.InventoryMovementRepository
}

// NewStockUseCase construye el motor de inventario.
func NewStockUseCase(txRunner TxRunner, movRepo repository.InventoryMovementRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, movRepo: movRepo}
}

// ReceiveItem cantidad solicitada contra un detalle de orden.
type ReceiveItem struct {
	DetailID         int64
	QuantityReceived int
}

// ReserveAndDecrementInTx valida y descuenta stock para una línea de venta,
// usando los repositorios del caller (misma transacción). Relee la fila con
// FOR UPDATE para que la verificación stock >= cantidad y la escritura sean
// atómicas frente a ventas concurrentes. Devuelve el stock previo y el nuevo
// para que el caller registre el movimiento.
func (uc *StockUseCase) ReserveAndDecrementInTx(
	productRepo repository.ProductRepository,
	productID int64,
	quantity int,
	now time.Time,
) (previous, current int, err error) {
	if quantity <= 0 {
		return 0, 0, domain.ErrInvalidInput
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return 0, 0, err
	}
	if product == nil {
		return 0, 0, domain.ErrNotFound
	}
	if !product.IsActive {
		return 0, 0, domain.ErrProductInactive
	}
	if product.Stock < quantity {
		return 0, 0, domain.ErrInsufficientStock
	}
	previous = product.Stock
	current = previous - quantity
	if err := productRepo.UpdateStock(productID, current, now); err != nil {
		return 0, 0, err
	}
	return previous, current, nil
}

// restockInTx incrementa el stock de un producto bajo bloqueo de fila.
// A diferencia de la venta, acepta productos inactivos: una recepción o una
// reversa sobre un producto dado de baja sigue siendo contablemente válida.
func (uc *StockUseCase) restockInTx(
	productRepo repository.ProductRepository,
	productID int64,
	delta int,
	now time.Time,
) (previous, current int, err error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return 0, 0, err
	}
	if product == nil {
		return 0, 0, domain.ErrNotFound
	}
	previous = product.Stock
	current = previous + delta
	if current < 0 {
		return 0, 0, domain.ErrInsufficientStock
	}
	if err := productRepo.UpdateStock(productID, current, now); err != nil {
		return 0, 0, err
	}
	return previous, current, nil
}

// receiveDetailInTx aplica una recepción contra un detalle dentro de la tx
// activa. Clampa en silencio la sobre-entrega a quantity_ordered y el delta de
// stock aplicado es el post-clamp, no el solicitado. Devuelve el detalle
// actualizado y el delta realmente aplicado (0 si la línea ya estaba completa).
func (uc *StockUseCase) receiveDetailInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
	order *entity.PurchaseOrder,
	detailID int64,
	quantity int,
	now time.Time,
) (*entity.PurchaseOrderDetail, int, error) {
	detail, err := orderRepo.GetDetail(detailID)
	if err != nil {
		return nil, 0, err
	}
	if detail == nil || detail.PurchaseOrderID != order.ID {
		return nil, 0, domain.ErrDetailNotFound
	}

	applied := quantity
	if detail.QuantityReceived+applied > detail.QuantityOrdered {
		applied = detail.QuantityOrdered - detail.QuantityReceived
	}
	if applied <= 0 {
		// Línea ya completa: la sobre-entrega se descarta sin error.
		return detail, 0, nil
	}

	detail.QuantityReceived += applied
	if err := orderRepo.UpdateDetailReceived(detail.ID, detail.QuantityReceived); err != nil {
		return nil, 0, err
	}

	previous, current, err := uc.restockInTx(productRepo, detail.ProductID, applied, now)
	if err != nil {
		return nil, 0, err
	}

	orderID := order.ID
	mov := &entity.InventoryMovement{
		ProductID:     detail.ProductID,
		MovementType:  entity.MovementTypePurchase,
		Quantity:      applied,
		ReferenceType: entity.ReferenceTypePurchaseOrder,
		ReferenceID:   &orderID,
		MovementDate:  now,
		Notes:         fmt.Sprintf("Recepción orden %s", order.OrderNumber),
		PreviousStock: previous,
		NewStock:      current,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, 0, err
	}
	return detail, applied, nil
}

// evaluateCompletionInTx recalcula si todos los detalles están completos y, de
// ser así, marca la orden como delivered y estampa received_date. Reevaluar una
// orden ya entregada es un no-op (idempotente).
func (uc *StockUseCase) evaluateCompletionInTx(
	orderRepo repository.PurchaseOrderRepository,
	order *entity.PurchaseOrder,
	now time.Time,
) (bool, error) {
	if order.Status == entity.OrderStatusDelivered {
		return false, nil
	}
	details, err := orderRepo.ListDetails(order.ID)
	if err != nil {
		return false, err
	}
	if len(details) == 0 {
		return false, nil
	}
	for _, d := range details {
		if !d.FullyReceived() {
			return false, nil
		}
	}
	if err := orderRepo.MarkDelivered(order.ID, now); err != nil {
		return false, err
	}
	order.Status = entity.OrderStatusDelivered
	order.ReceivedDate = &now
	return true, nil
}

// ReceiveAgainstDetail registra una recepción contra un único detalle y evalúa
// la completitud de la orden, todo en una transacción. Devuelve el detalle
// actualizado y el delta de stock aplicado (post-clamp).
func (uc *StockUseCase) ReceiveAgainstDetail(
	ctx context.Context,
	orderID, detailID int64,
	quantity int,
) (*entity.PurchaseOrderDetail, int, error) {
	if quantity <= 0 {
		return nil, 0, domain.ErrInvalidInput
	}
	var detail *entity.PurchaseOrderDetail
	var applied int
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		detail, applied, err = uc.receiveDetailInTx(movRepo, productRepo, orderRepo, order, detailID, quantity, now)
		if err != nil {
			return err
		}
		_, err = uc.evaluateCompletionInTx(orderRepo, order, now)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return detail, applied, nil
}

// ReceiveItems registra un evento de recepción parcial con varias líneas en
// una sola transacción. Las cantidades no positivas se ignoran; un detalle que
// no pertenece a la orden aborta el evento completo con rollback.
func (uc *StockUseCase) ReceiveItems(
	ctx context.Context,
	orderID int64,
	items []ReceiveItem,
) (*entity.PurchaseOrder, error) {
	var result *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		for _, item := range items {
			if item.QuantityReceived <= 0 {
				continue
			}
			if _, _, err := uc.receiveDetailInTx(movRepo, productRepo, orderRepo, order, item.DetailID, item.QuantityReceived, now); err != nil {
				return err
			}
		}
		if _, err := uc.evaluateCompletionInTx(orderRepo, order, now); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReceiveEntireOrder marca todos los detalles como recibidos por completo,
// aplica los deltas de stock por producto y entrega la orden. Todo-o-nada:
// cualquier fallo a mitad del bucle revierte los incrementos ya aplicados.
func (uc *StockUseCase) ReceiveEntireOrder(ctx context.Context, orderID int64) (*entity.PurchaseOrder, error) {
	var result *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusDelivered {
			return domain.ErrOrderAlreadyDelivered
		}
		details, err := orderRepo.ListDetails(order.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, d := range details {
			remaining := d.QuantityOrdered - d.QuantityReceived
			if remaining <= 0 {
				continue
			}
			if err := orderRepo.UpdateDetailReceived(d.ID, d.QuantityOrdered); err != nil {
				return err
			}
			previous, current, err := uc.restockInTx(productRepo, d.ProductID, remaining, now)
			if err != nil {
				return err
			}
			refID := order.ID
			mov := &entity.InventoryMovement{
				ProductID:     d.ProductID,
				MovementType:  entity.MovementTypePurchase,
				Quantity:      remaining,
				ReferenceType: entity.ReferenceTypePurchaseOrder,
				ReferenceID:   &refID,
				MovementDate:  now,
				Notes:         fmt.Sprintf("Recepción orden %s", order.OrderNumber),
				PreviousStock: previous,
				NewStock:      current,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		if err := orderRepo.MarkDelivered(order.ID, now); err != nil {
			return err
		}
		order.Status = entity.OrderStatusDelivered
		order.ReceivedDate = &now
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RegisterAdjustment aplica un ajuste manual de stock (cantidad con signo) y
// deja el movimiento de auditoría correspondiente. Un ajuste negativo nunca
// puede dejar el stock por debajo de cero.
func (uc *StockUseCase) RegisterAdjustment(
	ctx context.Context,
	productID int64,
	quantity int,
	notes string,
) (*entity.InventoryMovement, error) {
	if quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
	) error {
		now := time.Now()
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.IsActive {
			return domain.ErrProductInactive
		}
		previous := product.Stock
		current := previous + quantity
		if current < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(productID, current, now); err != nil {
			return err
		}
		mov = &entity.InventoryMovement{
			ProductID:     productID,
			MovementType:  entity.MovementTypeAdjustment,
			Quantity:      quantity,
			ReferenceType: entity.ReferenceTypeAdjustment,
			MovementDate:  now,
			Notes:         notes,
			PreviousStock: previous,
			NewStock:      current,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ListMovements devuelve el historial de movimientos, opcionalmente filtrado
// por producto. Solo lectura, fuera de transacción.
func (uc *StockUseCase) ListMovements(productID *int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	if productID != nil {
		return uc.movRepo.ListByProduct(*productID, limit, offset)
	}
	return uc.movRepo.List(limit, offset)
}
