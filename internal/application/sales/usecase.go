package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// SaleUseCase crea y gestiona ventas. La creación valida y descuenta stock vía
// el motor de inventario dentro de una sola transacción: o se insertan la
// venta, sus líneas, los descuentos de stock y los movimientos, o nada.
type SaleUseCase struct {
	txRunner    inventory.TxRunner
	stock       *inventory.StockUseCase
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner inventory.TxRunner,
	stock *inventory.StockUseCase,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		stock:       stock,
		productRepo: productRepo,
		saleRepo:    saleRepo,
	}
}

// CreateSale valida cada línea contra el producto vivo, calcula subtotales y
// total (subtotales + impuesto - descuento) e inserta todo atómicamente.
// Si cualquier línea falla no queda ninguna mutación (sin ventas parciales).
func (uc *SaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 || in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxAmount.IsNegative() || in.DiscountAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == 0 || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		// Toda la lista se valida antes de mutar nada: si una línea falla,
		// la operación completa se rechaza sin ventas parciales.
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if !product.IsActive {
			return nil, domain.ErrProductInactive
		}
		if product.Stock < item.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		// Precio por defecto: el del producto al momento de la venta (snapshot).
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
	}

	// Total calculado una sola vez, antes de insertar nada.
	total := decimal.Zero
	subtotals := make([]decimal.Decimal, len(in.Items))
	for i, item := range in.Items {
		subtotals[i] = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotals[i])
	}
	total = total.Add(in.TaxAmount).Sub(in.DiscountAmount)

	now := time.Now()
	sale := &entity.Sale{
		Fecha:          now,
		Total:          total,
		TaxAmount:      in.TaxAmount,
		DiscountAmount: in.DiscountAmount,
		PaymentMethod:  in.PaymentMethod,
		CustomerName:   in.CustomerName,
		Notes:          in.Notes,
	}
	details := make([]*entity.SaleDetail, 0, len(in.Items))

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for i, item := range in.Items {
			// Reverifica stock >= cantidad bajo FOR UPDATE y descuenta.
			previous, current, err := uc.stock.ReserveAndDecrementInTx(productRepo, item.ProductID, item.Quantity, now)
			if err != nil {
				return err
			}
			detail := &entity.SaleDetail{
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  subtotals[i],
			}
			if err := saleRepo.CreateDetail(detail); err != nil {
				return err
			}
			saleID := sale.ID
			mov := &entity.InventoryMovement{
				ProductID:     item.ProductID,
				MovementType:  entity.MovementTypeSale,
				Quantity:      -item.Quantity,
				ReferenceType: entity.ReferenceTypeSale,
				ReferenceID:   &saleID,
				MovementDate:  now,
				Notes:         fmt.Sprintf("Venta #%d", sale.ID),
				PreviousStock: previous,
				NewStock:      current,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			details = append(details, detail)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, details), nil
}

// DeleteSale elimina una venta reponiendo el stock de cada línea y dejando un
// movimiento return por línea, todo en una transacción. El libro de auditoría
// queda cuadrado: la reversa es un evento nuevo, los movimientos originales
// no se tocan.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		details, err := saleRepo.ListDetails(id)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, d := range details {
			product, err := productRepo.GetForUpdate(d.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			previous := product.Stock
			current := previous + d.Quantity
			if err := productRepo.UpdateStock(d.ProductID, current, now); err != nil {
				return err
			}
			saleID := sale.ID
			mov := &entity.InventoryMovement{
				ProductID:     d.ProductID,
				MovementType:  entity.MovementTypeReturn,
				Quantity:      d.Quantity,
				ReferenceType: entity.ReferenceTypeSale,
				ReferenceID:   &saleID,
				MovementDate:  now,
				Notes:         fmt.Sprintf("Reversa venta #%d", sale.ID),
				PreviousStock: previous,
				NewStock:      current,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return saleRepo.Delete(id)
	})
}

// GetSale devuelve una venta con sus líneas, o nil si no existe.
func (uc *SaleUseCase) GetSale(id int64) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	details, err := uc.saleRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, details), nil
}

// ListSales lista ventas paginadas, sin detalles.
func (uc *SaleUseCase) ListSales(limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSaleResponse(sale *entity.Sale, details []*entity.SaleDetail) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:             sale.ID,
		Fecha:          sale.Fecha,
		Total:          sale.Total,
		TaxAmount:      sale.TaxAmount,
		DiscountAmount: sale.DiscountAmount,
		PaymentMethod:  sale.PaymentMethod,
		CustomerName:   sale.CustomerName,
		Notes:          sale.Notes,
		Details:        make([]dto.SaleDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.SaleDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	return out
}
