package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/application/purchasing"
	"github.com/tu-usuario/pos-backoffice/internal/application/reports"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP de inventario: alertas de stock
// bajo, reposición, ajustes manuales e historial de movimientos.
type InventoryHandler struct {
	stock   *inventory.StockUseCase
	orders  *purchasing.OrderUseCase
	reports *reports.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, orders *purchasing.OrderUseCase, reportUC *reports.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, orders: orders, reports: reportUC}
}

// LowStock godoc
// @Summary      Productos con stock en o bajo el umbral mínimo
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.LowStockItem
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reports.LowStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Restock godoc
// @Summary      Crear orden de reposición para un producto
// @Description  Genera una orden de compra al proveedor asignado del producto,
//
//	con costo unitario estimado a partir del precio de venta.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        product_id  path  int  true  "ID del producto"
// @Param        body        body  dto.RestockRequest  true  "Cantidad a pedir"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/restock/{product_id} [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("product_id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id inválido"})
	}
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.orders.CreateRestockOrder(c.Context(), int64(productID), in.Quantity)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor que cero"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if err == domain.ErrNoSupplierAssigned {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_SUPPLIER", Message: "el producto no tiene proveedor asignado"})
		}
		if err == domain.ErrProductInactive {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRODUCT_INACTIVE", Message: "producto inactivo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Aplica una cantidad con signo al stock del producto y registra
//
//	el movimiento de auditoría. Nunca deja el stock negativo.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "Producto, cantidad con signo y notas"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.stock.RegisterAdjustment(c.Context(), in.ProductID, in.Quantity, in.Notes)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity no puede ser cero"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if err == domain.ErrProductInactive {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRODUCT_INACTIVE", Message: "producto inactivo"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "el ajuste dejaría el stock negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Movements godoc
// @Summary      Historial de movimientos de inventario
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  int  false  "Filtrar por producto"
// @Param        limit       query  int  false  "Límite"   default(20)
// @Param        offset      query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	var productID *int64
	if v := c.QueryInt("product_id", 0); v > 0 {
		pid := int64(v)
		productID = &pid
	}
	movements, err := h.stock.ListMovements(productID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		MovementType:  m.MovementType,
		Quantity:      m.Quantity,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		MovementDate:  m.MovementDate,
		Notes:         m.Notes,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
	}
}
