package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/reports"
)

// DashboardHandler métricas del tablero.
type DashboardHandler struct {
	uc *reports.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Metrics godoc
// @Summary      Métricas del día
// @Description  Ventas e ingreso del día, total de productos activos y
//
//	cantidad de productos con stock bajo.
//
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardMetrics
// @Router       /api/dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.uc.DashboardMetrics(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// BestSelling godoc
// @Summary      Productos más vendidos (últimos 30 días)
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Máximo de productos"  default(10)
// @Success      200    {array}  dto.BestSellingProduct
// @Router       /api/dashboard/best-selling [get]
func (h *DashboardHandler) BestSelling(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	out, err := h.uc.BestSelling(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
