package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/reports"
)

const dateLayout = "2006-01-02"

// ReportHandler reportes agregados de ventas y productos.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales godoc
// @Summary      Ventas agregadas por día
// @Tags         reports
// @Produce      json
// @Param        start_date  query  string  true  "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  true  "Fin (YYYY-MM-DD)"
// @Success      200  {array}   dto.SalesReportItem
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	start, err := time.Parse(dateLayout, c.Query("start_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido (YYYY-MM-DD)"})
	}
	end, err := time.Parse(dateLayout, c.Query("end_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido (YYYY-MM-DD)"})
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date debe ser posterior a start_date"})
	}
	out, err := h.uc.SalesReport(c.Context(), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Ventas acumuladas por producto
// @Description  Incluye productos sin ventas en el rango. Todos los filtros
//
//	son opcionales.
//
// @Tags         reports
// @Produce      json
// @Param        start_date   query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Fin (YYYY-MM-DD)"
// @Param        category_id  query  int     false  "Filtrar por categoría"
// @Success      200  {array}   dto.ProductReportItem
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/products [get]
func (h *ReportHandler) Products(c *fiber.Ctx) error {
	var start, end *time.Time
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido (YYYY-MM-DD)"})
		}
		start = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido (YYYY-MM-DD)"})
		}
		end = &t
	}
	var categoryID *int64
	if v := c.QueryInt("category_id", 0); v > 0 {
		cid := int64(v)
		categoryID = &cid
	}
	out, err := h.uc.ProductsReport(c.Context(), start, end, categoryID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
