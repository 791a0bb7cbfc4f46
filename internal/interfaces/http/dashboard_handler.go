package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-engine/internal/application/inventory"
)

// DashboardHandler widget de stock bajo e informe PDF (protegido).
type DashboardHandler struct {
	availability *inventory.AvailabilityUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(availability *inventory.AvailabilityUseCase) *DashboardHandler {
	return &DashboardHandler{availability: availability}
}

// LowStock godoc
// @Summary      Widget de stock bajo
// @Description  Variantes agotadas o bajo el umbral, agotadas primero y luego
//
//	por disponible ascendente.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockSummaryItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/low-stock [get]
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	organizationID, _, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	items, err := h.availability.LowStockDashboard(c.Context(), organizationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(items),
		"items": items,
	})
}

// LowStockReport godoc
// @Summary      Informe PDF de stock bajo
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock.pdf [get]
func (h *DashboardHandler) LowStockReport(c *fiber.Ctx) error {
	organizationID, _, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	pdfBytes, err := h.availability.LowStockReportPDF(c.Context(), organizationID)
	if err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("stock-bajo-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
