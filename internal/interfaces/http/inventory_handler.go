package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-engine/internal/application/dto"
	"github.com/tu-usuario/stock-engine/internal/application/inventory"
	dominventory "github.com/tu-usuario/stock-engine/internal/domain/inventory"
)

// InventoryHandler maneja las peticiones HTTP de ajustes, traslados, reservas
// y consultas de stock (protegido).
type InventoryHandler struct {
	adjust       *inventory.AdjustStockUseCase
	availability *inventory.AvailabilityUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjust *inventory.AdjustStockUseCase, availability *inventory.AvailabilityUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, availability: availability}
}

// Adjust godoc
// @Summary      Registrar ajuste de stock (in | out | adjustment)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "variant_id, type, quantity (entero positivo), reason, reference, lot_number (opcional, OUT descuenta del lote)"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	organizationID, userID, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.adjust.Adjust(c.Context(), inventory.AdjustInput{
		OrganizationID: organizationID,
		UserID:         userID,
		VariantID:      in.VariantID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		Reference:      in.Reference,
		LotNumber:      in.LotNumber,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AdjustmentResponse{
		Movement:     dto.NewMovementDTO(result.Movement),
		Availability: result.Availability,
	})
}

// Transfer godoc
// @Summary      Trasladar stock entre variantes
// @Description  Registra el par OUT origen / TRANSFER destino de forma atómica,
//
//	ambas mitades comparten transaction_id.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "from_variant_id, to_variant_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	organizationID, userID, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.adjust.Transfer(c.Context(), inventory.TransferInput{
		OrganizationID: organizationID,
		UserID:         userID,
		FromVariantID:  in.FromVariantID,
		ToVariantID:    in.ToVariantID,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		Reference:      in.Reference,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		OutMovement: dto.NewMovementDTO(result.OutMovement),
		InMovement:  dto.NewMovementDTO(result.InMovement),
		From:        result.From,
		To:          result.To,
	})
}

// Reserve godoc
// @Summary      Apartar stock disponible contra una orden
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReservationRequest  true  "variant_id, quantity"
// @Success      200   {object}  inventory.Availability
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations [post]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	return h.mutateReservation(c, true)
}

// Release godoc
// @Summary      Liberar una reserva de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReservationRequest  true  "variant_id, quantity"
// @Success      200   {object}  inventory.Availability
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations [delete]
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	return h.mutateReservation(c, false)
}

func (h *InventoryHandler) mutateReservation(c *fiber.Ctx, reserve bool) error {
	organizationID, _, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.ReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	var (
		av  *dominventory.Availability
		err error
	)
	if reserve {
		av, err = h.adjust.Reserve(c.Context(), organizationID, in.VariantID, in.Quantity)
	} else {
		av, err = h.adjust.Release(c.Context(), organizationID, in.VariantID, in.Quantity)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(av)
}

// Fulfill godoc
// @Summary      Despachar una orden (todas las líneas o ninguna)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FulfillOrderRequest  true  "order_id y líneas (variant_id, quantity, lot_number opcional)"
// @Success      201   {object}  dto.FulfillmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/fulfillment [post]
func (h *InventoryHandler) Fulfill(c *fiber.Ctx) error {
	organizationID, userID, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.FulfillOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	lines := make([]inventory.FulfillLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.FulfillLine{
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			LotNumber: l.LotNumber,
		})
	}
	result, err := h.adjust.FulfillOrder(c.Context(), inventory.FulfillInput{
		OrganizationID: organizationID,
		UserID:         userID,
		OrderID:        in.OrderID,
		Lines:          lines,
	})
	if err != nil {
		return writeError(c, err)
	}

	resp := dto.FulfillmentResponse{
		OrderID:        in.OrderID,
		Movements:      make([]dto.MovementDTO, 0, len(result.Movements)),
		Availabilities: result.Availabilities,
	}
	for _, m := range result.Movements {
		resp.Movements = append(resp.Movements, dto.NewMovementDTO(m))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// StockSummary godoc
// @Summary      Listado de inventario con conteos out/low/ok
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        class   query  string  false  "Filtro de clase: all | out | low | ok"
// @Param        search  query  string  false  "Búsqueda por SKU o nombre (insensible a tildes)"
// @Param        limit   query  int     false  "Tamaño de página (default 20, max 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) StockSummary(c *fiber.Ctx) error {
	organizationID, _, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}

	resp, err := h.availability.StockSummary(c.Context(), organizationID, c.Query("class"), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// VariantAvailability godoc
// @Summary      Disponibilidad de una variante
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        variantId  path  string  true  "ID de la variante"
// @Success      200  {object}  inventory.Availability
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{variantId} [get]
func (h *InventoryHandler) VariantAvailability(c *fiber.Ctx) error {
	organizationID, _, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	av, err := h.availability.VariantAvailability(c.Context(), organizationID, c.Params("variantId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(av)
}

// ListMovements godoc
// @Summary      Historial de movimientos del ledger
// @Description  Del más reciente al más antiguo, con orden estable entre llamadas.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        variant_id  query  string  false  "Filtrar por variante"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "in | out | adjustment | transfer"
// @Param        from        query  string  false  "Fecha inicial (RFC3339)"
// @Param        to          query  string  false  "Fecha final (RFC3339)"
// @Param        limit       query  int     false  "Tamaño de página (default 20, max 100)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	organizationID, _, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}

	q := inventory.MovementQuery{
		OrganizationID: organizationID,
		VariantID:      c.Query("variant_id"),
		ProductID:      c.Query("product_id"),
		Type:           c.Query("type"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'from' inválida (RFC3339)"})
		}
		q.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'to' inválida (RFC3339)"})
		}
		q.To = &t
	}

	resp, err := h.availability.ListMovements(c.Context(), q, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
