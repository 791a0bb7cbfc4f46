package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-engine/internal/application/dto"
	"github.com/tu-usuario/stock-engine/internal/application/inventory"
)

// LotHandler maneja las peticiones HTTP de lotes (protegido).
type LotHandler struct {
	uc *inventory.LotUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *inventory.LotUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar un lote recibido
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "lot_number (único por organización), variant_id, initial_quantity, manufactured_at, expiry_date (opcional), supplier, notes"
// @Success      201   {object}  dto.LotDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/lots [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	organizationID, userID, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	lot, err := h.uc.Create(c.Context(), inventory.CreateLotInput{
		OrganizationID:  organizationID,
		UserID:          userID,
		LotNumber:       in.LotNumber,
		VariantID:       in.VariantID,
		InitialQuantity: in.InitialQuantity,
		ManufacturedAt:  in.ManufacturedAt,
		ExpiryDate:      in.ExpiryDate,
		Supplier:        in.Supplier,
		Notes:           in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lot)
}

// Consume godoc
// @Summary      Descontar saldo de un lote
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        lotNumber  path  string                 true  "Número de lote"
// @Param        body       body  dto.ConsumeLotRequest  true  "quantity (entero positivo, no mayor al saldo)"
// @Success      200  {object}  dto.LotDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots/{lotNumber}/consume [post]
func (h *LotHandler) Consume(c *fiber.Ctx) error {
	organizationID, _, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.ConsumeLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	lot, err := h.uc.Consume(c.Context(), organizationID, c.Params("lotNumber"), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(lot)
}

// List godoc
// @Summary      Listado de lotes con estado derivado y conteos de alertas
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro: all | active | expiring | depleted"
// @Param        search  query  string  false  "Búsqueda por número de lote o proveedor"
// @Success      200  {object}  dto.LotListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	organizationID, _, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	resp, err := h.uc.List(c.Context(), organizationID, c.Query("status"), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Reconciliation godoc
// @Summary      Conciliación lotes vs. contador de la variante
// @Description  Informe de solo lectura: el delta no se trata como error porque
//
//	no todo movimiento se atribuye a un lote.
//
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        variant_id  query  string  true  "ID de la variante"
// @Success      200  {object}  dto.LotReconciliationDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots/reconciliation [get]
func (h *LotHandler) Reconciliation(c *fiber.Ctx) error {
	organizationID, _, ok := requireAuth(c)
	if !ok {
		return unauthorized(c)
	}
	resp, err := h.uc.Reconciliation(c.Context(), organizationID, c.Query("variant_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
