package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-engine/internal/application/dto"
	"github.com/tu-usuario/stock-engine/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP. Todos los handlers
// pasan por aquí para que el mapeo sea uno solo.
//
//	400 entrada/cantidad inválida        409 conflicto de stock/lote/duplicado
//	403 recurso de otra organización     500 interno (invariante incluida, sin detalle)
//	404 no encontrado                    503 almacenamiento no disponible (reintentable)
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser un entero positivo"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrLotOverdraw):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOT_OVERDRAW", Message: "la cantidad excede el saldo del lote"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacenamiento no disponible, reintente"})
	default:
		// ErrInvariantViolation cae aquí a propósito: el detalle queda en el
		// log, al cliente solo le llega un 500 genérico.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// requireAuth valida que el middleware haya poblado la identidad.
func requireAuth(c *fiber.Ctx) (organizationID, userID string, ok bool) {
	organizationID = GetOrganizationID(c)
	userID = GetUserID(c)
	if organizationID == "" || userID == "" {
		return "", "", false
	}
	return organizationID, userID, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}
