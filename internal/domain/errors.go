package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser un entero positivo")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrLotOverdraw       = errors.New("la cantidad excede el saldo del lote")

	// ErrInvariantViolation indica un bug aguas arriba: la cadena
	// previous_stock -> new_stock del ledger no cuadra. Nunca se espera
	// en operación normal; se loguea con contexto completo y al cliente
	// le llega un 500 genérico.
	ErrInvariantViolation = errors.New("violación de invariante del ledger")

	// ErrStoreUnavailable falla transitoria de infraestructura. Seguro de
	// reintentar: la operación es atómica y no dejó estado parcial.
	ErrStoreUnavailable = errors.New("almacenamiento no disponible")
)
