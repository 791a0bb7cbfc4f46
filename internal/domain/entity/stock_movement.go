package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/domain"
)

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementTypeIn         = "in"         // recepción
	MovementTypeOut        = "out"        // salida (despacho, corrección a la baja)
	MovementTypeAdjustment = "adjustment" // ajuste manual al alza
	MovementTypeTransfer   = "transfer"   // mitad receptora de un traslado entre variantes
)

// IsValidMovementType indica si t es uno de los tipos soportados.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment, MovementTypeTransfer:
		return true
	}
	return false
}

// StockMovement es un registro del ledger: inmutable una vez escrito.
// Las correcciones se hacen con movimientos compensatorios, nunca editando filas.
// Quantity es siempre positiva; el signo lo determina el tipo.
type StockMovement struct {
	ID             string
	OrganizationID string
	ProductID      string
	VariantID      string
	Type           string
	Quantity       decimal.Decimal
	PreviousStock  decimal.Decimal
	NewStock       decimal.Decimal
	Reason         string // texto libre opcional
	Reference      string // id de orden, lote u otro documento externo
	LotNumber      string // opcional: movimiento atribuido a un lote
	TransactionID  string // agrupa las dos mitades de un traslado o las líneas de un despacho
	CreatedAt      time.Time
	CreatedBy      string // UserID
}

// SignedDelta devuelve el delta con signo según el tipo: "out" resta, el resto suma.
func SignedDelta(movType string, quantity decimal.Decimal) decimal.Decimal {
	if movType == MovementTypeOut {
		return quantity.Neg()
	}
	return quantity
}

// Validate verifica los invariantes que el ledger exige antes de aceptar la fila:
// tipo conocido, cantidad positiva, NewStock = PreviousStock + delta y NewStock >= 0.
// El ledger nunca calcula PreviousStock/NewStock; solo los verifica.
func (m *StockMovement) Validate() error {
	if !IsValidMovementType(m.Type) {
		return domain.ErrInvariantViolation
	}
	if !m.Quantity.IsPositive() {
		return domain.ErrInvariantViolation
	}
	expected := m.PreviousStock.Add(SignedDelta(m.Type, m.Quantity))
	if !m.NewStock.Equal(expected) {
		return domain.ErrInvariantViolation
	}
	if m.NewStock.IsNegative() {
		return domain.ErrInvariantViolation
	}
	return nil
}
