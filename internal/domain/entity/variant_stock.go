package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariantStockState contadores desnormalizados de stock por variante.
// El ledger es la fuente de verdad: CurrentStock debe coincidir siempre con
// el NewStock del movimiento más reciente de la variante. Este registro es un
// cache de escritura (write-through) que solo se actualiza dentro de la misma
// transacción que añade el movimiento.
type VariantStockState struct {
	VariantID      string
	ProductID      string
	OrganizationID string
	CurrentStock   decimal.Decimal
	ReservedStock  decimal.Decimal
	// LowStockThreshold nil = usar el umbral por defecto de la organización.
	LowStockThreshold *decimal.Decimal
	UpdatedAt         time.Time
}
