package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de un lote. Nunca se almacenan: se recalculan en cada consulta.
const (
	LotStatusActive   = "active"
	LotStatusExpiring = "expiring"
	LotStatusDepleted = "depleted"
)

// Lot es un batch trazable de stock de una variante, opcionalmente con vencimiento.
// Los lotes son una capa de trazabilidad opcional: no todo movimiento se atribuye
// a un lote, y la suma de lotes no tiene por qué igualar el stock de la variante.
type Lot struct {
	ID              string
	OrganizationID  string
	LotNumber       string // único por organización
	ProductID       string
	VariantID       string
	InitialQuantity decimal.Decimal
	CurrentQuantity decimal.Decimal // 0 <= CurrentQuantity <= InitialQuantity
	ManufacturedAt  time.Time
	ExpiryDate      *time.Time // nil = sin vencimiento
	Supplier        string
	Notes           string
	CreatedAt       time.Time
	CreatedBy       string
}
