package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
)

// LotRepository acceso a los lotes (batches trazables).
type LotRepository interface {
	// Create persiste un lote nuevo. domain.ErrDuplicate si el número de lote
	// ya existe en la organización.
	Create(ctx context.Context, lot *entity.Lot) error

	// GetByNumber devuelve el lote por número (nil si no existe).
	GetByNumber(ctx context.Context, organizationID, lotNumber string) (*entity.Lot, error)

	// GetByNumberForUpdate igual que GetByNumber pero bloquea la fila; usar
	// dentro de una transacción antes de decrementar CurrentQuantity.
	GetByNumberForUpdate(ctx context.Context, organizationID, lotNumber string) (*entity.Lot, error)

	// UpdateQuantity escribe el nuevo saldo del lote.
	UpdateQuantity(ctx context.Context, id string, currentQuantity decimal.Decimal) error

	// ListByOrganization devuelve los lotes de la organización, más recientes primero.
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Lot, error)

	// SumCurrentByVariant suma el saldo de todos los lotes de una variante
	// (informe de conciliación lotes vs. contador).
	SumCurrentByVariant(ctx context.Context, organizationID, variantID string) (decimal.Decimal, error)
}
