package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
)

// MovementFilter criterios de listado del ledger. VariantID y ProductID son
// excluyentes en la práctica; si ambos vienen, se aplican ambos.
type MovementFilter struct {
	OrganizationID string
	VariantID      string
	ProductID      string
	Type           string
	From           *time.Time
	To             *time.Time
}

// StockMovementRepository acceso al ledger append-only de movimientos.
// No hay Update ni Delete: las correcciones son movimientos compensatorios.
type StockMovementRepository interface {
	// Create valida la cadena previous->new antes de aceptar la fila
	// (domain.ErrInvariantViolation si no cuadra).
	Create(ctx context.Context, movement *entity.StockMovement) error

	// List devuelve movimientos del más reciente al más antiguo. Orden estable:
	// dos llamadas sobre un ledger sin cambios devuelven la misma secuencia.
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)

	// LastByVariant devuelve el movimiento más reciente de una variante (nil si no hay).
	LastByVariant(ctx context.Context, organizationID, variantID string) (*entity.StockMovement, error)
}
