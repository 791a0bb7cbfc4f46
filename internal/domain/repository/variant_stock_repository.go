package repository

import (
	"context"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
)

// VariantStockRow estado de stock junto con los datos de catálogo que
// necesitan los listados (JOIN con variants/products).
type VariantStockRow struct {
	State       entity.VariantStockState
	SKU         string
	VariantName string
	ProductName string
}

// VariantStockRepository acceso a los contadores desnormalizados por variante.
type VariantStockRepository interface {
	// Get devuelve el estado actual; si la variante aún no tiene fila, un estado en cero.
	Get(ctx context.Context, organizationID, variantID string) (*entity.VariantStockState, error)

	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	// Es la garantía de exclusividad por variante: debe llamarse dentro de una
	// transacción, antes de leer CurrentStock para calcular un movimiento.
	GetForUpdate(ctx context.Context, organizationID, variantID string) (*entity.VariantStockState, error)

	// Upsert escribe los contadores (por variante).
	Upsert(ctx context.Context, state *entity.VariantStockState) error

	// ListByOrganization devuelve todas las filas de stock de la organización
	// con SKU y nombres. El resumen necesita el conjunto completo para los
	// conteos out/low/ok; la paginación se aplica después de filtrar.
	ListByOrganization(ctx context.Context, organizationID string) ([]*VariantStockRow, error)
}
