package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-engine/internal/application/dto"
	"github.com/tu-usuario/stock-engine/internal/domain/inventory"
	"github.com/tu-usuario/stock-engine/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// o se confirma la unidad completa (movimiento + contadores + lote) o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.VariantStockRepository,
		lotRepo repository.LotRepository,
	) error) error
}

// AvailabilityCache cache read-through de instantáneas de disponibilidad.
// Es una optimización de lectura: las fallas del cache nunca son fatales y
// los snapshots pueden quedar levemente desfasados (la UI re-consulta tras
// cada mutación). Implementación nil = sin cache.
type AvailabilityCache interface {
	Get(ctx context.Context, organizationID, variantID string) (*inventory.Availability, bool)
	Set(ctx context.Context, organizationID string, snapshot inventory.Availability)
	Invalidate(ctx context.Context, organizationID string, variantIDs ...string)
}

// LowStockReportGenerator genera el informe PDF de stock bajo.
type LowStockReportGenerator interface {
	Generate(ctx context.Context, organizationID string, generatedAt time.Time, items []dto.StockSummaryItemDTO) ([]byte, error)
}
