package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/application/dto"
	"github.com/tu-usuario/stock-engine/internal/domain"
	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	"github.com/tu-usuario/stock-engine/internal/domain/inventory"
	"github.com/tu-usuario/stock-engine/internal/domain/repository"
	"github.com/tu-usuario/stock-engine/pkg/logger"
	"github.com/tu-usuario/stock-engine/pkg/search"
)

// AvailabilityUseCase rutas de lectura del motor: resumen de inventario con
// conteos, historial de movimientos, widget de stock bajo e informe PDF.
// Las lecturas no bloquean nada: pueden ver un snapshot levemente desfasado
// respecto del último ajuste confirmado (la UI re-consulta tras cada mutación).
type AvailabilityUseCase struct {
	stockRepo        repository.VariantStockRepository
	movRepo          repository.StockMovementRepository
	cache            AvailabilityCache // puede ser nil
	report           LowStockReportGenerator
	log              *logger.Logger
	defaultThreshold decimal.Decimal
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(
	stockRepo repository.VariantStockRepository,
	movRepo repository.StockMovementRepository,
	cache AvailabilityCache,
	report LowStockReportGenerator,
	log *logger.Logger,
	defaultLowStockThreshold int,
) *AvailabilityUseCase {
	return &AvailabilityUseCase{
		stockRepo:        stockRepo,
		movRepo:          movRepo,
		cache:            cache,
		report:           report,
		log:              log,
		defaultThreshold: decimal.NewFromInt(int64(defaultLowStockThreshold)),
	}
}

// VariantAvailability instantánea de disponibilidad de una variante,
// con cache read-through cuando está configurado.
func (uc *AvailabilityUseCase) VariantAvailability(ctx context.Context, organizationID, variantID string) (*inventory.Availability, error) {
	if variantID == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.cache != nil {
		if snapshot, ok := uc.cache.Get(ctx, organizationID, variantID); ok {
			return snapshot, nil
		}
	}

	state, err := uc.stockRepo.Get(ctx, organizationID, variantID)
	if err != nil {
		return nil, classifyError(err)
	}
	av := inventory.ComputeAvailability(state, uc.defaultThreshold)
	if uc.cache != nil {
		uc.cache.Set(ctx, organizationID, av)
	}
	return &av, nil
}

// StockSummary listado de inventario con conteos out/low/ok. Las filas y los
// conteos salen de la misma pasada por ComputeAvailability; el filtro por
// clase y la búsqueda se aplican después, y la paginación al final.
func (uc *AvailabilityUseCase) StockSummary(ctx context.Context, organizationID, class, searchTerm string, page dto.PageRequest) (*dto.StockSummaryResponse, error) {
	switch class {
	case "", "all", inventory.StockClassOut, inventory.StockClassLow, inventory.StockClassOK:
	default:
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()

	rows, err := uc.stockRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, classifyError(err)
	}

	resp := &dto.StockSummaryResponse{Items: []dto.StockSummaryItemDTO{}}
	filtered := make([]dto.StockSummaryItemDTO, 0, len(rows))
	for _, row := range rows {
		av := inventory.ComputeAvailability(&row.State, uc.defaultThreshold)
		itemClass := av.Class()

		resp.Counts.Total++
		switch itemClass {
		case inventory.StockClassOut:
			resp.Counts.Out++
		case inventory.StockClassLow:
			resp.Counts.Low++
		default:
			resp.Counts.OK++
		}

		if class != "" && class != "all" && itemClass != class {
			continue
		}
		if !search.Matches(row.SKU+" "+row.VariantName+" "+row.ProductName, searchTerm) {
			continue
		}
		filtered = append(filtered, dto.StockSummaryItemDTO{
			SKU:          row.SKU,
			VariantName:  row.VariantName,
			ProductName:  row.ProductName,
			Availability: av,
			Class:        itemClass,
		})
	}

	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].SKU < filtered[j].SKU })

	resp.Page = dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(filtered)}
	if page.Offset < len(filtered) {
		end := page.Offset + page.Limit
		if end > len(filtered) {
			end = len(filtered)
		}
		resp.Items = filtered[page.Offset:end]
	}
	return resp, nil
}

// MovementQuery filtros del historial de movimientos.
type MovementQuery struct {
	OrganizationID string
	VariantID      string
	ProductID      string
	Type           string
	From           *time.Time
	To             *time.Time
}

// ListMovements historial del ledger, del más reciente al más antiguo.
// Secuencia estable: dos llamadas sobre un ledger sin cambios devuelven lo mismo.
func (uc *AvailabilityUseCase) ListMovements(ctx context.Context, q MovementQuery, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if q.Type != "" && !entity.IsValidMovementType(q.Type) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()

	movements, err := uc.movRepo.List(ctx, repository.MovementFilter{
		OrganizationID: q.OrganizationID,
		VariantID:      q.VariantID,
		ProductID:      q.ProductID,
		Type:           q.Type,
		From:           q.From,
		To:             q.To,
	}, page.Limit, page.Offset)
	if err != nil {
		return nil, classifyError(err)
	}

	resp := &dto.MovementListResponse{
		Movements: make([]dto.MovementDTO, 0, len(movements)),
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range movements {
		resp.Movements = append(resp.Movements, dto.NewMovementDTO(m))
	}
	return resp, nil
}

// LowStockDashboard variantes con stock bajo para el widget del dashboard:
// primero las agotadas, luego por disponible ascendente.
func (uc *AvailabilityUseCase) LowStockDashboard(ctx context.Context, organizationID string) ([]dto.StockSummaryItemDTO, error) {
	rows, err := uc.stockRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, classifyError(err)
	}

	items := []dto.StockSummaryItemDTO{}
	for _, row := range rows {
		av := inventory.ComputeAvailability(&row.State, uc.defaultThreshold)
		if !av.IsLowStock {
			continue
		}
		items = append(items, dto.StockSummaryItemDTO{
			SKU:          row.SKU,
			VariantName:  row.VariantName,
			ProductName:  row.ProductName,
			Availability: av,
			Class:        av.Class(),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.IsOutOfStock != b.IsOutOfStock {
			return a.IsOutOfStock
		}
		if !a.AvailableStock.Equal(b.AvailableStock) {
			return a.AvailableStock.LessThan(b.AvailableStock)
		}
		return a.SKU < b.SKU
	})
	return items, nil
}

// LowStockReportPDF genera el informe PDF de stock bajo sobre los mismos
// snapshots que muestra el dashboard.
func (uc *AvailabilityUseCase) LowStockReportPDF(ctx context.Context, organizationID string) ([]byte, error) {
	items, err := uc.LowStockDashboard(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.report.Generate(ctx, organizationID, time.Now(), items)
	if err != nil {
		uc.log.Error().Err(err).Str("organization_id", organizationID).Msg("generar informe de stock bajo")
		return nil, err
	}
	return pdf, nil
}
