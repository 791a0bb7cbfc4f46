package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	"github.com/tu-usuario/stock-engine/internal/domain/repository"
)

var _ repository.VariantStockRepository = (*VariantStockRepo)(nil)

// VariantStockRepo contadores desnormalizados por variante sobre PostgreSQL
// (usable con pool o tx). El ledger es la fuente de verdad; esta tabla es el
// cache write-through que se actualiza junto con cada movimiento.
type VariantStockRepo struct {
	q Querier
}

// NewVariantStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantStockRepository(q Querier) *VariantStockRepo {
	return &VariantStockRepo{q: q}
}

// Get obtiene el estado de stock de una variante. Si aún no tiene fila,
// devuelve un estado en cero (la fila nace con el primer movimiento).
func (r *VariantStockRepo) Get(ctx context.Context, organizationID, variantID string) (*entity.VariantStockState, error) {
	return r.get(ctx, organizationID, variantID, false)
}

// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
// Dos ajustes concurrentes sobre la misma variante se serializan en este lock;
// ajustes sobre variantes distintas avanzan en paralelo.
func (r *VariantStockRepo) GetForUpdate(ctx context.Context, organizationID, variantID string) (*entity.VariantStockState, error) {
	return r.get(ctx, organizationID, variantID, true)
}

func (r *VariantStockRepo) get(ctx context.Context, organizationID, variantID string, forUpdate bool) (*entity.VariantStockState, error) {
	query := `
		SELECT variant_id, product_id, organization_id, current_stock, reserved_stock, low_stock_threshold, updated_at
		FROM variant_stock
		WHERE organization_id = $1 AND variant_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var s entity.VariantStockState
	err := r.q.QueryRow(ctx, query, organizationID, variantID).Scan(
		&s.VariantID, &s.ProductID, &s.OrganizationID,
		&s.CurrentStock, &s.ReservedStock, &s.LowStockThreshold, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.VariantStockState{
				VariantID:      variantID,
				OrganizationID: organizationID,
				CurrentStock:   decimal.Zero,
				ReservedStock:  decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get variant stock: %w", err)
	}
	return &s, nil
}

// Upsert escribe los contadores de la variante.
func (r *VariantStockRepo) Upsert(ctx context.Context, state *entity.VariantStockState) error {
	query := `
		INSERT INTO variant_stock (variant_id, product_id, organization_id, current_stock, reserved_stock, low_stock_threshold, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (variant_id)
		DO UPDATE SET current_stock = EXCLUDED.current_stock,
		              reserved_stock = EXCLUDED.reserved_stock,
		              low_stock_threshold = EXCLUDED.low_stock_threshold,
		              updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		state.VariantID, state.ProductID, state.OrganizationID,
		state.CurrentStock, state.ReservedStock, state.LowStockThreshold,
	)
	if err != nil {
		return fmt.Errorf("upsert variant stock: %w", err)
	}
	return nil
}

// ListByOrganization devuelve todas las filas de stock de la organización con
// SKU y nombres (JOIN con variants/products). El resumen necesita el conjunto
// completo para los conteos out/low/ok; la paginación se aplica en la capa de
// aplicación, después de filtrar.
func (r *VariantStockRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*repository.VariantStockRow, error) {
	query := `
		SELECT s.variant_id, s.product_id, s.organization_id, s.current_stock, s.reserved_stock,
		       s.low_stock_threshold, s.updated_at, v.sku, v.name, p.name
		FROM variant_stock s
		JOIN variants v ON v.id = s.variant_id
		JOIN products p ON p.id = s.product_id
		WHERE s.organization_id = $1
		ORDER BY v.sku`
	rows, err := r.q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list variant stock: %w", err)
	}
	defer rows.Close()

	var list []*repository.VariantStockRow
	for rows.Next() {
		var row repository.VariantStockRow
		if err := rows.Scan(
			&row.State.VariantID, &row.State.ProductID, &row.State.OrganizationID,
			&row.State.CurrentStock, &row.State.ReservedStock,
			&row.State.LowStockThreshold, &row.State.UpdatedAt,
			&row.SKU, &row.VariantName, &row.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan variant stock: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
