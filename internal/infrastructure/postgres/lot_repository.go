package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/domain"
	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	"github.com/tu-usuario/stock-engine/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, organization_id, lot_number, product_id, variant_id, initial_quantity,
	current_quantity, manufactured_at, expiry_date, supplier, notes, created_at, created_by`

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un lote. La unicidad de lot_number por organización la
// garantiza el constraint; la violación se traduce a domain.ErrDuplicate.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	query := `
		INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.OrganizationID, lot.LotNumber, lot.ProductID, lot.VariantID,
		lot.InitialQuantity, lot.CurrentQuantity, lot.ManufacturedAt, lot.ExpiryDate,
		nullable(lot.Supplier), nullable(lot.Notes), lot.CreatedAt, nullable(lot.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByNumber obtiene un lote por número (nil si no existe).
func (r *LotRepo) GetByNumber(ctx context.Context, organizationID, lotNumber string) (*entity.Lot, error) {
	return r.getByNumber(ctx, organizationID, lotNumber, false)
}

// GetByNumberForUpdate igual que GetByNumber pero bloquea la fila; usar dentro
// de la transacción que va a decrementar el saldo.
func (r *LotRepo) GetByNumberForUpdate(ctx context.Context, organizationID, lotNumber string) (*entity.Lot, error) {
	return r.getByNumber(ctx, organizationID, lotNumber, true)
}

func (r *LotRepo) getByNumber(ctx context.Context, organizationID, lotNumber string, forUpdate bool) (*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE organization_id = $1 AND lot_number = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var l entity.Lot
	var supplier, notes, createdBy *string
	err := r.q.QueryRow(ctx, query, organizationID, lotNumber).Scan(
		&l.ID, &l.OrganizationID, &l.LotNumber, &l.ProductID, &l.VariantID,
		&l.InitialQuantity, &l.CurrentQuantity, &l.ManufacturedAt, &l.ExpiryDate,
		&supplier, &notes, &l.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	l.Supplier = deref(supplier)
	l.Notes = deref(notes)
	l.CreatedBy = deref(createdBy)
	return &l, nil
}

// UpdateQuantity escribe el nuevo saldo del lote.
func (r *LotRepo) UpdateQuantity(ctx context.Context, id string, currentQuantity decimal.Decimal) error {
	query := `UPDATE lots SET current_quantity = $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, currentQuantity)
	if err != nil {
		return fmt.Errorf("update lot quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOrganization devuelve los lotes de la organización, más recientes primero.
func (r *LotRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE organization_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		var supplier, notes, createdBy *string
		if err := rows.Scan(
			&l.ID, &l.OrganizationID, &l.LotNumber, &l.ProductID, &l.VariantID,
			&l.InitialQuantity, &l.CurrentQuantity, &l.ManufacturedAt, &l.ExpiryDate,
			&supplier, &notes, &l.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		l.Supplier = deref(supplier)
		l.Notes = deref(notes)
		l.CreatedBy = deref(createdBy)
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SumCurrentByVariant suma el saldo de todos los lotes de una variante.
func (r *LotRepo) SumCurrentByVariant(ctx context.Context, organizationID, variantID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(current_quantity), 0)
		FROM lots
		WHERE organization_id = $1 AND variant_id = $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, organizationID, variantID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum lot quantities: %w", err)
	}
	return total, nil
}
