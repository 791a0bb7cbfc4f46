package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	"github.com/tu-usuario/stock-engine/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, organization_id, product_id, variant_id, type, quantity,
	previous_stock, new_stock, reason, reference, lot_number, transaction_id, created_at, created_by`

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es append-only: no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. Verifica la cadena previous_stock -> new_stock
// antes de aceptar la fila: el ledger nunca calcula esos valores (los aporta el
// caso de uso bajo su bloqueo de fila), solo los valida.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if err := movement.Validate(); err != nil {
		return err
	}
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.OrganizationID, movement.ProductID, movement.VariantID,
		movement.Type, movement.Quantity, movement.PreviousStock, movement.NewStock,
		nullable(movement.Reason), nullable(movement.Reference), nullable(movement.LotNumber),
		movement.TransactionID, movement.CreatedAt, nullable(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List lista movimientos, más recientes primero. El desempate por id mantiene
// el orden estable entre llamadas repetidas sobre un mismo snapshot.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE organization_id = $1`
	args := []any{filter.OrganizationID}
	pos := 2
	if filter.VariantID != "" {
		query += fmt.Sprintf(" AND variant_id = $%d", pos)
		args = append(args, filter.VariantID)
		pos++
	}
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// LastByVariant devuelve el movimiento más reciente de una variante (nil si no hay).
func (r *StockMovementRepo) LastByVariant(ctx context.Context, organizationID, variantID string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE organization_id = $1 AND variant_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	row := r.q.QueryRow(ctx, query, organizationID, variantID)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovement(row rowScanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var reason, reference, lotNumber, createdBy *string
	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.ProductID, &m.VariantID, &m.Type, &m.Quantity,
		&m.PreviousStock, &m.NewStock, &reason, &reference, &lotNumber,
		&m.TransactionID, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock movement: %w", err)
	}
	m.Reason = deref(reason)
	m.Reference = deref(reference)
	m.LotNumber = deref(lotNumber)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
