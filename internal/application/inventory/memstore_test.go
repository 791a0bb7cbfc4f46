package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/application/dto"
	"github.com/tu-usuario/stock-engine/internal/domain"
	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	dominventory "github.com/tu-usuario/stock-engine/internal/domain/inventory"
	"github.com/tu-usuario/stock-engine/internal/domain/repository"
)

// memStore backend en memoria compartido por los repos fake. El mutex emula la
// serialización por transacción de PostgreSQL: el TxRunner fake lo toma durante
// todo el callback, y ante error restaura el snapshot previo (rollback).
type memStore struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
	stocks    map[string]*entity.VariantStockState // por variantID
	lots      map[string]*entity.Lot               // por "orgID/lotNumber"
	variants  map[string]*entity.Variant
	products  map[string]*entity.Product
}

func newMemStore() *memStore {
	return &memStore{
		stocks:   map[string]*entity.VariantStockState{},
		lots:     map[string]*entity.Lot{},
		variants: map[string]*entity.Variant{},
		products: map[string]*entity.Product{},
	}
}

func (s *memStore) addVariant(orgID, productID, variantID, sku, name string) {
	if _, ok := s.products[productID]; !ok {
		s.products[productID] = &entity.Product{ID: productID, OrganizationID: orgID, Name: "Producto " + productID}
	}
	s.variants[variantID] = &entity.Variant{
		ID: variantID, ProductID: productID, OrganizationID: orgID, SKU: sku, Name: name,
	}
}

func (s *memStore) seedStock(orgID, productID, variantID string, current, reserved int64, threshold *decimal.Decimal) {
	s.stocks[variantID] = &entity.VariantStockState{
		VariantID: variantID, ProductID: productID, OrganizationID: orgID,
		CurrentStock: decimal.NewFromInt(current), ReservedStock: decimal.NewFromInt(reserved),
		LowStockThreshold: threshold,
	}
}

type memSnapshot struct {
	movements []*entity.StockMovement
	stocks    map[string]*entity.VariantStockState
	lots      map[string]*entity.Lot
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		movements: make([]*entity.StockMovement, len(s.movements)),
		stocks:    make(map[string]*entity.VariantStockState, len(s.stocks)),
		lots:      make(map[string]*entity.Lot, len(s.lots)),
	}
	copy(snap.movements, s.movements)
	for k, v := range s.stocks {
		c := *v
		snap.stocks[k] = &c
	}
	for k, v := range s.lots {
		c := *v
		snap.lots[k] = &c
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.movements = snap.movements
	s.stocks = snap.stocks
	s.lots = snap.lots
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type memTxRunner struct {
	s *memStore
	// failAfterMovements fuerza un error tras N inserts al ledger, para
	// verificar que el rollback no deja estado parcial.
	failAfterMovements int
	failErr            error
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.VariantStockRepository,
	lotRepo repository.LotRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	mov := &memMovementRepo{s: r.s, failAfter: r.failAfterMovements, failErr: r.failErr}
	err := fn(mov, &memStockRepo{s: r.s}, &memLotRepo{s: r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

// ── Repos ────────────────────────────────────────────────────────────────────

type memMovementRepo struct {
	s         *memStore
	failAfter int
	failErr   error
}

func (r *memMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	if err := movement.Validate(); err != nil {
		return err
	}
	if r.failAfter > 0 && len(r.s.movements) >= r.failAfter {
		return r.failErr
	}
	c := *movement
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	var matched []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.VariantID != "" && m.VariantID != filter.VariantID {
			continue
		}
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, m)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *memMovementRepo) LastByVariant(_ context.Context, organizationID, variantID string) (*entity.StockMovement, error) {
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.OrganizationID == organizationID && m.VariantID == variantID {
			return m, nil
		}
	}
	return nil, nil
}

type memStockRepo struct {
	s *memStore
}

func (r *memStockRepo) Get(_ context.Context, organizationID, variantID string) (*entity.VariantStockState, error) {
	if state, ok := r.s.stocks[variantID]; ok && state.OrganizationID == organizationID {
		c := *state
		return &c, nil
	}
	return &entity.VariantStockState{
		VariantID:      variantID,
		OrganizationID: organizationID,
		CurrentStock:   decimal.Zero,
		ReservedStock:  decimal.Zero,
	}, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, organizationID, variantID string) (*entity.VariantStockState, error) {
	// El lock por fila lo emula el mutex global del TxRunner.
	return r.Get(ctx, organizationID, variantID)
}

func (r *memStockRepo) Upsert(_ context.Context, state *entity.VariantStockState) error {
	c := *state
	r.s.stocks[state.VariantID] = &c
	return nil
}

func (r *memStockRepo) ListByOrganization(_ context.Context, organizationID string) ([]*repository.VariantStockRow, error) {
	var rows []*repository.VariantStockRow
	for _, state := range r.s.stocks {
		if state.OrganizationID != organizationID {
			continue
		}
		v := r.s.variants[state.VariantID]
		p := r.s.products[state.ProductID]
		row := &repository.VariantStockRow{State: *state}
		if v != nil {
			row.SKU = v.SKU
			row.VariantName = v.Name
		}
		if p != nil {
			row.ProductName = p.Name
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SKU < rows[j].SKU })
	return rows, nil
}

type memLotRepo struct {
	s *memStore
}

func lotKey(orgID, lotNumber string) string { return orgID + "/" + lotNumber }

func (r *memLotRepo) Create(_ context.Context, lot *entity.Lot) error {
	key := lotKey(lot.OrganizationID, lot.LotNumber)
	if _, ok := r.s.lots[key]; ok {
		return domain.ErrDuplicate
	}
	c := *lot
	r.s.lots[key] = &c
	return nil
}

func (r *memLotRepo) GetByNumber(_ context.Context, organizationID, lotNumber string) (*entity.Lot, error) {
	if lot, ok := r.s.lots[lotKey(organizationID, lotNumber)]; ok {
		c := *lot
		return &c, nil
	}
	return nil, nil
}

func (r *memLotRepo) GetByNumberForUpdate(ctx context.Context, organizationID, lotNumber string) (*entity.Lot, error) {
	return r.GetByNumber(ctx, organizationID, lotNumber)
}

func (r *memLotRepo) UpdateQuantity(_ context.Context, id string, currentQuantity decimal.Decimal) error {
	for _, lot := range r.s.lots {
		if lot.ID == id {
			lot.CurrentQuantity = currentQuantity
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memLotRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.Lot, error) {
	var lots []*entity.Lot
	for _, lot := range r.s.lots {
		if lot.OrganizationID != organizationID {
			continue
		}
		c := *lot
		lots = append(lots, &c)
	}
	sort.Slice(lots, func(i, j int) bool { return lots[i].CreatedAt.After(lots[j].CreatedAt) })
	return lots, nil
}

func (r *memLotRepo) SumCurrentByVariant(_ context.Context, organizationID, variantID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, lot := range r.s.lots {
		if lot.OrganizationID == organizationID && lot.VariantID == variantID {
			total = total.Add(lot.CurrentQuantity)
		}
	}
	return total, nil
}

type memVariantRepo struct {
	s *memStore
}

func (r *memVariantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	if v, ok := r.s.variants[id]; ok {
		c := *v
		return &c, nil
	}
	return nil, nil
}

// ── Cache fake ───────────────────────────────────────────────────────────────

type memCache struct {
	mu          sync.Mutex
	entries     map[string]dominventory.Availability
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]dominventory.Availability{}}
}

func cacheKey(orgID, variantID string) string { return orgID + "/" + variantID }

func (c *memCache) Get(_ context.Context, organizationID, variantID string) (*dominventory.Availability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if av, ok := c.entries[cacheKey(organizationID, variantID)]; ok {
		return &av, true
	}
	return nil, false
}

func (c *memCache) Set(_ context.Context, organizationID string, snapshot dominventory.Availability) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(organizationID, snapshot.VariantID)] = snapshot
}

func (c *memCache) Invalidate(_ context.Context, organizationID string, variantIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range variantIDs {
		delete(c.entries, cacheKey(organizationID, id))
		c.invalidated = append(c.invalidated, cacheKey(organizationID, id))
	}
}

// ── Report fake ──────────────────────────────────────────────────────────────

type memReportGenerator struct {
	lastItems []dto.StockSummaryItemDTO
}

func (g *memReportGenerator) Generate(_ context.Context, _ string, _ time.Time, items []dto.StockSummaryItemDTO) ([]byte, error) {
	g.lastItems = items
	return []byte("%PDF-fake"), nil
}
