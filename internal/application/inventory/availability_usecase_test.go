package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-engine/internal/application/dto"
	appinventory "github.com/tu-usuario/stock-engine/internal/application/inventory"
	"github.com/tu-usuario/stock-engine/internal/domain"
	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	dominventory "github.com/tu-usuario/stock-engine/internal/domain/inventory"
)

// newAvailabilityFixture siembra tres variantes: una agotada, una en stock
// bajo y una sana.
func newAvailabilityFixture(t *testing.T, cache *memCache) (*appinventory.AvailabilityUseCase, *memStore, *memReportGenerator) {
	t.Helper()
	s := newMemStore()
	s.addVariant(testOrgID, "prod-1", "var-out", "SKU-001", "Agotada")
	s.addVariant(testOrgID, "prod-1", "var-low", "SKU-002", "Stock bajo")
	s.addVariant(testOrgID, "prod-2", "var-ok", "SKU-003", "Sana")
	s.seedStock(testOrgID, "prod-1", "var-out", 0, 0, nil)
	s.seedStock(testOrgID, "prod-1", "var-low", 7, 4, nil) // disponible 3 <= 5
	s.seedStock(testOrgID, "prod-2", "var-ok", 100, 10, nil)

	// Evitar el nil tipado: un *memCache nil dentro de la interfaz no es nil.
	var c appinventory.AvailabilityCache
	if cache != nil {
		c = cache
	}

	report := &memReportGenerator{}
	uc := appinventory.NewAvailabilityUseCase(
		&memStockRepo{s: s}, &memMovementRepo{s: s}, c, report, testLogger(), 5,
	)
	return uc, s, report
}

// ── VariantAvailability ──────────────────────────────────────────────────────

func TestVariantAvailability_SinCacheLeeDeLaBD(t *testing.T) {
	uc, _, _ := newAvailabilityFixture(t, nil)

	av, err := uc.VariantAvailability(context.Background(), testOrgID, "var-low")
	require.NoError(t, err)

	assert.True(t, av.AvailableStock.Equal(d(3)))
	assert.True(t, av.IsLowStock)
}

func TestVariantAvailability_ReadThroughPueblaElCache(t *testing.T) {
	cache := newMemCache()
	uc, s, _ := newAvailabilityFixture(t, cache)
	ctx := context.Background()

	// Primer acceso: miss, se calcula y se guarda
	av1, err := uc.VariantAvailability(ctx, testOrgID, "var-ok")
	require.NoError(t, err)
	_, hit := cache.Get(ctx, testOrgID, "var-ok")
	assert.True(t, hit)

	// Mutamos el contador por fuera: el snapshot cacheado sigue sirviendo
	// (desfase aceptado; la invalidación corre por cuenta de las mutaciones)
	s.stocks["var-ok"].CurrentStock = d(1)
	av2, err := uc.VariantAvailability(ctx, testOrgID, "var-ok")
	require.NoError(t, err)
	assert.True(t, av2.CurrentStock.Equal(av1.CurrentStock))
}

func TestVariantAvailability_VarianteVaciaRechazada(t *testing.T) {
	uc, _, _ := newAvailabilityFixture(t, nil)

	_, err := uc.VariantAvailability(context.Background(), testOrgID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVariantAvailability_VarianteSinFilaReportaCero(t *testing.T) {
	uc, _, _ := newAvailabilityFixture(t, nil)

	av, err := uc.VariantAvailability(context.Background(), testOrgID, "var-nueva")
	require.NoError(t, err)

	assert.True(t, av.CurrentStock.IsZero())
	assert.True(t, av.IsOutOfStock)
}

// ── StockSummary ─────────────────────────────────────────────────────────────

func TestStockSummary_ConteosYFilasDeLaMismaPasada(t *testing.T) {
	uc, _, _ := newAvailabilityFixture(t, nil)

	resp, err := uc.StockSummary(context.Background(), testOrgID, "all", "", dto.PageRequest{})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Counts.Total)
	assert.Equal(t, 1, resp.Counts.Out)
	assert.Equal(t, 1, resp.Counts.Low)
	assert.Equal(t, 1, resp.Counts.OK)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "SKU-001", resp.Items[0].SKU, "orden por SKU")
}

func TestStockSummary_FiltroPorClaseNoAlteraConteos(t *testing.T) {
	uc, _, _ := newAvailabilityFixture(t, nil)

	resp, err := uc.StockSummary(context.Background(), testOrgID, dominventory.StockClassLow, "", dto.PageRequest{})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Counts.Total, "los conteos siguen cubriendo todo el inventario")
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "SKU-002", resp.Items[0].SKU)
	assert.Equal(t, dominventory.StockClassLow, resp.Items[0].Class)
}

func TestStockSummary_ClaseDesconocidaRechazada(t *testing.T) {
	uc, _, _ := newAvailabilityFixture(t, nil)

	_, err := uc.StockSummary(context.Background(), testOrgID, "agotadas", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockSummary_BusquedaInsensibleATildes(t *testing.T) {
	uc, s, _ := newAvailabilityFixture(t, nil)
	s.variants["var-ok"].Name = "Edición Limitada"

	resp, err := uc.StockSummary(context.Background(), testOrgID, "", "edicion", dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "SKU-003", resp.Items[0].SKU)
}

func TestStockSummary_PaginacionSobreElResultadoFiltrado(t *testing.T) {
	uc, _, _ := newAvailabilityFixture(t, nil)

	resp, err := uc.StockSummary(context.Background(), testOrgID, "", "", dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Page.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "SKU-003", resp.Items[0].SKU)
}

// ── ListMovements ────────────────────────────────────────────────────────────

func seedMovements(s *memStore) {
	base := time.Now().Add(-time.Hour)
	prev := d(0)
	for i, step := range []struct {
		typ string
		qty int64
	}{
		{entity.MovementTypeIn, 50},
		{entity.MovementTypeOut, 36},
		{entity.MovementTypeAdjustment, 10},
	} {
		next := prev.Add(entity.SignedDelta(step.typ, d(step.qty)))
		s.movements = append(s.movements, &entity.StockMovement{
			ID: string(rune('a' + i)), OrganizationID: testOrgID,
			ProductID: "prod-1", VariantID: "var-low",
			Type: step.typ, Quantity: d(step.qty),
			PreviousStock: prev, NewStock: next,
			TransactionID: "tx", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		prev = next
	}
}

func TestListMovements_MasRecientePrimero(t *testing.T) {
	uc, s, _ := newAvailabilityFixture(t, nil)
	seedMovements(s)

	resp, err := uc.ListMovements(context.Background(), appinventory.MovementQuery{
		OrganizationID: testOrgID, VariantID: "var-low",
	}, dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Movements, 3)
	assert.Equal(t, entity.MovementTypeAdjustment, resp.Movements[0].Type)
	assert.Equal(t, entity.MovementTypeIn, resp.Movements[2].Type)
}

func TestListMovements_FiltroPorTipo(t *testing.T) {
	uc, s, _ := newAvailabilityFixture(t, nil)
	seedMovements(s)

	resp, err := uc.ListMovements(context.Background(), appinventory.MovementQuery{
		OrganizationID: testOrgID, Type: entity.MovementTypeOut,
	}, dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Movements, 1)
	assert.True(t, resp.Movements[0].Quantity.Equal(d(36)))
}

// Dos llamadas idénticas sobre un ledger sin cambios devuelven la misma
// secuencia, incluso con timestamps empatados (desempate por id descendente).
func TestListMovements_RepetirDaLaMismaSecuencia(t *testing.T) {
	uc, s, _ := newAvailabilityFixture(t, nil)
	seedMovements(s)

	// Dos movimientos con el mismo created_at: el orden lo decide el id
	ts := time.Now()
	prev := int64(24)
	for _, id := range []string{"m-a", "m-b"} {
		s.movements = append(s.movements, &entity.StockMovement{
			ID: id, OrganizationID: testOrgID,
			ProductID: "prod-1", VariantID: "var-low",
			Type: entity.MovementTypeIn, Quantity: d(1),
			PreviousStock: d(prev), NewStock: d(prev + 1),
			TransactionID: "tx-" + id, CreatedAt: ts,
		})
		prev++
	}

	q := appinventory.MovementQuery{OrganizationID: testOrgID, VariantID: "var-low"}
	first, err := uc.ListMovements(context.Background(), q, dto.PageRequest{})
	require.NoError(t, err)
	second, err := uc.ListMovements(context.Background(), q, dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, first.Movements, 5)
	assert.Equal(t, first.Movements, second.Movements)
	assert.Equal(t, "m-b", first.Movements[0].ID, "empate de created_at: id descendente")
	assert.Equal(t, "m-a", first.Movements[1].ID)
}

func TestListMovements_TipoDesconocidoRechazado(t *testing.T) {
	uc, _, _ := newAvailabilityFixture(t, nil)

	_, err := uc.ListMovements(context.Background(), appinventory.MovementQuery{
		OrganizationID: testOrgID, Type: "venta",
	}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Dashboard e informe ──────────────────────────────────────────────────────

func TestLowStockDashboard_AgotadasPrimeroLuegoPorDisponible(t *testing.T) {
	uc, s, _ := newAvailabilityFixture(t, nil)
	s.addVariant(testOrgID, "prod-2", "var-low2", "SKU-004", "Casi agotada")
	s.seedStock(testOrgID, "prod-2", "var-low2", 1, 0, nil) // disponible 1

	items, err := uc.LowStockDashboard(context.Background(), testOrgID)
	require.NoError(t, err)

	require.Len(t, items, 3, "la variante sana no aparece")
	assert.Equal(t, "SKU-001", items[0].SKU, "agotada primero")
	assert.Equal(t, "SKU-004", items[1].SKU, "disponible 1 antes que disponible 3")
	assert.Equal(t, "SKU-002", items[2].SKU)
}

func TestLowStockReportPDF_GeneraSobreLosMismosItemsDelWidget(t *testing.T) {
	uc, _, report := newAvailabilityFixture(t, nil)

	pdf, err := uc.LowStockReportPDF(context.Background(), testOrgID)
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	require.Len(t, report.lastItems, 2)
	assert.Equal(t, "SKU-001", report.lastItems[0].SKU)
}
