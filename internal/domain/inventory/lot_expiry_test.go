package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	"github.com/tu-usuario/stock-engine/internal/domain/inventory"
)

const (
	horizonDays = 90
	urgentDays  = 30
)

func lote(current int64, expiry *time.Time) *entity.Lot {
	return &entity.Lot{
		LotNumber:       "L-001",
		InitialQuantity: d(50),
		CurrentQuantity: d(current),
		ExpiryDate:      expiry,
	}
}

func inDays(now time.Time, days int) *time.Time {
	t := now.Add(time.Duration(days) * 24 * time.Hour)
	return &t
}

// Escenario de referencia: lote con saldo 50 que vence en 20 días.
// Con horizonte 90 queda "expiring" con 20 días restantes, y urgente (< 30).
func TestClassifyLot_EscenarioReferencia(t *testing.T) {
	now := time.Now()

	c := inventory.ClassifyLot(lote(50, inDays(now, 20)), now, horizonDays, urgentDays)

	assert.Equal(t, entity.LotStatusExpiring, c.Status)
	require.NotNil(t, c.DaysUntilExpiry)
	assert.Equal(t, 20, *c.DaysUntilExpiry)
	assert.True(t, c.Urgent)
}

func TestClassifyLot_DentroDelHorizonteNoExpiring(t *testing.T) {
	now := time.Now()

	c := inventory.ClassifyLot(lote(50, inDays(now, 120)), now, horizonDays, urgentDays)

	assert.Equal(t, entity.LotStatusActive, c.Status)
	require.NotNil(t, c.DaysUntilExpiry)
	assert.Equal(t, 120, *c.DaysUntilExpiry)
	assert.False(t, c.Urgent)
}

func TestClassifyLot_DepletedPisaExpiring(t *testing.T) {
	now := time.Now()

	// Saldo 0 y vencimiento inminente: el estado reportado es depleted.
	c := inventory.ClassifyLot(lote(0, inDays(now, 3)), now, horizonDays, urgentDays)

	assert.Equal(t, entity.LotStatusDepleted, c.Status)
	assert.False(t, c.Urgent, "un lote agotado no genera alerta de urgencia")
}

func TestClassifyLot_SinVencimientoSiempreActivo(t *testing.T) {
	now := time.Now()

	c := inventory.ClassifyLot(lote(50, nil), now, horizonDays, urgentDays)

	assert.Equal(t, entity.LotStatusActive, c.Status)
	assert.Nil(t, c.DaysUntilExpiry)
	assert.False(t, c.Urgent)
}

func TestClassifyLot_DiasRedondeanHaciaArriba(t *testing.T) {
	now := time.Now()

	// 12 horas restantes cuentan como 1 día.
	expiry := now.Add(12 * time.Hour)
	c := inventory.ClassifyLot(lote(50, &expiry), now, horizonDays, urgentDays)

	require.NotNil(t, c.DaysUntilExpiry)
	assert.Equal(t, 1, *c.DaysUntilExpiry)
	assert.True(t, c.Urgent)
}

func TestClassifyLot_YaVencidoConSaldo(t *testing.T) {
	now := time.Now()

	// Vencido hace 5 días pero con saldo: expiring con días negativos y urgente.
	c := inventory.ClassifyLot(lote(10, inDays(now, -5)), now, horizonDays, urgentDays)

	assert.Equal(t, entity.LotStatusExpiring, c.Status)
	require.NotNil(t, c.DaysUntilExpiry)
	assert.Equal(t, -5, *c.DaysUntilExpiry)
	assert.True(t, c.Urgent)
}

func TestClassifyLot_MismoNowResultadoDeterminista(t *testing.T) {
	now := time.Now()
	l := lote(50, inDays(now, 45))

	a := inventory.ClassifyLot(l, now, horizonDays, urgentDays)
	b := inventory.ClassifyLot(l, now, horizonDays, urgentDays)

	assert.Equal(t, a, b)
}

// decimal.Zero y decimal.NewFromInt(0) deben clasificar igual.
func TestClassifyLot_CeroEnCualquierRepresentacion(t *testing.T) {
	now := time.Now()
	l := lote(0, nil)
	l.CurrentQuantity = decimal.NewFromFloat(0.0)

	c := inventory.ClassifyLot(l, now, horizonDays, urgentDays)
	assert.Equal(t, entity.LotStatusDepleted, c.Status)
}
