package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-engine/internal/domain"
	"github.com/tu-usuario/stock-engine/internal/domain/entity"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestSignedDelta_SoloOutResta(t *testing.T) {
	q := d(7)

	assert.True(t, entity.SignedDelta(entity.MovementTypeOut, q).Equal(d(-7)),
		"out debe restar")
	assert.True(t, entity.SignedDelta(entity.MovementTypeIn, q).Equal(d(7)))
	assert.True(t, entity.SignedDelta(entity.MovementTypeAdjustment, q).Equal(d(7)))
	assert.True(t, entity.SignedDelta(entity.MovementTypeTransfer, q).Equal(d(7)),
		"transfer es la mitad receptora del traslado: suma")
}

func TestIsValidMovementType(t *testing.T) {
	for _, typ := range []string{"in", "out", "adjustment", "transfer"} {
		assert.True(t, entity.IsValidMovementType(typ), typ)
	}
	assert.False(t, entity.IsValidMovementType("venta"))
	assert.False(t, entity.IsValidMovementType(""))
}

func validMovement() *entity.StockMovement {
	return &entity.StockMovement{
		Type:          entity.MovementTypeOut,
		Quantity:      d(36),
		PreviousStock: d(50),
		NewStock:      d(14),
	}
}

func TestValidate_CadenaCorrecta(t *testing.T) {
	require.NoError(t, validMovement().Validate())
}

func TestValidate_RechazaCadenaRota(t *testing.T) {
	m := validMovement()
	m.NewStock = d(15) // 50 - 36 != 15

	assert.ErrorIs(t, m.Validate(), domain.ErrInvariantViolation)
}

func TestValidate_RechazaTipoDesconocido(t *testing.T) {
	m := validMovement()
	m.Type = "venta"

	assert.ErrorIs(t, m.Validate(), domain.ErrInvariantViolation)
}

func TestValidate_RechazaCantidadNoPositiva(t *testing.T) {
	m := validMovement()
	m.Quantity = decimal.Zero
	m.NewStock = m.PreviousStock

	assert.ErrorIs(t, m.Validate(), domain.ErrInvariantViolation)

	m.Quantity = d(-5)
	m.NewStock = d(55)
	assert.ErrorIs(t, m.Validate(), domain.ErrInvariantViolation)
}

func TestValidate_RechazaStockNegativo(t *testing.T) {
	m := &entity.StockMovement{
		Type:          entity.MovementTypeOut,
		Quantity:      d(60),
		PreviousStock: d(50),
		NewStock:      d(-10), // la cadena cuadra pero el resultado es negativo
	}

	assert.ErrorIs(t, m.Validate(), domain.ErrInvariantViolation)
}
