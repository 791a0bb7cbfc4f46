package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
)

// Clases de filtro de la pantalla de inventario.
const (
	StockClassOut = "out" // sin disponible
	StockClassLow = "low" // disponible <= umbral
	StockClassOK  = "ok"
)

// Availability es la instantánea derivada del estado de stock de una variante.
// Es un valor puro: mismo estado, mismo resultado.
type Availability struct {
	VariantID      string          `json:"variant_id"`
	ProductID      string          `json:"product_id"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	ReservedStock  decimal.Decimal `json:"reserved_stock"`
	AvailableStock decimal.Decimal `json:"available_stock"`
	Threshold      decimal.Decimal `json:"low_stock_threshold"`
	IsLowStock     bool            `json:"is_low_stock"`
	IsOutOfStock   bool            `json:"is_out_of_stock"`
}

// ComputeAvailability deriva la disponibilidad de una variante (servicio de dominio puro):
//
//	AvailableStock = max(0, CurrentStock - ReservedStock)
//	IsLowStock     = AvailableStock <= umbral (propio de la variante, o el de la organización)
//
// Todos los consumidores (listado, conteos por filtro, widget del dashboard,
// informe PDF) pasan por esta función: no se recalcula inline en ningún otro sitio,
// para que las cifras nunca discrepen entre pantallas.
func ComputeAvailability(state *entity.VariantStockState, defaultThreshold decimal.Decimal) Availability {
	threshold := defaultThreshold
	if state.LowStockThreshold != nil {
		threshold = *state.LowStockThreshold
	}

	available := state.CurrentStock.Sub(state.ReservedStock)
	if available.IsNegative() {
		available = decimal.Zero
	}

	return Availability{
		VariantID:      state.VariantID,
		ProductID:      state.ProductID,
		CurrentStock:   state.CurrentStock,
		ReservedStock:  state.ReservedStock,
		AvailableStock: available,
		Threshold:      threshold,
		IsLowStock:     available.LessThanOrEqual(threshold),
		IsOutOfStock:   available.IsZero(),
	}
}

// Class clasifica la disponibilidad para los conteos out/low/ok del listado.
// "out" tiene prioridad sobre "low".
func (a Availability) Class() string {
	switch {
	case a.IsOutOfStock:
		return StockClassOut
	case a.IsLowStock:
		return StockClassLow
	default:
		return StockClassOK
	}
}
