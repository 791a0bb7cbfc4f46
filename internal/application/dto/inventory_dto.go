package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	"github.com/tu-usuario/stock-engine/internal/domain/inventory"
)

// AdjustStockRequest body para POST /api/inventory/adjustments.
// Type: in | out | adjustment. Quantity siempre positiva (el signo lo da el tipo).
type AdjustStockRequest struct {
	VariantID string          `json:"variant_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason,omitempty"`
	Reference string          `json:"reference,omitempty"`
	LotNumber string          `json:"lot_number,omitempty"`
}

// TransferStockRequest body para POST /api/inventory/transfers.
type TransferStockRequest struct {
	FromVariantID string          `json:"from_variant_id"`
	ToVariantID   string          `json:"to_variant_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason,omitempty"`
	Reference     string          `json:"reference,omitempty"`
}

// ReservationRequest body para POST/DELETE /api/inventory/reservations.
type ReservationRequest struct {
	VariantID string          `json:"variant_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// FulfillmentLine línea de despacho de una orden.
type FulfillmentLine struct {
	VariantID string          `json:"variant_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	LotNumber string          `json:"lot_number,omitempty"`
}

// FulfillOrderRequest body para POST /api/inventory/fulfillment (workflow de órdenes).
type FulfillOrderRequest struct {
	OrderID string            `json:"order_id"`
	Lines   []FulfillmentLine `json:"lines"`
}

// MovementDTO representación de un movimiento del ledger en respuestas.
type MovementDTO struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	VariantID     string          `json:"variant_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reason        string          `json:"reason,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	LotNumber     string          `json:"lot_number,omitempty"`
	TransactionID string          `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// NewMovementDTO mapea la entidad del ledger al DTO de respuesta.
func NewMovementDTO(m *entity.StockMovement) MovementDTO {
	return MovementDTO{
		ID:            m.ID,
		ProductID:     m.ProductID,
		VariantID:     m.VariantID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Reference:     m.Reference,
		LotNumber:     m.LotNumber,
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// AdjustmentResponse respuesta de un ajuste: el movimiento creado y la
// disponibilidad fresca de la variante.
type AdjustmentResponse struct {
	Movement     MovementDTO            `json:"movement"`
	Availability inventory.Availability `json:"availability"`
}

// TransferResponse respuesta de un traslado: las dos mitades y ambas disponibilidades.
type TransferResponse struct {
	OutMovement MovementDTO            `json:"out_movement"`
	InMovement  MovementDTO            `json:"in_movement"`
	From        inventory.Availability `json:"from"`
	To          inventory.Availability `json:"to"`
}

// FulfillmentResponse respuesta del despacho de una orden.
type FulfillmentResponse struct {
	OrderID        string                   `json:"order_id"`
	Movements      []MovementDTO            `json:"movements"`
	Availabilities []inventory.Availability `json:"availabilities"`
}

// StockSummaryItemDTO fila del listado de inventario: datos de catálogo más
// la instantánea de disponibilidad y su clase de filtro (out|low|ok).
type StockSummaryItemDTO struct {
	SKU         string `json:"sku"`
	VariantName string `json:"variant_name"`
	ProductName string `json:"product_name"`
	inventory.Availability
	Class string `json:"class"`
}

// StockCountsDTO conteos agregados del listado; se calculan en la misma pasada
// que las filas para que nunca discrepen.
type StockCountsDTO struct {
	Total int `json:"total"`
	Out   int `json:"out"`
	Low   int `json:"low"`
	OK    int `json:"ok"`
}

// StockSummaryResponse respuesta de GET /api/inventory/stock.
type StockSummaryResponse struct {
	Counts StockCountsDTO        `json:"counts"`
	Items  []StockSummaryItemDTO `json:"items"`
	Page   PageResponse          `json:"page"`
}

// MovementListResponse respuesta de GET /api/inventory/movements.
type MovementListResponse struct {
	Movements []MovementDTO `json:"movements"`
	Page      PageResponse  `json:"page"`
}
