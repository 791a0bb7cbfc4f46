package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	"github.com/tu-usuario/stock-engine/internal/domain/inventory"
)

// CreateLotRequest body para POST /api/inventory/lots.
type CreateLotRequest struct {
	LotNumber       string          `json:"lot_number"`
	VariantID       string          `json:"variant_id"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	ManufacturedAt  time.Time       `json:"manufactured_at"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	Supplier        string          `json:"supplier,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// ConsumeLotRequest body para POST /api/inventory/lots/:lotNumber/consume.
type ConsumeLotRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// LotDTO lote con su estado derivado (recalculado en cada consulta, nunca almacenado).
type LotDTO struct {
	ID              string          `json:"id"`
	LotNumber       string          `json:"lot_number"`
	ProductID       string          `json:"product_id"`
	VariantID       string          `json:"variant_id"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	ManufacturedAt  time.Time       `json:"manufactured_at"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	Supplier        string          `json:"supplier,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	DaysUntilExpiry *int            `json:"days_until_expiry"`
	Urgent          bool            `json:"urgent"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewLotDTO mapea la entidad y su clasificación al DTO de respuesta.
func NewLotDTO(lot *entity.Lot, c inventory.LotClassification) LotDTO {
	return LotDTO{
		ID:              lot.ID,
		LotNumber:       lot.LotNumber,
		ProductID:       lot.ProductID,
		VariantID:       lot.VariantID,
		InitialQuantity: lot.InitialQuantity,
		CurrentQuantity: lot.CurrentQuantity,
		ManufacturedAt:  lot.ManufacturedAt,
		ExpiryDate:      lot.ExpiryDate,
		Supplier:        lot.Supplier,
		Notes:           lot.Notes,
		Status:          c.Status,
		DaysUntilExpiry: c.DaysUntilExpiry,
		Urgent:          c.Urgent,
		CreatedAt:       lot.CreatedAt,
	}
}

// LotCountsDTO conteos por estado para las alertas de la pantalla de lotes.
type LotCountsDTO struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Depleted int `json:"depleted"`
	Urgent   int `json:"urgent"`
}

// LotListResponse respuesta de GET /api/inventory/lots.
type LotListResponse struct {
	Counts LotCountsDTO `json:"counts"`
	Lots   []LotDTO     `json:"lots"`
}

// LotReconciliationDTO informe de conciliación lotes vs. contador de la variante.
// Solo lectura: los lotes son trazabilidad opcional y el delta no se considera error.
type LotReconciliationDTO struct {
	VariantID    string          `json:"variant_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	LotTotal     decimal.Decimal `json:"lot_total"`
	Delta        decimal.Decimal `json:"delta"` // CurrentStock - LotTotal
}
