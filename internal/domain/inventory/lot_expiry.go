package inventory

import (
	"math"
	"time"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
)

// LotClassification estado derivado de un lote en un instante dado.
type LotClassification struct {
	Status string `json:"status"` // active | expiring | depleted
	// DaysUntilExpiry nil cuando el lote no tiene fecha de vencimiento.
	DaysUntilExpiry *int `json:"days_until_expiry"`
	// Urgent: vence en menos de urgentDays y aún tiene saldo.
	Urgent bool `json:"urgent"`
}

// ClassifyLot deriva el estado de un lote. Determinista para un mismo "now":
// los filtros de listado y los conteos de alertas de una misma petición deben
// usar el mismo instante.
//
// Prioridad: depleted (saldo 0) pisa todo lo demás; luego expiring si quedan
// menos de horizonDays; si no, active.
func ClassifyLot(lot *entity.Lot, now time.Time, horizonDays, urgentDays int) LotClassification {
	var days *int
	if lot.ExpiryDate != nil {
		d := daysUntil(now, *lot.ExpiryDate)
		days = &d
	}

	if lot.CurrentQuantity.IsZero() {
		return LotClassification{Status: entity.LotStatusDepleted, DaysUntilExpiry: days}
	}

	if days != nil && *days < horizonDays {
		return LotClassification{
			Status:          entity.LotStatusExpiring,
			DaysUntilExpiry: days,
			Urgent:          *days < urgentDays,
		}
	}

	return LotClassification{Status: entity.LotStatusActive, DaysUntilExpiry: days}
}

// daysUntil días hasta expiry redondeando hacia arriba: 12 horas cuentan como 1 día.
func daysUntil(now, expiry time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}
