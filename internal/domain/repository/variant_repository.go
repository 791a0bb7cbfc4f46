package repository

import (
	"context"

	"github.com/tu-usuario/stock-engine/internal/domain/entity"
)

// VariantRepository lectura de variantes (validación de existencia y pertenencia).
type VariantRepository interface {
	// GetByID devuelve la variante (nil si no existe).
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
}
