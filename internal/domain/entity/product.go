package entity

import "time"

// Product agrupa variantes vendibles. El CRUD de catálogo vive en el back-office;
// aquí solo se necesita para validar pertenencia y mostrar nombres en listados.
type Product struct {
	ID             string
	OrganizationID string
	Name           string
	CreatedAt      time.Time
}

// Variant es el SKU concreto sobre el que se lleva stock (ej. talla/color).
type Variant struct {
	ID             string
	ProductID      string
	OrganizationID string
	SKU            string
	Name           string
	CreatedAt      time.Time
}
