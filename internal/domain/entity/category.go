package entity

import "time"

// Estados válidos para Category (soft-delete vía estado, nunca borrado físico,
// para que productos históricos conserven su etiqueta).
const (
	CategoryActive   = "activo"
	CategoryInactive = "inactivo"
)

// Category representa una categoría de productos de una tienda.
type Category struct {
	ID           string
	StoreID      string
	Name         string
	Description  string
	Status       string // activo, inactivo
	ProductCount int    // calculado en listados, no persistido
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
