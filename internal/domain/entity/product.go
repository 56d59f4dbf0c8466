package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de una tienda con sus variantes talla/color.
// StockTotal es un campo derivado: siempre igual a la suma del stock de sus variantes,
// recalculado dentro de la misma transacción que cualquier cambio de variantes.
type Product struct {
	ID            string
	StoreID       string
	CategoryID    string // vacío = sin categoría
	CategoryName  string // join en lecturas, no persistido
	Name          string
	Description   string
	Brand         string
	Model         string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Barcode       string
	SKU           string
	ImageURL      string
	StockTotal    int
	Variants      []Variant
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Variant unidad talla/color con stock propio. Vive y muere con su producto
// (ON DELETE CASCADE). Pares (talla, color) duplicados están permitidos.
type Variant struct {
	ID        string
	ProductID string
	Size      string
	Color     string
	Stock     int
}

// Blank indica si la variante está vacía (sin talla ni color); se descartan al persistir.
func (v Variant) Blank() bool {
	return v.Size == "" && v.Color == ""
}
