package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariantInput variante talla/color de entrada. Las vacías (sin talla ni color) se descartan.
type VariantInput struct {
	Size  string `json:"talla"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
}

// ProductInput entrada para crear o actualizar un producto.
// Solo nombre y precio_venta son obligatorios; precio_compra por defecto 0.
// En update, el conjunto de variantes REEMPLAZA completo al existente.
type ProductInput struct {
	Name          string          `json:"nombre"`
	Description   string          `json:"descripcion"`
	Brand         string          `json:"marca"`
	Model         string          `json:"modelo"`
	CategoryID    string          `json:"categoria_id"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	Barcode       string          `json:"codigo_barras"`
	SKU           string          `json:"sku"`
	ImageURL      string          `json:"imagen_url"`
	Variants      []VariantInput  `json:"variantes"`
}

// VariantResponse salida de una variante.
type VariantResponse struct {
	ID    string `json:"id"`
	Size  string `json:"talla"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
}

// ProductResponse salida de un producto con variantes y stock agregado.
type ProductResponse struct {
	ID            string            `json:"id"`
	StoreID       string            `json:"tienda_id"`
	CategoryID    string            `json:"categoria_id,omitempty"`
	CategoryName  string            `json:"categoria_nombre,omitempty"`
	Name          string            `json:"nombre"`
	Description   string            `json:"descripcion"`
	Brand         string            `json:"marca"`
	Model         string            `json:"modelo"`
	PurchasePrice decimal.Decimal   `json:"precio_compra"`
	SalePrice     decimal.Decimal   `json:"precio_venta"`
	Barcode       string            `json:"codigo_barras"`
	SKU           string            `json:"sku"`
	ImageURL      string            `json:"imagen_url"`
	StockTotal    int               `json:"stock_total"`
	Variants      []VariantResponse `json:"variantes"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
