package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. El nombre es obligatorio.
type CreateCategoryRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// CategoryResponse salida de una categoría con el total de productos calculado.
type CategoryResponse struct {
	ID           string    `json:"id"`
	StoreID      string    `json:"tienda_id"`
	Name         string    `json:"nombre"`
	Description  string    `json:"descripcion"`
	Status       string    `json:"estado"`
	ProductCount int       `json:"total_productos"`
	CreatedAt    time.Time `json:"created_at"`
}
