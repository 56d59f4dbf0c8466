package repository

import "github.com/tiendaflow/tienda-core/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Sin update/delete: las categorías son append-only más soft-delete, gestionado fuera de este núcleo.
type CategoryRepository interface {
	Create(category *entity.Category) error
	// ListActiveByStore lista categorías activas de la tienda, alfabéticamente,
	// con el conteo de productos calculado.
	ListActiveByStore(storeID string) ([]*entity.Category, error)
}
