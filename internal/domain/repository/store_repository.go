package repository

import "github.com/tiendaflow/tienda-core/internal/domain/entity"

// StoreRepository define el puerto de persistencia para Store (DIP).
// Las tiendas se crean en el aprovisionamiento y nunca se eliminan desde este núcleo.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
}
