package repository

import "github.com/tiendaflow/tienda-core/internal/domain/entity"

// PersonRepository define el puerto de persistencia para Person (DIP).
// El email es único global; Create devuelve domain.ErrEmailAlreadyExists si ya existe.
type PersonRepository interface {
	Create(person *entity.Person) error
	GetByID(id string) (*entity.Person, error)
	GetByEmail(email string) (*entity.Person, error)
	// Update actualiza nombre, teléfono y estado (el email es inmutable).
	Update(person *entity.Person) error
	TouchLastLogin(id string) error
	Delete(id string) error
}
