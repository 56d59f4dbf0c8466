package repository

import "github.com/tiendaflow/tienda-core/internal/domain/entity"

// MembershipRepository define el puerto de persistencia para Membership (DIP).
type MembershipRepository interface {
	Create(m *entity.Membership) error
	GetByPersonAndStore(personID, storeID string) (*entity.Membership, error)
	// FirstByPerson devuelve la membresía más antigua de la persona (fecha_asignacion ASC).
	// Es la que gana en el login federado cuando la persona pertenece a varias tiendas.
	FirstByPerson(personID string) (*entity.Membership, error)
	ListByStore(storeID string) ([]*entity.StoreMember, error)
	UpdateRole(personID, storeID string, role entity.Role) error
	Delete(personID, storeID string) error
	CountByPerson(personID string) (int, error)
	CountOwners(storeID string) (int, error)
}
