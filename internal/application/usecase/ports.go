package usecase

import (
	"context"

	"github.com/tiendaflow/tienda-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para las escrituras multi-tabla del núcleo:
// producto+variantes+stock agregado y persona+membresía.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		personRepo repository.PersonRepository,
		membershipRepo repository.MembershipRepository,
	) error) error
}
