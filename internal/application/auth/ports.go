package auth

import (
	"context"

	"github.com/tiendaflow/tienda-core/internal/domain/repository"
)

// ProvisionTxRunner ejecuta el aprovisionamiento dentro de una transacción:
// Store + Person + Membership persisten juntos o ninguno lo hace.
type ProvisionTxRunner interface {
	RunProvision(ctx context.Context, fn func(
		storeRepo repository.StoreRepository,
		personRepo repository.PersonRepository,
		membershipRepo repository.MembershipRepository,
	) error) error
}
