package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tiendaflow/tienda-core/internal/application/auth"
	"github.com/tiendaflow/tienda-core/internal/application/usecase"
	"github.com/tiendaflow/tienda-core/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)
var _ auth.ProvisionTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Es la unidad de trabajo del núcleo: o todo el callback persiste, o nada.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	personRepo repository.PersonRepository,
	membershipRepo repository.MembershipRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	personRepo := NewPersonRepository(tx)
	membershipRepo := NewMembershipRepository(tx)

	if err := fn(productRepo, personRepo, membershipRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProvision inicia una transacción con repos de tienda, persona y membresía
// (aprovisionamiento: Store + Person + Membership nacen juntos o no nacen).
func (r *TxRunner) RunProvision(ctx context.Context, fn func(
	storeRepo repository.StoreRepository,
	personRepo repository.PersonRepository,
	membershipRepo repository.MembershipRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	storeRepo := NewStoreRepository(tx)
	personRepo := NewPersonRepository(tx)
	membershipRepo := NewMembershipRepository(tx)

	if err := fn(storeRepo, personRepo, membershipRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
