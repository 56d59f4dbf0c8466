package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
	"github.com/tiendaflow/tienda-core/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación del puerto MembershipRepository sobre PostgreSQL (usable con pool o tx).
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador de persistencia para membresías. Pasar pool o tx (Querier).
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Create persiste una nueva membresía. Una persona tiene a lo sumo un rol por tienda.
func (r *MembershipRepo) Create(m *entity.Membership) error {
	query := `
		INSERT INTO usuarios_tiendas (usuario_id, tienda_id, role, fecha_asignacion)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, m.PersonID, m.StoreID, m.Role, m.AssignedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membresía: %w", err)
	}
	return nil
}

// GetByPersonAndStore obtiene la membresía de una persona en una tienda.
func (r *MembershipRepo) GetByPersonAndStore(personID, storeID string) (*entity.Membership, error) {
	query := `
		SELECT usuario_id, tienda_id, role, fecha_asignacion
		FROM usuarios_tiendas WHERE usuario_id = $1 AND tienda_id = $2`
	var m entity.Membership
	err := r.q.QueryRow(context.Background(), query, personID, storeID).Scan(
		&m.PersonID, &m.StoreID, &m.Role, &m.AssignedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membresía: %w", err)
	}
	return &m, nil
}

// FirstByPerson devuelve la membresía más antigua de la persona.
// Política del login federado: si la persona pertenece a varias tiendas, gana la primera asignada.
func (r *MembershipRepo) FirstByPerson(personID string) (*entity.Membership, error) {
	query := `
		SELECT usuario_id, tienda_id, role, fecha_asignacion
		FROM usuarios_tiendas WHERE usuario_id = $1
		ORDER BY fecha_asignacion ASC LIMIT 1`
	var m entity.Membership
	err := r.q.QueryRow(context.Background(), query, personID).Scan(
		&m.PersonID, &m.StoreID, &m.Role, &m.AssignedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first membresía: %w", err)
	}
	return &m, nil
}

// ListByStore lista los miembros de una tienda con sus datos de persona, más recientes primero.
func (r *MembershipRepo) ListByStore(storeID string) ([]*entity.StoreMember, error) {
	query := `
		SELECT u.id, u.nombre, u.email, u.telefono, u.estado, u.fecha_ultimo_login,
		       u.created_at, u.updated_at, ut.role, ut.fecha_asignacion
		FROM usuarios u
		INNER JOIN usuarios_tiendas ut ON u.id = ut.usuario_id
		WHERE ut.tienda_id = $1
		ORDER BY u.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list miembros: %w", err)
	}
	defer rows.Close()
	var list []*entity.StoreMember
	for rows.Next() {
		var m entity.StoreMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Status, &m.LastLoginAt,
			&m.CreatedAt, &m.UpdatedAt, &m.Role, &m.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan miembro: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpdateRole cambia el rol de la persona en la tienda.
func (r *MembershipRepo) UpdateRole(personID, storeID string, role entity.Role) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE usuarios_tiendas SET role = $3 WHERE usuario_id = $1 AND tienda_id = $2`,
		personID, storeID, role,
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// Delete elimina la membresía de la persona en la tienda.
func (r *MembershipRepo) Delete(personID, storeID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM usuarios_tiendas WHERE usuario_id = $1 AND tienda_id = $2`,
		personID, storeID,
	)
	if err != nil {
		return fmt.Errorf("delete membresía: %w", err)
	}
	return nil
}

// CountByPerson cuenta las membresías de la persona en todas las tiendas.
func (r *MembershipRepo) CountByPerson(personID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM usuarios_tiendas WHERE usuario_id = $1`, personID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count membresías: %w", err)
	}
	return n, nil
}

// CountOwners cuenta los owners de la tienda (para la regla del último owner).
func (r *MembershipRepo) CountOwners(storeID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM usuarios_tiendas WHERE tienda_id = $1 AND role = $2`,
		storeID, entity.RoleOwner).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count owners: %w", err)
	}
	return n, nil
}
