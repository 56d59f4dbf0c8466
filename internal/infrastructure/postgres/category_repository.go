package postgres

import (
	"context"
	"fmt"

	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
	"github.com/tiendaflow/tienda-core/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categorias (id, tienda_id, nombre, descripcion, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.StoreID, category.Name, category.Description,
		category.Status, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoría: %w", err)
	}
	return nil
}

// ListActiveByStore lista las categorías activas de la tienda, alfabéticamente,
// con el total de productos de cada una.
func (r *CategoryRepo) ListActiveByStore(storeID string) ([]*entity.Category, error) {
	query := `
		SELECT c.id, c.tienda_id, c.nombre, c.descripcion, c.estado,
		       COUNT(p.id) AS total_productos, c.created_at, c.updated_at
		FROM categorias c
		LEFT JOIN productos p ON c.id = p.categoria_id AND p.tienda_id = c.tienda_id
		WHERE c.tienda_id = $1 AND c.estado = $2
		GROUP BY c.id
		ORDER BY c.nombre ASC`
	rows, err := r.q.Query(context.Background(), query, storeID, entity.CategoryActive)
	if err != nil {
		return nil, fmt.Errorf("list categorías: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.Description, &c.Status,
			&c.ProductCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan categoría: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
