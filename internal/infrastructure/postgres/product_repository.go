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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Todas las consultas filtran por tienda_id: un producto de otra tienda no existe para el caller.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. StockTotal lo recalcula el caso de uso tras insertar variantes.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO productos (id, tienda_id, categoria_id, nombre, descripcion, marca, modelo,
			precio_compra, precio_venta, codigo_barras, sku, imagen_url, stock_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.StoreID, nullIfEmpty(product.CategoryID), product.Name, product.Description,
		product.Brand, product.Model, product.PurchasePrice, product.SalePrice,
		product.Barcode, product.SKU, product.ImageURL, product.StockTotal,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByStore obtiene un producto por ID dentro de la tienda, con sus variantes.
// Devuelve nil si no existe o pertenece a otra tienda (indistinguible a propósito).
func (r *ProductRepo) GetByStore(storeID, id string) (*entity.Product, error) {
	query := `
		SELECT p.id, p.tienda_id, p.categoria_id, COALESCE(c.nombre, ''), p.nombre, p.descripcion,
		       p.marca, p.modelo, p.precio_compra, p.precio_venta, p.codigo_barras, p.sku,
		       p.imagen_url, p.stock_total, p.created_at, p.updated_at
		FROM productos p
		LEFT JOIN categorias c ON p.categoria_id = c.id
		WHERE p.id = $1 AND p.tienda_id = $2`
	p, err := r.scanProduct(r.q.QueryRow(context.Background(), query, id, storeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	variants, err := r.ListVariants(p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

// Update actualiza los campos del producto (no el stock_total, ese va por UpdateStockTotal).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE productos SET categoria_id = $3, nombre = $4, descripcion = $5, marca = $6, modelo = $7,
			precio_compra = $8, precio_venta = $9, codigo_barras = $10, sku = $11, imagen_url = $12,
			updated_at = $13
		WHERE id = $1 AND tienda_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.StoreID, nullIfEmpty(product.CategoryID), product.Name, product.Description,
		product.Brand, product.Model, product.PurchasePrice, product.SalePrice,
		product.Barcode, product.SKU, product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// Delete elimina el producto de la tienda; las variantes caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(storeID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM productos WHERE id = $1 AND tienda_id = $2`, id, storeID)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStore lista productos de la tienda con variantes embebidas, más recientes primero.
// Search hace substring case-insensitive sobre nombre, código de barras, SKU y marca.
func (r *ProductRepo) ListByStore(storeID string, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.tienda_id, p.categoria_id, COALESCE(c.nombre, ''), p.nombre, p.descripcion,
		       p.marca, p.modelo, p.precio_compra, p.precio_venta, p.codigo_barras, p.sku,
		       p.imagen_url, p.stock_total, p.created_at, p.updated_at
		FROM productos p
		LEFT JOIN categorias c ON p.categoria_id = c.id
		WHERE p.tienda_id = $1`
	args := []any{storeID}

	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND p.categoria_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(
			" AND (p.nombre ILIKE $%d OR p.codigo_barras ILIKE $%d OR p.sku ILIKE $%d OR p.marca ILIKE $%d)",
			n, n, n, n)
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		variants, err := r.ListVariants(p.ID)
		if err != nil {
			return nil, err
		}
		p.Variants = variants
	}
	return list, nil
}

// InsertVariant persiste una variante talla/color.
func (r *ProductRepo) InsertVariant(v *entity.Variant) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO producto_tallas (id, producto_id, talla, color, stock) VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.ProductID, v.Size, v.Color, v.Stock,
	)
	if err != nil {
		return fmt.Errorf("insert variante: %w", err)
	}
	return nil
}

// DeleteVariants elimina todas las variantes del producto (previo al reemplazo completo).
func (r *ProductRepo) DeleteVariants(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM producto_tallas WHERE producto_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete variantes: %w", err)
	}
	return nil
}

// ListVariants lista las variantes del producto ordenadas por talla y color.
func (r *ProductRepo) ListVariants(productID string) ([]entity.Variant, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, producto_id, talla, color, stock FROM producto_tallas
		 WHERE producto_id = $1 ORDER BY talla, color`, productID)
	if err != nil {
		return nil, fmt.Errorf("list variantes: %w", err)
	}
	defer rows.Close()
	var list []entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.Stock); err != nil {
			return nil, fmt.Errorf("scan variante: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// SumVariantStock suma el stock de las variantes del producto (0 si no hay).
func (r *ProductRepo) SumVariantStock(productID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(stock), 0) FROM producto_tallas WHERE producto_id = $1`,
		productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum stock variantes: %w", err)
	}
	return total, nil
}

// UpdateStockTotal persiste el agregado de stock del producto.
func (r *ProductRepo) UpdateStockTotal(productID string, total int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock_total = $2 WHERE id = $1`, productID, total)
	if err != nil {
		return fmt.Errorf("update stock total: %w", err)
	}
	return nil
}

// scanProduct escanea una fila de producto (con nombre de categoría ya unido).
func (r *ProductRepo) scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := row.Scan(
		&p.ID, &p.StoreID, &categoryID, &p.CategoryName, &p.Name, &p.Description,
		&p.Brand, &p.Model, &p.PurchasePrice, &p.SalePrice, &p.Barcode, &p.SKU,
		&p.ImageURL, &p.StockTotal, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}
