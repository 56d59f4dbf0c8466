package repository

import "github.com/tiendaflow/tienda-core/internal/domain/entity"

// ProductFilter filtros para listados de productos.
type ProductFilter struct {
	CategoryID string
	Search     string // substring case-insensitive sobre nombre, código de barras, SKU o marca
}

// ProductRepository define el puerto de persistencia para Product y sus variantes (DIP).
// Todas las operaciones están ancladas a la tienda: un producto de otra tienda es ErrNotFound.
// Las operaciones de variantes son granulares para que el caso de uso orqueste la
// transacción (insertar, reemplazar, recalcular stock) vía TxRunner.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByStore(storeID, id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// Delete elimina el producto; las variantes caen por ON DELETE CASCADE.
	// Devuelve domain.ErrNotFound si el producto no existe en esa tienda.
	Delete(storeID, id string) error
	ListByStore(storeID string, filter ProductFilter) ([]*entity.Product, error)

	InsertVariant(v *entity.Variant) error
	DeleteVariants(productID string) error
	ListVariants(productID string) ([]entity.Variant, error)
	// SumVariantStock devuelve SUM(stock) de las variantes del producto (0 si no hay).
	SumVariantStock(productID string) (int, error)
	UpdateStockTotal(productID string, total int) error
}
