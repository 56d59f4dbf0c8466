package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tiendaflow/tienda-core/internal/application/dto"
	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
	"github.com/tiendaflow/tienda-core/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos con sus variantes talla/color.
// Las escrituras multi-statement (producto + variantes + stock agregado) corren
// dentro de una sola transacción vía TxRunner.
type ProductUseCase struct {
	repo repository.ProductRepository // lecturas fuera de transacción
	tx   TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, tx TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, tx: tx}
}

// List lista los productos de la tienda con variantes, filtrados por categoría y búsqueda.
func (uc *ProductUseCase) List(storeID string, filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListByStore(storeID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Get obtiene un producto de la tienda. ErrNotFound si no existe o es de otra tienda.
func (uc *ProductUseCase) Get(storeID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByStore(storeID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Create crea un producto con sus variantes y deja stock_total igual a la suma
// de stocks insertados. Todo o nada: producto y variantes en la misma transacción.
func (uc *ProductUseCase) Create(storeID string, in dto.ProductInput) (*dto.ProductResponse, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		StoreID:       storeID,
		CategoryID:    in.CategoryID,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Brand:         in.Brand,
		Model:         in.Model,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Barcode:       in.Barcode,
		SKU:           in.SKU,
		ImageURL:      in.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var created *entity.Product
	err := uc.tx.Run(context.Background(), func(
		productRepo repository.ProductRepository,
		_ repository.PersonRepository,
		_ repository.MembershipRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if err := insertVariants(productRepo, product.ID, in.Variants); err != nil {
			return err
		}
		if err := recomputeStock(productRepo, product); err != nil {
			return err
		}
		var err error
		created, err = productRepo.GetByStore(storeID, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(created), nil
}

// Update actualiza el producto y REEMPLAZA el conjunto completo de variantes:
// se borran todas las existentes y se insertan las recibidas, con identidades
// nuevas, recalculando stock_total en la misma transacción.
func (uc *ProductUseCase) Update(storeID, id string, in dto.ProductInput) (*dto.ProductResponse, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	var updated *entity.Product
	err := uc.tx.Run(context.Background(), func(
		productRepo repository.ProductRepository,
		_ repository.PersonRepository,
		_ repository.MembershipRepository,
	) error {
		existing, err := productRepo.GetByStore(storeID, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		existing.CategoryID = in.CategoryID
		existing.Name = strings.TrimSpace(in.Name)
		existing.Description = in.Description
		existing.Brand = in.Brand
		existing.Model = in.Model
		existing.PurchasePrice = in.PurchasePrice
		existing.SalePrice = in.SalePrice
		existing.Barcode = in.Barcode
		existing.SKU = in.SKU
		existing.ImageURL = in.ImageURL
		existing.UpdatedAt = time.Now()

		if err := productRepo.Update(existing); err != nil {
			return err
		}
		if err := productRepo.DeleteVariants(id); err != nil {
			return err
		}
		if err := insertVariants(productRepo, id, in.Variants); err != nil {
			return err
		}
		if err := recomputeStock(productRepo, existing); err != nil {
			return err
		}
		updated, err = productRepo.GetByStore(storeID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Delete elimina el producto; las variantes caen en cascada con él.
func (uc *ProductUseCase) Delete(storeID, id string) error {
	return uc.repo.Delete(storeID, id)
}

func validateProductInput(in dto.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.SalePrice.IsNegative() {
		return fmt.Errorf("%w: precio_venta no puede ser negativo", domain.ErrInvalidInput)
	}
	for _, v := range in.Variants {
		if v.Stock < 0 {
			return fmt.Errorf("%w: stock de variante no puede ser negativo", domain.ErrInvalidInput)
		}
	}
	return nil
}

// insertVariants persiste las variantes no vacías con identidades frescas.
func insertVariants(repo repository.ProductRepository, productID string, variants []dto.VariantInput) error {
	for _, in := range variants {
		v := entity.Variant{
			ID:        uuid.New().String(),
			ProductID: productID,
			Size:      in.Size,
			Color:     in.Color,
			Stock:     in.Stock,
		}
		if v.Blank() {
			continue
		}
		if err := repo.InsertVariant(&v); err != nil {
			return err
		}
	}
	return nil
}

// recomputeStock fija stock_total = SUM(stock de variantes), dentro de la tx en curso.
func recomputeStock(repo repository.ProductRepository, p *entity.Product) error {
	total, err := repo.SumVariantStock(p.ID)
	if err != nil {
		return err
	}
	p.StockTotal = total
	return repo.UpdateStockTotal(p.ID, total)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	variants := make([]dto.VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, dto.VariantResponse{ID: v.ID, Size: v.Size, Color: v.Color, Stock: v.Stock})
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		StoreID:       p.StoreID,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		Name:          p.Name,
		Description:   p.Description,
		Brand:         p.Brand,
		Model:         p.Model,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Barcode:       p.Barcode,
		SKU:           p.SKU,
		ImageURL:      p.ImageURL,
		StockTotal:    p.StockTotal,
		Variants:      variants,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
