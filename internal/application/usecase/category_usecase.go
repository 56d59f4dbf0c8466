package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tiendaflow/tienda-core/internal/application/dto"
	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
	"github.com/tiendaflow/tienda-core/internal/domain/repository"
)

// CategoryUseCase casos de uso para categorías: listado activo y creación.
// Append-only más soft-delete; el borrado lógico se gestiona fuera de este núcleo.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List lista las categorías activas de la tienda con su total de productos.
func (uc *CategoryUseCase) List(storeID string) ([]dto.CategoryResponse, error) {
	categories, err := uc.repo.ListActiveByStore(storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Create crea una categoría. El nombre es obligatorio.
func (uc *CategoryUseCase) Create(storeID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Status:      entity.CategoryActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	out := toCategoryResponse(category)
	return &out, nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:           c.ID,
		StoreID:      c.StoreID,
		Name:         c.Name,
		Description:  c.Description,
		Status:       c.Status,
		ProductCount: c.ProductCount,
		CreatedAt:    c.CreatedAt,
	}
}
