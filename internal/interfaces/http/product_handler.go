package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendaflow/tienda-core/internal/application/dto"
	"github.com/tiendaflow/tienda-core/internal/application/usecase"
	"github.com/tiendaflow/tienda-core/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List lista los productos de la tienda del caller, con filtros opcionales
// ?categoria_id= y ?search= (substring sobre nombre, código de barras, SKU o marca).
func (h *ProductHandler) List(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tienda_id requerido"})
	}
	filter := repository.ProductFilter{
		CategoryID: c.Query("categoria_id"),
		Search:     c.Query("search"),
	}
	out, err := h.uc.List(storeID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get obtiene un producto por ID dentro de la tienda del caller.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Get(storeID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create crea un producto con sus variantes.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tienda_id requerido"})
	}
	var in dto.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(storeID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualiza un producto reemplazando el conjunto completo de variantes.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	id := c.Params("id")
	var in dto.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(storeID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un producto; sus variantes caen en cascada.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	id := c.Params("id")
	if err := h.uc.Delete(storeID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto eliminado exitosamente"})
}
