package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendaflow/tienda-core/internal/application/dto"
	"github.com/tiendaflow/tienda-core/internal/application/usecase"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
)

// MemberHandler maneja las peticiones HTTP para miembros de la tienda (protegido).
// El guard de roles vive en el caso de uso; aquí solo se resuelve el caller.
type MemberHandler struct {
	uc *usecase.MemberUseCase
}

// NewMemberHandler construye el handler.
func NewMemberHandler(uc *usecase.MemberUseCase) *MemberHandler {
	return &MemberHandler{uc: uc}
}

func caller(c *fiber.Ctx) usecase.Caller {
	return usecase.Caller{ID: GetUserID(c), Role: entity.Role(GetRole(c))}
}

// List lista los miembros de la tienda del caller.
func (h *MemberHandler) List(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tienda_id requerido"})
	}
	out, err := h.uc.List(storeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create crea un usuario de la tienda con su membresía (solo owner/admin).
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tienda_id requerido"})
	}
	var in dto.CreateMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(storeID, caller(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualiza datos y/o rol de un miembro (solo owner/admin).
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	id := c.Params("id")
	var in dto.UpdateMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Update(storeID, caller(c), id, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "usuario actualizado exitosamente"})
}

// Delete revoca la membresía de un miembro (solo owner/admin, sin auto-eliminación).
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	id := c.Params("id")
	if err := h.uc.Delete(storeID, caller(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "usuario eliminado exitosamente"})
}
