// Package access implementa el guard de autorización para la gestión de miembros.
// Son funciones de decisión puras: se evalúan completas antes de cualquier escritura.
package access

import (
	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
)

// CanCreateMember valida que el caller pueda crear un miembro con el rol dado.
// Solo owner/admin crean miembros; el rol nuevo no puede ser owner por este camino.
func CanCreateMember(caller entity.Role, newRole entity.Role) error {
	if !caller.CanManageMembers() {
		return domain.ErrForbidden
	}
	if !newRole.Assignable() {
		return domain.ErrInvalidInput
	}
	return nil
}

// CanUpdateMember valida que el caller pueda actualizar un miembro.
// Si newRole no es vacío, debe pertenecer al conjunto asignable (owner excluido:
// la transferencia de propiedad no pasa por aquí).
func CanUpdateMember(caller entity.Role, newRole entity.Role) error {
	if !caller.CanManageMembers() {
		return domain.ErrForbidden
	}
	if newRole != "" && !newRole.Assignable() {
		return domain.ErrInvalidInput
	}
	return nil
}

// CanDeleteMember valida que el caller pueda eliminar la membresía del target.
// Reglas: solo owner/admin eliminan; nadie se elimina a sí mismo; solo un owner
// puede eliminar a otro owner.
func CanDeleteMember(caller entity.Role, callerID, targetID string, targetRole entity.Role) error {
	if !caller.CanManageMembers() {
		return domain.ErrForbidden
	}
	if callerID == targetID {
		return domain.ErrSelfDelete
	}
	if targetRole == entity.RoleOwner && caller != entity.RoleOwner {
		return domain.ErrForbidden
	}
	return nil
}
