package entity

// Role rol de un usuario dentro de una tienda. Enumeración cerrada:
// owner > admin > {vendedor, solo_lectura}. Los dos últimos son base y no comparables
// entre sí (solo difieren en permisos de venta, fuera de este núcleo).
type Role string

const (
	RoleOwner       Role = "owner"
	RoleAdmin       Role = "admin"
	RoleVendedor    Role = "vendedor"
	RoleSoloLectura Role = "solo_lectura"
)

// nivel de privilegio para comparaciones del guard.
var roleLevel = map[Role]int{
	RoleOwner:       3,
	RoleAdmin:       2,
	RoleVendedor:    1,
	RoleSoloLectura: 1,
}

// Valid indica si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	_, ok := roleLevel[r]
	return ok
}

// Assignable indica si el rol puede asignarse vía gestión de miembros.
// owner queda excluido: la transferencia de propiedad no pasa por este camino.
func (r Role) Assignable() bool {
	return r == RoleAdmin || r == RoleVendedor || r == RoleSoloLectura
}

// Level devuelve el nivel de privilegio (0 si el rol es desconocido).
func (r Role) Level() int {
	return roleLevel[r]
}

// CanManageMembers indica si el rol puede crear/actualizar/eliminar miembros.
func (r Role) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

func (r Role) String() string { return string(r) }
