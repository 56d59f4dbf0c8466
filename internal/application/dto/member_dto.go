package dto

import "time"

// CreateMemberRequest entrada para crear un usuario de la tienda (password en texto, se hashea en el use case).
// El rol debe ser admin, vendedor o solo_lectura: un segundo owner no se crea por aquí.
type CreateMemberRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"telefono"`
	Role     string `json:"role"`
}

// UpdateMemberRequest entrada para actualizar un miembro. Campos nil no se tocan.
type UpdateMemberRequest struct {
	Name   *string `json:"nombre"`
	Phone  *string `json:"telefono"`
	Status *string `json:"estado"`
	Role   *string `json:"role"`
}

// MemberResponse salida de un miembro de la tienda (sin password).
type MemberResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"nombre"`
	Email       string     `json:"email"`
	Phone       string     `json:"telefono"`
	Status      string     `json:"estado"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"fecha_ultimo_login,omitempty"`
	AssignedAt  time.Time  `json:"fecha_asignacion"`
	CreatedAt   time.Time  `json:"created_at"`
}
