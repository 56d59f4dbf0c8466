package dto

// RegisterRequest registro local: crea tienda + usuario owner atómicamente.
type RegisterRequest struct {
	Name      string `json:"nombre"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	StoreName string `json:"tienda_nombre"`
}

// LoginRequest login local con email y password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser perfil que viaja junto al token (también serializado en el callback de Google).
type SessionUser struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Email     string `json:"email"`
	StoreID   string `json:"tienda_id"`
	StoreName string `json:"tienda_nombre"`
	Plan      string `json:"plan"`
	Role      string `json:"role"`
}

// AuthResponse salida de login/registro: token + perfil.
type AuthResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
