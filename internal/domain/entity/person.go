package entity

import "time"

// FederatedCredential centinela en password_hash para cuentas creadas vía Google OAuth.
// Una cuenta con este valor no puede hacer login local.
const FederatedCredential = "GOOGLE_OAUTH"

// Estados válidos para Person.
const (
	PersonActive   = "active"
	PersonInactive = "inactive"
	PersonBlocked  = "blocked"
)

// Person representa una persona del sistema. El email es único global e inmutable
// después de la creación. Puede pertenecer a varias tiendas vía Membership.
type Person struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt, o FederatedCredential para cuentas solo-Google
	Phone        string
	Status       string // active, inactive, blocked
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsFederated indica si la cuenta solo puede autenticarse vía proveedor externo.
func (p *Person) IsFederated() bool {
	return p.PasswordHash == FederatedCredential
}
