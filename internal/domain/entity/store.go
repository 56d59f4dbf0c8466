package entity

import "time"

// Planes disponibles para una tienda.
const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPremium = "premium"
)

// Store representa una tienda/tenant del sistema. Aísla productos, categorías y membresías.
// Plan y trial los muta el módulo de facturación, aquí solo se crean y se leen.
type Store struct {
	ID           string
	Name         string
	Email        string
	Plan         string // free, basic, premium
	TrialEndsAt  *time.Time
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
