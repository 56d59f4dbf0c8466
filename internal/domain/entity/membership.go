package entity

import "time"

// Membership vincula una Person con una Store con exactamente un rol.
// Una persona tiene a lo sumo un rol por tienda (UNIQUE en DB).
type Membership struct {
	PersonID   string
	StoreID    string
	Role       Role
	AssignedAt time.Time
}

// StoreMember vista de un miembro para listados: persona + datos de su membresía.
type StoreMember struct {
	Person
	Role       Role
	AssignedAt time.Time
}
