package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrSelfDelete         = errors.New("no puedes eliminarte a ti mismo")
	ErrLastOwner          = errors.New("la tienda debe conservar al menos un owner")
	ErrConflict           = errors.New("conflicto con el estado actual")
)
