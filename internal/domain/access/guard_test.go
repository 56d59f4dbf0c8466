package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/access"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
)

func TestCanCreateMember(t *testing.T) {
	cases := []struct {
		name    string
		caller  entity.Role
		newRole entity.Role
		wantErr error
	}{
		{"owner crea admin", entity.RoleOwner, entity.RoleAdmin, nil},
		{"owner crea vendedor", entity.RoleOwner, entity.RoleVendedor, nil},
		{"admin crea vendedor", entity.RoleAdmin, entity.RoleVendedor, nil},
		{"admin crea solo_lectura", entity.RoleAdmin, entity.RoleSoloLectura, nil},
		{"admin crea admin", entity.RoleAdmin, entity.RoleAdmin, nil},
		{"vendedor no crea a nadie", entity.RoleVendedor, entity.RoleVendedor, domain.ErrForbidden},
		{"solo_lectura no crea a nadie", entity.RoleSoloLectura, entity.RoleVendedor, domain.ErrForbidden},
		{"nadie crea un owner", entity.RoleOwner, entity.RoleOwner, domain.ErrInvalidInput},
		{"rol desconocido se rechaza", entity.RoleOwner, entity.Role("superuser"), domain.ErrInvalidInput},
		{"rol vacío se rechaza", entity.RoleAdmin, entity.Role(""), domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := access.CanCreateMember(tc.caller, tc.newRole)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCanUpdateMember(t *testing.T) {
	cases := []struct {
		name    string
		caller  entity.Role
		newRole entity.Role
		wantErr error
	}{
		{"owner cambia rol a admin", entity.RoleOwner, entity.RoleAdmin, nil},
		{"admin cambia rol a vendedor", entity.RoleAdmin, entity.RoleVendedor, nil},
		{"sin cambio de rol solo exige gestión", entity.RoleAdmin, entity.Role(""), nil},
		{"vendedor no actualiza", entity.RoleVendedor, entity.Role(""), domain.ErrForbidden},
		{"promover a owner no pasa por aquí", entity.RoleOwner, entity.RoleOwner, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := access.CanUpdateMember(tc.caller, tc.newRole)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCanDeleteMember(t *testing.T) {
	const (
		callerID = "persona-1"
		targetID = "persona-2"
	)
	cases := []struct {
		name       string
		caller     entity.Role
		targetID   string
		targetRole entity.Role
		wantErr    error
	}{
		{"owner elimina vendedor", entity.RoleOwner, targetID, entity.RoleVendedor, nil},
		{"admin elimina vendedor", entity.RoleAdmin, targetID, entity.RoleVendedor, nil},
		{"owner elimina a otro owner", entity.RoleOwner, targetID, entity.RoleOwner, nil},
		{"admin no elimina a un owner", entity.RoleAdmin, targetID, entity.RoleOwner, domain.ErrForbidden},
		{"vendedor no elimina", entity.RoleVendedor, targetID, entity.RoleVendedor, domain.ErrForbidden},
		{"auto-eliminación bloqueada para owner", entity.RoleOwner, callerID, entity.RoleOwner, domain.ErrSelfDelete},
		{"auto-eliminación bloqueada para admin", entity.RoleAdmin, callerID, entity.RoleAdmin, domain.ErrSelfDelete},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := access.CanDeleteMember(tc.caller, callerID, tc.targetID, tc.targetRole)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestRoleAssignable(t *testing.T) {
	assert.True(t, entity.RoleAdmin.Assignable())
	assert.True(t, entity.RoleVendedor.Assignable())
	assert.True(t, entity.RoleSoloLectura.Assignable())
	assert.False(t, entity.RoleOwner.Assignable(), "owner no es asignable vía gestión de miembros")
	assert.False(t, entity.Role("otro").Assignable())
}
