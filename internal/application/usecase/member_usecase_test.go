package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tiendaflow/tienda-core/internal/application/dto"
	"github.com/tiendaflow/tienda-core/internal/application/usecase"
	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
	"github.com/tiendaflow/tienda-core/internal/testutil"
)

func newMemberUC(mem *testutil.Mem) *usecase.MemberUseCase {
	return usecase.NewMemberUseCase(mem.MembershipPort(), mem)
}

// seedMember crea una persona con membresía en la tienda y devuelve su ID.
func seedMember(t *testing.T, mem *testutil.Mem, storeID, email string, role entity.Role) string {
	t.Helper()
	id := "persona-" + email
	now := time.Now()
	require.NoError(t, mem.PersonPort().Create(&entity.Person{
		ID: id, Name: "Usuario " + email, Email: email,
		PasswordHash: "$2a$10$hashfalsoparaeltest", Status: entity.PersonActive,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, mem.MembershipPort().Create(&entity.Membership{
		PersonID: id, StoreID: storeID, Role: role, AssignedAt: now,
	}))
	return id
}

func callerAs(id string, role entity.Role) usecase.Caller {
	return usecase.Caller{ID: id, Role: role}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestMemberCreate_AdminCreaVendedor(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	adminID := seedMember(t, mem, tiendaA, "admin@x.com", entity.RoleAdmin)

	created, err := uc.Create(tiendaA, callerAs(adminID, entity.RoleAdmin), dto.CreateMemberRequest{
		Name: "Pedro", Email: "pedro@x.com", Password: "secreto123", Role: "vendedor",
	})
	require.NoError(t, err)

	assert.Equal(t, "vendedor", created.Role)
	person := mem.Persons[created.ID]
	require.NotNil(t, person, "la persona debe quedar persistida")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte("secreto123")),
		"el password debe guardarse hasheado con bcrypt")
	assert.NotEqual(t, "secreto123", person.PasswordHash)
}

func TestMemberCreate_Rechazos(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	adminID := seedMember(t, mem, tiendaA, "admin@x.com", entity.RoleAdmin)
	vendedorID := seedMember(t, mem, tiendaA, "vende@x.com", entity.RoleVendedor)

	base := dto.CreateMemberRequest{Name: "Pedro", Email: "pedro@x.com", Password: "secreto123", Role: "vendedor"}

	cases := []struct {
		name    string
		caller  usecase.Caller
		mutate  func(*dto.CreateMemberRequest)
		wantErr error
	}{
		{"vendedor no crea miembros", callerAs(vendedorID, entity.RoleVendedor), nil, domain.ErrForbidden},
		{"rol owner no asignable", callerAs(adminID, entity.RoleAdmin),
			func(r *dto.CreateMemberRequest) { r.Role = "owner" }, domain.ErrInvalidInput},
		{"rol desconocido", callerAs(adminID, entity.RoleAdmin),
			func(r *dto.CreateMemberRequest) { r.Role = "gerente" }, domain.ErrInvalidInput},
		{"password corto", callerAs(adminID, entity.RoleAdmin),
			func(r *dto.CreateMemberRequest) { r.Password = "corto" }, domain.ErrInvalidInput},
		{"email inválido", callerAs(adminID, entity.RoleAdmin),
			func(r *dto.CreateMemberRequest) { r.Email = "no-es-email" }, domain.ErrInvalidInput},
		{"nombre vacío", callerAs(adminID, entity.RoleAdmin),
			func(r *dto.CreateMemberRequest) { r.Name = "  " }, domain.ErrInvalidInput},
		{"email ya registrado", callerAs(adminID, entity.RoleAdmin),
			func(r *dto.CreateMemberRequest) { r.Email = "admin@x.com" }, domain.ErrEmailAlreadyExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			if tc.mutate != nil {
				tc.mutate(&in)
			}
			_, err := uc.Create(tiendaA, tc.caller, in)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Len(t, mem.Persons, 2, "ningún rechazo debe dejar personas nuevas")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestMemberUpdate_CambioDeRolYDatos(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	ownerID := seedMember(t, mem, tiendaA, "owner@x.com", entity.RoleOwner)
	targetID := seedMember(t, mem, tiendaA, "vende@x.com", entity.RoleVendedor)

	nombre := "Renombrado"
	rol := "admin"
	err := uc.Update(tiendaA, callerAs(ownerID, entity.RoleOwner), targetID, dto.UpdateMemberRequest{
		Name: &nombre, Role: &rol,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renombrado", mem.Persons[targetID].Name)
	mb, err := mem.MembershipPort().GetByPersonAndStore(targetID, tiendaA)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, mb.Role)
}

func TestMemberUpdate_MiembroInexistente(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	ownerID := seedMember(t, mem, tiendaA, "owner@x.com", entity.RoleOwner)

	err := uc.Update(tiendaA, callerAs(ownerID, entity.RoleOwner), "persona-fantasma", dto.UpdateMemberRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemberUpdate_EstadoInvalido(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	ownerID := seedMember(t, mem, tiendaA, "owner@x.com", entity.RoleOwner)
	targetID := seedMember(t, mem, tiendaA, "vende@x.com", entity.RoleVendedor)

	estado := "congelado"
	err := uc.Update(tiendaA, callerAs(ownerID, entity.RoleOwner), targetID, dto.UpdateMemberRequest{Status: &estado})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Demover al único owner dejaría la tienda sin dueño: se rechaza.
func TestMemberUpdate_NoDemuevaAlUltimoOwner(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	ownerID := seedMember(t, mem, tiendaA, "owner@x.com", entity.RoleOwner)

	rol := "admin"
	err := uc.Update(tiendaA, callerAs(ownerID, entity.RoleOwner), ownerID, dto.UpdateMemberRequest{Role: &rol})
	assert.ErrorIs(t, err, domain.ErrLastOwner)

	mb, _ := mem.MembershipPort().GetByPersonAndStore(ownerID, tiendaA)
	assert.Equal(t, entity.RoleOwner, mb.Role, "el rol no debe cambiar")
}

// Con dos owners, demover a uno sí está permitido.
func TestMemberUpdate_DemuevaOwnerConOtroOwnerPresente(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	owner1 := seedMember(t, mem, tiendaA, "owner1@x.com", entity.RoleOwner)
	owner2 := seedMember(t, mem, tiendaA, "owner2@x.com", entity.RoleOwner)

	rol := "admin"
	err := uc.Update(tiendaA, callerAs(owner1, entity.RoleOwner), owner2, dto.UpdateMemberRequest{Role: &rol})
	require.NoError(t, err)

	mb, _ := mem.MembershipPort().GetByPersonAndStore(owner2, tiendaA)
	assert.Equal(t, entity.RoleAdmin, mb.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestMemberDelete_EliminaMembresiaYPersona(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	adminID := seedMember(t, mem, tiendaA, "admin@x.com", entity.RoleAdmin)
	targetID := seedMember(t, mem, tiendaA, "vende@x.com", entity.RoleVendedor)

	require.NoError(t, uc.Delete(tiendaA, callerAs(adminID, entity.RoleAdmin), targetID))

	mb, _ := mem.MembershipPort().GetByPersonAndStore(targetID, tiendaA)
	assert.Nil(t, mb, "la membresía debe desaparecer")
	assert.Nil(t, mem.Persons[targetID], "sin otras membresías, la persona también se elimina")
}

// Si la persona pertenece a otra tienda, solo cae la membresía local.
func TestMemberDelete_ConservaPersonaConOtrasMembresias(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	adminID := seedMember(t, mem, tiendaA, "admin@x.com", entity.RoleAdmin)
	targetID := seedMember(t, mem, tiendaA, "multi@x.com", entity.RoleVendedor)
	require.NoError(t, mem.MembershipPort().Create(&entity.Membership{
		PersonID: targetID, StoreID: tiendaB, Role: entity.RoleVendedor, AssignedAt: time.Now(),
	}))

	require.NoError(t, uc.Delete(tiendaA, callerAs(adminID, entity.RoleAdmin), targetID))

	assert.NotNil(t, mem.Persons[targetID], "la persona sigue existiendo")
	other, _ := mem.MembershipPort().GetByPersonAndStore(targetID, tiendaB)
	assert.NotNil(t, other, "la membresía de la otra tienda queda intacta")
}

func TestMemberDelete_Rechazos(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	ownerID := seedMember(t, mem, tiendaA, "owner@x.com", entity.RoleOwner)
	adminID := seedMember(t, mem, tiendaA, "admin@x.com", entity.RoleAdmin)
	vendedorID := seedMember(t, mem, tiendaA, "vende@x.com", entity.RoleVendedor)

	// Auto-eliminación siempre bloqueada, incluso para el owner.
	err := uc.Delete(tiendaA, callerAs(ownerID, entity.RoleOwner), ownerID)
	assert.ErrorIs(t, err, domain.ErrSelfDelete)

	// Un admin no puede eliminar a un owner.
	err = uc.Delete(tiendaA, callerAs(adminID, entity.RoleAdmin), ownerID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Un vendedor no elimina a nadie.
	err = uc.Delete(tiendaA, callerAs(vendedorID, entity.RoleVendedor), adminID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Miembro inexistente en la tienda.
	err = uc.Delete(tiendaA, callerAs(ownerID, entity.RoleOwner), "persona-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Len(t, mem.Persons, 3, "ningún rechazo debe eliminar personas")
}

// El último owner de la tienda no puede eliminarse, ni siquiera por otro owner.
func TestMemberDelete_UltimoOwnerProtegido(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	owner1 := seedMember(t, mem, tiendaA, "owner1@x.com", entity.RoleOwner)
	owner2 := seedMember(t, mem, tiendaA, "owner2@x.com", entity.RoleOwner)

	// Con dos owners, uno puede eliminar al otro.
	require.NoError(t, uc.Delete(tiendaA, callerAs(owner1, entity.RoleOwner), owner2))

	// Ahora owner1 es el último owner de la tienda: queda protegido.
	otroOwner := seedMember(t, mem, tiendaB, "owner3@x.com", entity.RoleOwner)
	err := uc.Delete(tiendaA, callerAs(otroOwner, entity.RoleOwner), owner1)
	assert.ErrorIs(t, err, domain.ErrLastOwner)

	mb, _ := mem.MembershipPort().GetByPersonAndStore(owner1, tiendaA)
	assert.NotNil(t, mb, "la membresía del último owner debe sobrevivir")
}

func TestMemberList_SoloMiembrosDeLaTienda(t *testing.T) {
	mem := testutil.NewMem()
	uc := newMemberUC(mem)
	seedMember(t, mem, tiendaA, "owner@x.com", entity.RoleOwner)
	seedMember(t, mem, tiendaA, "vende@x.com", entity.RoleVendedor)
	seedMember(t, mem, tiendaB, "ajeno@x.com", entity.RoleOwner)

	members, err := uc.List(tiendaA)
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, m := range members {
		assert.NotEqual(t, "ajeno@x.com", m.Email)
	}
}
