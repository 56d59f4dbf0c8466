package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendaflow/tienda-core/internal/application/auth"
	"github.com/tiendaflow/tienda-core/internal/application/dto"
	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
	"github.com/tiendaflow/tienda-core/internal/testutil"
	pkgjwt "github.com/tiendaflow/tienda-core/pkg/jwt"
)

const testSecret = "secret-de-tests-auth"

func newAuthUC(mem *testutil.Mem) *auth.AuthUseCase {
	return auth.NewAuthUseCase(
		mem.PersonPort(), mem.StorePort(), mem.MembershipPort(), mem,
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "tienda-core-test"},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro local
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_AprovisionaTiendaYOwner(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)

	resp, err := uc.Register(dto.RegisterRequest{
		Name: "Juan Pérez", Email: "juan@x.com", Password: "secreto123",
	})
	require.NoError(t, err)

	assert.Equal(t, "owner", resp.User.Role, "el fundador siempre es owner")
	assert.Equal(t, "Tienda de Juan", resp.User.StoreName, "sin nombre de tienda se deriva del primer nombre")
	assert.Equal(t, entity.PlanFree, resp.User.Plan)

	// El token debe llevar los claims de la sesión.
	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, resp.User.StoreID, claims.StoreID)
	assert.Equal(t, "owner", claims.Role)

	// Estado persistido: una persona, una tienda con trial de 3 meses, una membresía owner.
	require.Len(t, mem.Persons, 1)
	require.Len(t, mem.Stores, 1)
	require.Len(t, mem.Memberships, 1)
	store := mem.Stores[resp.User.StoreID]
	require.NotNil(t, store.TrialEndsAt)
	esperado := time.Now().AddDate(0, auth.TrialMonths, 0)
	assert.WithinDuration(t, esperado, *store.TrialEndsAt, time.Minute)
	assert.Equal(t, entity.RoleOwner, mem.Memberships[0].Role)
}

func TestRegister_RespetaNombreDeTienda(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)

	resp, err := uc.Register(dto.RegisterRequest{
		Name: "Ana", Email: "ana@x.com", Password: "secreto123", StoreName: "Boutique Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "Boutique Ana", resp.User.StoreName)
}

func TestRegister_Validaciones(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)

	cases := []struct {
		name string
		in   dto.RegisterRequest
	}{
		{"nombre vacío", dto.RegisterRequest{Name: " ", Email: "a@x.com", Password: "secreto123"}},
		{"email inválido", dto.RegisterRequest{Name: "Ana", Email: "no-email", Password: "secreto123"}},
		{"password corto", dto.RegisterRequest{Name: "Ana", Email: "a@x.com", Password: "corto"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Register(tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, mem.Persons, "nada debe persistirse")
			assert.Empty(t, mem.Stores)
		})
	}
}

// Email repetido: la transacción completa se revierte, sin tienda huérfana.
func TestRegister_EmailDuplicadoRevierteTodo(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)

	_, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Name: "Otra Ana", Email: "ana@x.com", Password: "secreto456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	assert.Len(t, mem.Persons, 1, "solo la primera persona")
	assert.Len(t, mem.Stores, 1, "el segundo intento no debe dejar tienda huérfana")
	assert.Len(t, mem.Memberships, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login local
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesCorrectas(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)
	reg, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "secreto123"})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@x.com", Password: "secreto123"})
	require.NoError(t, err)

	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.Equal(t, reg.User.StoreID, resp.User.StoreID)
	assert.NotNil(t, mem.Persons[resp.User.ID].LastLoginAt, "el login debe marcar fecha_ultimo_login")
}

func TestLogin_Rechazos(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)
	_, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "secreto123"})
	require.NoError(t, err)

	// Password incorrecto y email desconocido responden igual: sin pistas.
	_, err = uc.Login(dto.LoginRequest{Email: "ana@x.com", Password: "incorrecta1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@x.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Una cuenta federada no tiene password local utilizable: el centinela nunca
// valida como hash bcrypt.
func TestLogin_CuentaFederadaBloqueada(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)
	_, err := uc.FederatedLogin("google-123", "fed@x.com", "Usuario Federado")
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "fed@x.com", Password: entity.FederatedCredential})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"ni siquiera enviando el centinela como password debe entrar")
}

func TestLogin_PersonaBloqueada(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)
	reg, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "secreto123"})
	require.NoError(t, err)

	mem.Persons[reg.User.ID].Status = entity.PersonBlocked

	_, err = uc.Login(dto.LoginRequest{Email: "ana@x.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login federado (Google)
// ──────────────────────────────────────────────────────────────────────────────

func TestFederatedLogin_PrimeraVezAprovisiona(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)

	resp, err := uc.FederatedLogin("google-123", "juan@gmail.com", "juan pérez")
	require.NoError(t, err)

	assert.Equal(t, "owner", resp.User.Role)
	assert.Equal(t, "Tienda de Juan", resp.User.StoreName,
		"el nombre se deriva del primer token del display name, capitalizado")
	assert.Equal(t, entity.PlanFree, resp.User.Plan)

	person := mem.Persons[resp.User.ID]
	require.NotNil(t, person)
	assert.Equal(t, entity.FederatedCredential, person.PasswordHash,
		"la cuenta federada lleva el centinela, nunca un hash")
	assert.True(t, person.IsFederated())
}

// El login federado es idempotente por email: la segunda aserción no crea nada nuevo.
func TestFederatedLogin_IdempotentePorEmail(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)

	first, err := uc.FederatedLogin("google-123", "juan@gmail.com", "Juan Pérez")
	require.NoError(t, err)

	second, err := uc.FederatedLogin("google-123", "juan@gmail.com", "Juan Pérez")
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID, "misma persona en ambos logins")
	assert.Equal(t, first.User.StoreID, second.User.StoreID)
	assert.Len(t, mem.Persons, 1, "no debe duplicarse la persona")
	assert.Len(t, mem.Stores, 1, "no debe duplicarse la tienda")
	assert.Len(t, mem.Memberships, 1)
	assert.NotNil(t, mem.Persons[first.User.ID].LastLoginAt, "el segundo acceso es un login normal")
}

// Si la persona ya existe con login local, la aserción de Google entra a su cuenta.
func TestFederatedLogin_EmailLocalExistenteHaceLogin(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)
	reg, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "secreto123"})
	require.NoError(t, err)

	resp, err := uc.FederatedLogin("google-999", "ana@x.com", "Ana G")
	require.NoError(t, err)

	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.Len(t, mem.Stores, 1, "no debe aprovisionarse una segunda tienda")
	assert.False(t, mem.Persons[reg.User.ID].IsFederated(),
		"la cuenta local conserva su password")
}

// Con varias membresías, la sesión aterriza en la más antigua.
func TestFederatedLogin_MembresiaMasAntiguaGana(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)
	reg, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "secreto123"})
	require.NoError(t, err)

	// Una segunda tienda la invita después.
	otraTienda := &entity.Store{ID: "tienda-nueva", Name: "Otra", Plan: entity.PlanFree, Status: "active"}
	require.NoError(t, mem.StorePort().Create(otraTienda))
	require.NoError(t, mem.MembershipPort().Create(&entity.Membership{
		PersonID: reg.User.ID, StoreID: otraTienda.ID, Role: entity.RoleAdmin,
		AssignedAt: time.Now().Add(time.Hour),
	}))

	resp, err := uc.FederatedLogin("google-1", "ana@x.com", "Ana")
	require.NoError(t, err)
	assert.Equal(t, reg.User.StoreID, resp.User.StoreID, "gana la membresía original, no la invitación")
	assert.Equal(t, "owner", resp.User.Role)
}

func TestFederatedLogin_SinEmail(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)
	_, err := uc.FederatedLogin("google-1", "", "Sin Email")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, mem.Persons)
}

// El aprovisionamiento es todo-o-nada: si falla la membresía no quedan
// persona ni tienda a medias, y el reintento funciona.
func TestFederatedLogin_AprovisionamientoAtomico(t *testing.T) {
	mem := testutil.NewMem()
	uc := newAuthUC(mem)

	mem.FailMembershipCreate = errors.New("conexión perdida")
	_, err := uc.FederatedLogin("google-1", "juan@gmail.com", "Juan")
	require.Error(t, err)
	assert.Empty(t, mem.Persons, "rollback: sin persona a medias")
	assert.Empty(t, mem.Stores, "rollback: sin tienda a medias")
	assert.Empty(t, mem.Memberships)

	mem.FailMembershipCreate = nil
	resp, err := uc.FederatedLogin("google-1", "juan@gmail.com", "Juan")
	require.NoError(t, err)
	assert.Len(t, mem.Persons, 1)
	assert.Equal(t, "owner", resp.User.Role)
}
