package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tiendaflow/tienda-core/internal/application/dto"
	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
	"github.com/tiendaflow/tienda-core/internal/domain/repository"
	"github.com/tiendaflow/tienda-core/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TrialMonths duración del trial al aprovisionar una tienda nueva.
const TrialMonths = 3

// MinPasswordLen longitud mínima de contraseña para registro local.
const MinPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación: registro local, login local y login federado (Google).
// El aprovisionamiento de tienda nueva es atómico vía ProvisionTxRunner.
type AuthUseCase struct {
	persons     repository.PersonRepository
	stores      repository.StoreRepository
	memberships repository.MembershipRepository
	tx          ProvisionTxRunner
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	persons repository.PersonRepository,
	stores repository.StoreRepository,
	memberships repository.MembershipRepository,
	tx ProvisionTxRunner,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{persons: persons, stores: stores, memberships: memberships, tx: tx, jwtCfg: jwtCfg}
}

// Register registro local: crea tienda + usuario owner + membresía en una transacción
// y devuelve el token de sesión.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLen {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	storeName := strings.TrimSpace(in.StoreName)
	if storeName == "" {
		storeName = defaultStoreName(in.Name)
	}
	person, store, membership, err := uc.provision(in.Name, in.Email, string(hash), storeName)
	if err != nil {
		return nil, err
	}
	return uc.session(person, store, membership)
}

// Login login local: verifica email/password con bcrypt. Las cuentas federadas
// (centinela GOOGLE_OAUTH) no tienen password local utilizable.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	person, err := uc.persons.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if person == nil || person.IsFederated() {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.completeLogin(person)
}

// FederatedLogin procesa una aserción de identidad del proveedor externo.
// Si el email ya existe es un login; si no, aprovisiona atómicamente una cuenta
// federada, su tienda y la membresía owner. Idempotente por email.
func (uc *AuthUseCase) FederatedLogin(externalID, email, displayName string) (*dto.AuthResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email es obligatorio", domain.ErrInvalidInput)
	}
	person, err := uc.persons.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if person != nil {
		return uc.completeLogin(person)
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = email
	}
	person, store, membership, err := uc.provision(name, email, entity.FederatedCredential, defaultStoreName(name))
	if err != nil {
		return nil, err
	}
	return uc.session(person, store, membership)
}

// provision crea Person + Store + Membership owner dentro de una transacción.
func (uc *AuthUseCase) provision(name, email, credential, storeName string) (*entity.Person, *entity.Store, *entity.Membership, error) {
	now := time.Now()
	trialEnd := now.AddDate(0, TrialMonths, 0)
	person := &entity.Person{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: credential,
		Status:       entity.PersonActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	store := &entity.Store{
		ID:          uuid.New().String(),
		Name:        storeName,
		Email:       email,
		Plan:        entity.PlanFree,
		TrialEndsAt: &trialEnd,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	membership := &entity.Membership{
		PersonID:   person.ID,
		StoreID:    store.ID,
		Role:       entity.RoleOwner,
		AssignedAt: now,
	}

	err := uc.tx.RunProvision(context.Background(), func(
		storeRepo repository.StoreRepository,
		personRepo repository.PersonRepository,
		membershipRepo repository.MembershipRepository,
	) error {
		if err := personRepo.Create(person); err != nil {
			return err
		}
		if err := storeRepo.Create(store); err != nil {
			return err
		}
		return membershipRepo.Create(membership)
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return person, store, membership, nil
}

// completeLogin arma la sesión de una persona existente: estado activo,
// membresía más antigua (política multi-tienda) y marca de último login.
func (uc *AuthUseCase) completeLogin(person *entity.Person) (*dto.AuthResponse, error) {
	if person.Status != entity.PersonActive {
		return nil, domain.ErrForbidden
	}
	membership, err := uc.memberships.FirstByPerson(person.ID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, domain.ErrForbidden
	}
	store, err := uc.stores.GetByID(membership.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrForbidden
	}
	if err := uc.persons.TouchLastLogin(person.ID); err != nil {
		return nil, err
	}
	return uc.session(person, store, membership)
}

// session genera el token JWT y el perfil asociado.
func (uc *AuthUseCase) session(person *entity.Person, store *entity.Store, membership *entity.Membership) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, person.ID, store.ID, person.Email,
		membership.Role.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: token,
		User: dto.SessionUser{
			ID:        person.ID,
			Name:      person.Name,
			Email:     person.Email,
			StoreID:   store.ID,
			StoreName: store.Name,
			Plan:      store.Plan,
			Role:      membership.Role.String(),
		},
	}, nil
}

// defaultStoreName deriva el nombre de la tienda del primer token del nombre,
// con capitalización normalizada ("juan pérez" -> "Tienda de Juan").
func defaultStoreName(displayName string) string {
	first := strings.TrimSpace(displayName)
	if i := strings.IndexAny(first, " \t"); i > 0 {
		first = first[:i]
	}
	if first == "" {
		return "Mi Tienda"
	}
	first = cases.Title(language.Spanish).String(strings.ToLower(first))
	return "Tienda de " + first
}
