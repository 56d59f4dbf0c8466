package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tiendaflow/tienda-core/internal/application/dto"
	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/access"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
	"github.com/tiendaflow/tienda-core/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen longitud mínima de contraseña para cuentas locales.
const MinPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Caller identidad resuelta del solicitante (desde el token), para el guard.
type Caller struct {
	ID   string
	Role entity.Role
}

// MemberUseCase gestión de miembros de una tienda: listar, crear, actualizar, eliminar.
// Toda violación de reglas se detecta antes de escribir; las mutaciones multi-tabla
// (persona + membresía) corren dentro de una transacción.
type MemberUseCase struct {
	memberships repository.MembershipRepository
	tx          TxRunner
}

// NewMemberUseCase construye el caso de uso.
func NewMemberUseCase(memberships repository.MembershipRepository, tx TxRunner) *MemberUseCase {
	return &MemberUseCase{memberships: memberships, tx: tx}
}

// List lista los miembros de la tienda.
func (uc *MemberUseCase) List(storeID string) ([]dto.MemberResponse, error) {
	members, err := uc.memberships.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return out, nil
}

// Create crea una persona y su membresía en la tienda, atómicamente.
// Solo owner/admin; el rol nuevo debe ser admin, vendedor o solo_lectura.
func (uc *MemberUseCase) Create(storeID string, caller Caller, in dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	role := entity.Role(in.Role)
	if err := access.CanCreateMember(caller.Role, role); err != nil {
		return nil, err
	}
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
	now := time.Now()
	person := &entity.Person{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Status:       entity.PersonActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	membership := &entity.Membership{
		PersonID:   person.ID,
		StoreID:    storeID,
		Role:       role,
		AssignedAt: now,
	}

	err = uc.tx.Run(context.Background(), func(
		_ repository.ProductRepository,
		personRepo repository.PersonRepository,
		membershipRepo repository.MembershipRepository,
	) error {
		existing, err := personRepo.GetByEmail(in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := personRepo.Create(person); err != nil {
			return err
		}
		return membershipRepo.Create(membership)
	})
	if err != nil {
		return nil, err
	}
	out := toMemberResponse(&entity.StoreMember{Person: *person, Role: role, AssignedAt: now})
	return &out, nil
}

// Update actualiza datos de la persona y/o su rol en la tienda.
// Demover al único owner restante se rechaza (la tienda no puede quedar sin owner).
func (uc *MemberUseCase) Update(storeID string, caller Caller, personID string, in dto.UpdateMemberRequest) error {
	var newRole entity.Role
	if in.Role != nil {
		newRole = entity.Role(*in.Role)
	}
	if err := access.CanUpdateMember(caller.Role, newRole); err != nil {
		return err
	}
	if in.Status != nil && !validPersonStatus(*in.Status) {
		return fmt.Errorf("%w: estado inválido", domain.ErrInvalidInput)
	}

	return uc.tx.Run(context.Background(), func(
		_ repository.ProductRepository,
		personRepo repository.PersonRepository,
		membershipRepo repository.MembershipRepository,
	) error {
		membership, err := membershipRepo.GetByPersonAndStore(personID, storeID)
		if err != nil {
			return err
		}
		if membership == nil {
			return domain.ErrNotFound
		}
		if newRole != "" && membership.Role == entity.RoleOwner {
			owners, err := membershipRepo.CountOwners(storeID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return domain.ErrLastOwner
			}
		}

		if in.Name != nil || in.Phone != nil || in.Status != nil {
			person, err := personRepo.GetByID(personID)
			if err != nil {
				return err
			}
			if person == nil {
				return domain.ErrNotFound
			}
			if in.Name != nil {
				person.Name = *in.Name
			}
			if in.Phone != nil {
				person.Phone = *in.Phone
			}
			if in.Status != nil {
				person.Status = *in.Status
			}
			person.UpdatedAt = time.Now()
			if err := personRepo.Update(person); err != nil {
				return err
			}
		}
		if newRole != "" {
			return membershipRepo.UpdateRole(personID, storeID, newRole)
		}
		return nil
	})
}

// Delete revoca la membresía del target en la tienda. La persona se elimina solo
// si no le quedan membresías en otras tiendas. Auto-eliminación siempre bloqueada;
// el último owner de la tienda no puede eliminarse.
func (uc *MemberUseCase) Delete(storeID string, caller Caller, personID string) error {
	return uc.tx.Run(context.Background(), func(
		_ repository.ProductRepository,
		personRepo repository.PersonRepository,
		membershipRepo repository.MembershipRepository,
	) error {
		membership, err := membershipRepo.GetByPersonAndStore(personID, storeID)
		if err != nil {
			return err
		}
		if membership == nil {
			return domain.ErrNotFound
		}
		if err := access.CanDeleteMember(caller.Role, caller.ID, personID, membership.Role); err != nil {
			return err
		}
		if membership.Role == entity.RoleOwner {
			owners, err := membershipRepo.CountOwners(storeID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return domain.ErrLastOwner
			}
		}

		if err := membershipRepo.Delete(personID, storeID); err != nil {
			return err
		}
		remaining, err := membershipRepo.CountByPerson(personID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return personRepo.Delete(personID)
		}
		return nil
	})
}

func validPersonStatus(s string) bool {
	return s == entity.PersonActive || s == entity.PersonInactive || s == entity.PersonBlocked
}

func toMemberResponse(m *entity.StoreMember) dto.MemberResponse {
	return dto.MemberResponse{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Status:      m.Status,
		Role:        m.Role.String(),
		LastLoginAt: m.LastLoginAt,
		AssignedAt:  m.AssignedAt,
		CreatedAt:   m.CreatedAt,
	}
}
