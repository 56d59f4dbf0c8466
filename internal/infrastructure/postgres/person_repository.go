package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendaflow/tienda-core/internal/domain"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
	"github.com/tiendaflow/tienda-core/internal/domain/repository"
)

var _ repository.PersonRepository = (*PersonRepo)(nil)

// PersonRepo implementación del puerto PersonRepository sobre PostgreSQL (usable con pool o tx).
type PersonRepo struct {
	q Querier
}

// NewPersonRepository construye el adaptador de persistencia para personas. Pasar pool o tx (Querier).
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q}
}

const personColumns = `id, nombre, email, password_hash, telefono, estado, fecha_ultimo_login, created_at, updated_at`

// Create persiste una nueva persona. El email es único global.
func (r *PersonRepo) Create(person *entity.Person) error {
	query := `
		INSERT INTO usuarios (id, nombre, email, password_hash, telefono, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		person.ID, person.Name, person.Email, person.PasswordHash, person.Phone,
		person.Status, person.CreatedAt, person.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene una persona por ID.
func (r *PersonRepo) GetByID(id string) (*entity.Person, error) {
	return r.getBy("id", id)
}

// GetByEmail obtiene una persona por email (único global).
func (r *PersonRepo) GetByEmail(email string) (*entity.Person, error) {
	return r.getBy("email", email)
}

func (r *PersonRepo) getBy(column, value string) (*entity.Person, error) {
	query := `SELECT ` + personColumns + ` FROM usuarios WHERE ` + column + ` = $1`
	var p entity.Person
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Phone, &p.Status,
		&p.LastLoginAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &p, nil
}

// Update actualiza nombre, teléfono y estado. El email y el hash no se tocan por aquí.
func (r *PersonRepo) Update(person *entity.Person) error {
	query := `
		UPDATE usuarios SET nombre = $2, telefono = $3, estado = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		person.ID, person.Name, person.Phone, person.Status, person.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// TouchLastLogin marca la fecha del último login.
func (r *PersonRepo) TouchLastLogin(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET fecha_ultimo_login = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

// Delete elimina una persona por ID.
func (r *PersonRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}
