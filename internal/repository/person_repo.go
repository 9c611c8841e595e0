package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"traits-matcher/internal/domain"
)

// PersonRepository define el contrato de persistencia para personas.
type PersonRepository interface {
	Create(ctx context.Context, name string) error
	GetByName(ctx context.Context, name string) (domain.Person, error)
	ListAll(ctx context.Context) ([]domain.Person, error)
	UpdatePersonality(ctx context.Context, name string, p domain.Personality, nFriendliness, nDominance int) error
}

// PgPersonRepository implementa PersonRepository usando pgxpool.
type PgPersonRepository struct {
	pool *pgxpool.Pool
}

func NewPgPersonRepository(pool *pgxpool.Pool) *PgPersonRepository {
	return &PgPersonRepository{pool: pool}
}

// EnsureSchema crea la tabla de personas y sus índices si no existen.
func (r *PgPersonRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS persons (
			person TEXT PRIMARY KEY,
			friendliness DOUBLE PRECISION NOT NULL DEFAULT 0,
			dominance DOUBLE PRECISION NOT NULL DEFAULT 0,
			n_friendliness INTEGER NOT NULL DEFAULT 0,
			n_dominance INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_persons_friendliness ON persons(friendliness);
		CREATE INDEX IF NOT EXISTS idx_persons_dominance ON persons(dominance);
	`
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure persons schema: %w", err)
	}
	return nil
}

// Create inserta una persona nueva con todos los campos en cero.
func (r *PgPersonRepository) Create(ctx context.Context, name string) error {
	const query = `
		INSERT INTO persons (person, friendliness, dominance, n_friendliness, n_dominance)
		VALUES ($1, 0, 0, 0, 0)
	`
	if _, err := r.pool.Exec(ctx, query, name); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("person %q: %w", name, domain.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (r *PgPersonRepository) GetByName(ctx context.Context, name string) (domain.Person, error) {
	const query = `
		SELECT person, friendliness, dominance, n_friendliness, n_dominance
		FROM persons
		WHERE person = $1
	`
	var p domain.Person
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&p.Name,
		&p.Friendliness,
		&p.Dominance,
		&p.NFriendliness,
		&p.NDominance,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Person{}, fmt.Errorf("person %q: %w", name, domain.ErrNotFound)
	}
	return p, err
}

// ListAll devuelve todas las personas; el orden no está garantizado.
func (r *PgPersonRepository) ListAll(ctx context.Context) ([]domain.Person, error) {
	const query = `
		SELECT person, friendliness, dominance, n_friendliness, n_dominance
		FROM persons
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(
			&p.Name,
			&p.Friendliness,
			&p.Dominance,
			&p.NFriendliness,
			&p.NDominance,
		); err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return persons, nil
}

// UpdatePersonality reemplaza los cuatro campos mutables de una persona.
// Es un replace completo: el caller hace read-modify-write.
func (r *PgPersonRepository) UpdatePersonality(ctx context.Context, name string, p domain.Personality, nFriendliness, nDominance int) error {
	const query = `
		UPDATE persons
		SET friendliness = $2, dominance = $3, n_friendliness = $4, n_dominance = $5
		WHERE person = $1
	`
	tag, err := r.pool.Exec(ctx, query, name, p.Friendliness, p.Dominance, nFriendliness, nDominance)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("person %q: %w", name, domain.ErrNotFound)
	}
	return nil
}
