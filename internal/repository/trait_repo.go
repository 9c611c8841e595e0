package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"traits-matcher/internal/domain"
)

// TraitRepository define el contrato de persistencia para rasgos.
// Los rasgos no tienen update ni delete: se crean una vez y se leen.
type TraitRepository interface {
	Create(ctx context.Context, trait domain.Trait) error
	GetByName(ctx context.Context, name string) (domain.Trait, error)
	ListAll(ctx context.Context) ([]domain.Trait, error)
}

// PgTraitRepository implementa TraitRepository usando pgxpool.
type PgTraitRepository struct {
	pool *pgxpool.Pool
}

func NewPgTraitRepository(pool *pgxpool.Pool) *PgTraitRepository {
	return &PgTraitRepository{pool: pool}
}

// EnsureSchema crea la tabla de rasgos si no existe.
func (r *PgTraitRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS traits (
			trait TEXT PRIMARY KEY,
			friendliness DOUBLE PRECISION NOT NULL,
			dominance DOUBLE PRECISION NOT NULL
		);
	`
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure traits schema: %w", err)
	}
	return nil
}

func (r *PgTraitRepository) Create(ctx context.Context, trait domain.Trait) error {
	const query = `
		INSERT INTO traits (trait, friendliness, dominance)
		VALUES ($1, $2, $3)
	`
	if _, err := r.pool.Exec(ctx, query, trait.Name, trait.Friendliness, trait.Dominance); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("trait %q: %w", trait.Name, domain.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (r *PgTraitRepository) GetByName(ctx context.Context, name string) (domain.Trait, error) {
	const query = `
		SELECT trait, friendliness, dominance
		FROM traits
		WHERE trait = $1
	`
	var t domain.Trait
	err := r.pool.QueryRow(ctx, query, name).Scan(&t.Name, &t.Friendliness, &t.Dominance)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Trait{}, fmt.Errorf("trait %q: %w", name, domain.ErrNotFound)
	}
	return t, err
}

// ListAll devuelve todos los rasgos; el orden no está garantizado.
func (r *PgTraitRepository) ListAll(ctx context.Context) ([]domain.Trait, error) {
	const query = `
		SELECT trait, friendliness, dominance
		FROM traits
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var traits []domain.Trait
	for rows.Next() {
		var t domain.Trait
		if err := rows.Scan(&t.Name, &t.Friendliness, &t.Dominance); err != nil {
			return nil, err
		}
		traits = append(traits, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return traits, nil
}
