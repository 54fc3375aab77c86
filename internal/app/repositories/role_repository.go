package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
)

// IRoleRepository defines the interface for role table lookups
type IRoleRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.RoleRecord, error)
}

// RoleRepository handles the fixed 'roles' reference table
type RoleRepository struct {
	db *pgxpool.Pool
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{db: db}
}

// Exists checks if a role id references a row in the roles table
func (r *RoleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`,
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking role: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a role row by id
func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*models.RoleRecord, error) {
	role := &models.RoleRecord{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name FROM roles WHERE id = $1`,
		id).Scan(&role.ID, &role.Name)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("error retrieving role: %w", err)
	}

	return role, nil
}

// Ensure inserts a role row if it is not already present. Used by the
// seeder; the role table is not user-creatable through any endpoint.
func (r *RoleRepository) Ensure(ctx context.Context, id int64, name string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO roles (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`,
		id, name)

	if err != nil {
		return fmt.Errorf("error seeding role %q: %w", name, err)
	}

	return nil
}
