package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

// RoleRepository persists roles in Postgres.
type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, name string) (*domain.Role, error) {
	const query = `
		INSERT INTO roles (name)
		VALUES ($1)
		RETURNING id, name, created_at`
	var role domain.Role
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrRoleExists
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	return r.findOne(ctx, `id = $1`, id)
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, `name = $1`, name)
}

func (r *RoleRepository) findOne(ctx context.Context, where string, arg any) (*domain.Role, error) {
	query := `SELECT id, name, created_at FROM roles WHERE ` + where
	var role domain.Role
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) All(ctx context.Context) ([]domain.Role, error) {
	return r.findMany(ctx, `SELECT id, name, created_at FROM roles ORDER BY id`)
}

func (r *RoleRepository) AllOrderedByName(ctx context.Context) ([]domain.Role, error) {
	return r.findMany(ctx, `SELECT id, name, created_at FROM roles ORDER BY name ASC`)
}

// SearchByName does a case-sensitive substring match.
func (r *RoleRepository) SearchByName(ctx context.Context, keyword string) ([]domain.Role, error) {
	const query = `
		SELECT id, name, created_at
		FROM roles
		WHERE name LIKE '%' || $1 || '%'
		ORDER BY id`
	return r.findMany(ctx, query, keyword)
}

func (r *RoleRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	roles := make([]domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`, id)
}

func (r *RoleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, name)
}

func (r *RoleRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists query: %w", err)
	}
	return exists, nil
}

func (r *RoleRepository) CountUsers(ctx context.Context, roleID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM user_roles WHERE role_id = $1`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, roleID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}

func (r *RoleRepository) Rename(ctx context.Context, id int64, newName string) error {
	const query = `UPDATE roles SET name = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, newName, id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRoleExists
		}
		return fmt.Errorf("rename role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

// ForceDelete detaches the role from every member and deletes it in one
// transaction, so two concurrent calls cannot leave a user referencing a
// deleted role.
func (r *RoleRepository) ForceDelete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE role_id = $1`, id); err != nil {
		return fmt.Errorf("detach members: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRoleNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
