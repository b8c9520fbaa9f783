package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

// UserRepository persists users and their role memberships in Postgres.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, password_hash, enabled, created_at, updated_at`

// Create inserts the user row and one membership row per attached role in a
// single transaction.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertUser = `
		INSERT INTO users (username, password_hash, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx, insertUser,
		user.Username, user.PasswordHash, user.Enabled, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	const insertMembership = `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`
	for _, role := range user.Roles {
		if _, err := tx.ExecContext(ctx, insertMembership, user.ID, role.ID); err != nil {
			return nil, fmt.Errorf("insert membership: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, `id = $1`, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `username = $1`, username)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	var user domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Enabled,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	roles, err := r.rolesOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return &user, nil
}

func (r *UserRepository) All(ctx context.Context) ([]domain.User, error) {
	return r.findMany(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

// SearchByUsername does a case-sensitive substring match.
func (r *UserRepository) SearchByUsername(ctx context.Context, keyword string) ([]domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username LIKE '%' || $1 || '%'
		ORDER BY id`
	return r.findMany(ctx, query, keyword)
}

func (r *UserRepository) FindByRoleName(ctx context.Context, roleName string) ([]domain.User, error) {
	const query = `
		SELECT DISTINCT u.id, u.username, u.password_hash, u.enabled, u.created_at, u.updated_at
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		JOIN roles r ON r.id = ur.role_id
		WHERE r.name = $1
		ORDER BY u.id`
	return r.findMany(ctx, query, roleName)
}

func (r *UserRepository) FindByRoleID(ctx context.Context, roleID int64) ([]domain.User, error) {
	const query = `
		SELECT DISTINCT u.id, u.username, u.password_hash, u.enabled, u.created_at, u.updated_at
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		WHERE ur.role_id = $1
		ORDER BY u.id`
	return r.findMany(ctx, query, roleID)
}

func (r *UserRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.PasswordHash, &user.Enabled,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		user.Roles = make([]domain.Role, 0)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachRoles(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

// attachRoles loads memberships for the whole result set in one query.
func (r *UserRepository) attachRoles(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(users))
	index := make(map[int64]*domain.User, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
		index[users[i].ID] = &users[i]
	}

	const query = `
		SELECT ur.user_id, r.id, r.name, r.created_at
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = ANY($1)
		ORDER BY r.name`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query memberships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var role domain.Role
		if err := rows.Scan(&userID, &role.ID, &role.Name, &role.CreatedAt); err != nil {
			return fmt.Errorf("scan membership: %w", err)
		}
		if user, ok := index[userID]; ok {
			user.Roles = append(user.Roles, role)
		}
	}
	return rows.Err()
}

func (r *UserRepository) rolesOf(ctx context.Context, userID int64) ([]domain.Role, error) {
	const query = `
		SELECT r.id, r.name, r.created_at
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name`
	rows, err := r.db.QueryContext(ctx, query, userID)
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

func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *UserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists query: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`
	return r.execExpectingRow(ctx, query, passwordHash, id)
}

func (r *UserRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	const query = `UPDATE users SET enabled = $1, updated_at = now() WHERE id = $2`
	return r.execExpectingRow(ctx, query, enabled, id)
}

// ReplaceRoles swaps the whole membership set inside one transaction, so a
// failure leaves the prior set intact.
func (r *UserRepository) ReplaceRoles(ctx context.Context, id int64, roleIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("clear memberships: %w", err)
	}
	const insert = `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`
	for _, roleID := range roleIDs {
		if _, err := tx.ExecContext(ctx, insert, id, roleID); err != nil {
			return fmt.Errorf("insert membership: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *UserRepository) AddRole(ctx context.Context, id, roleID int64) error {
	const query = `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, id, roleID); err != nil {
		return fmt.Errorf("add role: %w", err)
	}
	return nil
}

func (r *UserRepository) RemoveRole(ctx context.Context, id, roleID int64) error {
	const query = `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`
	if _, err := r.db.ExecContext(ctx, query, id, roleID); err != nil {
		return fmt.Errorf("remove role: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.execExpectingRow(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (r *UserRepository) DeleteByUsername(ctx context.Context, username string) error {
	return r.execExpectingRow(ctx, `DELETE FROM users WHERE username = $1`, username)
}

func (r *UserRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
