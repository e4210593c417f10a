package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Los permisos viven en permissions/user_permissions (muchos a muchos) y se
// cargan siempre junto con el usuario.
type UserRepo struct {
	q TxQuerier
}

func NewUserRepository(q TxQuerier) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepo) getBy(ctx context.Context, column, value string) (*entity.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, name, status, created_at, updated_at
		FROM users WHERE %s = $1`, column)
	var u entity.User
	err := r.q.QueryRow(ctx, query, value).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	perms, err := r.permissionsFor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Permissions = perms
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, email, password_hash, name, status, created_at, updated_at
		FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Status, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list users scan: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		perms, err := r.permissionsFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Permissions = perms
	}
	return out, nil
}

// SetPermissions reemplaza el conjunto completo en una sola transacción: borra
// los vínculos actuales, asegura que cada permiso exista en el catálogo e
// inserta los nuevos vínculos. Una falla a mitad de camino no deja al usuario
// con un conjunto parcial.
func (r *UserRepo) SetPermissions(ctx context.Context, userID string, permissions []string) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set permissions: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_permissions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user permissions: %w", err)
	}

	for _, name := range permissions {
		var permID string
		err := tx.QueryRow(ctx, `
			INSERT INTO permissions (id, name) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, uuid.NewString(), name).Scan(&permID)
		if err != nil {
			return fmt.Errorf("upsert permission %q: %w", name, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_permissions (user_id, permission_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, userID, permID); err != nil {
			return fmt.Errorf("link permission %q: %w", name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set permissions: %w", err)
	}
	return nil
}

func (r *UserRepo) permissionsFor(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.name
		FROM user_permissions up
		JOIN permissions p ON p.id = up.permission_id
		WHERE up.user_id = $1
		ORDER BY p.name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}
	defer rows.Close()

	var perms []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		perms = append(perms, name)
	}
	return perms, rows.Err()
}
