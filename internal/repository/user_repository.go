package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-service/internal/domain"
)

// UserRepository defines persistence access for accounts. Implementations
// return pgx errors unclassified; the service layer owns the mapping to
// domain error kinds.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Save(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListActive(ctx context.Context, limit, offset int) ([]*domain.User, error)
	CountActive(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, password_hash, name, is_active, roles)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.IsActive,
		domain.RolesToStrings(user.Roles),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET email=$1, password_hash=$2, name=$3, is_active=$4, roles=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`

	if err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.IsActive,
		domain.RolesToStrings(user.Roles),
		user.ID,
	).Scan(&user.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, name, is_active, roles, created_at, updated_at
        FROM users WHERE id=$1`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, name, is_active, roles, created_at, updated_at
        FROM users WHERE email=$1`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, name, is_active, roles, created_at, updated_at
        FROM users WHERE is_active=TRUE
        ORDER BY created_at
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0, limit)
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) CountActive(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users WHERE is_active=TRUE`

	var total int
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Clear removes all rows. Only the seeding path uses it.
func (r *userRepository) Clear(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users`)
	return err
}

func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var roles []string
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.IsActive,
		&roles,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Roles = domain.RolesFromStrings(roles)
	return &user, nil
}
