package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserRepository реализует репозиторий пользователей.
type UserRepository struct {
	db DBTX
}

// NewUserRepository создает новый UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser создает нового пользователя с нулевым балансом
func (r *UserRepository) CreateUser(ctx context.Context, email, passwordHash, nickname string) (*domain.User, error) {
	user := &domain.User{}

	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, nickname)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, password_hash, nickname, points, role, created_at`,
		email, passwordHash, nickname,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Nickname, &user.Points, &user.Role, &user.CreatedAt)

	if err != nil {
		// Проверка на уникальность email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("repository: failed to create user %q: %w", email, err)
	}

	return user, nil
}

// GetUserByEmail получает пользователя по email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}

	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, nickname, points, role, created_at
		 FROM users
		 WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Nickname, &user.Points, &user.Role, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: failed to get user by email %q: %w", email, err)
	}

	return user, nil
}

// GetUserByID получает пользователя по ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user := &domain.User{}

	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, nickname, points, role, created_at
		 FROM users
		 WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Nickname, &user.Points, &user.Role, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: failed to get user by id %d: %w", id, err)
	}

	return user, nil
}

// ListUsers получает пользователей с пагинацией и поиском по email или никнейму
func (r *UserRepository) ListUsers(ctx context.Context, search string, limit, offset int) ([]*domain.User, int64, error) {
	pattern := "%" + search + "%"

	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE email ILIKE $1 OR nickname ILIKE $1`,
		pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count users: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, email, password_hash, nickname, points, role, created_at
		 FROM users
		 WHERE email ILIKE $1 OR nickname ILIKE $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		pattern, limit, offset,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Nickname, &user.Points, &user.Role, &user.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("repository: failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository: error iterating users: %w", err)
	}

	return users, total, nil
}

// CountUsers считает общее количество пользователей
func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count users: %w", err)
	}

	return count, nil
}
