package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository - реализация UserRepositoryPort для PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &UserRepository{pool: pool}, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "Create",
		"user_id":   user.ID.String(),
	})

	query := `INSERT INTO users (id, email, password_hash, name, role, created_at) VALUES ($1, $2, $3, $4, $5, $6)`

	repoLogger.Debug("Executing query to create user.", nil)
	_, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			repoLogger.Warn("Email already taken", nil)
			return domain.ErrEmailInUse
		}
		repoLogger.Error("Failed to create user", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail возвращает (nil, nil), если пользователь не найден.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "FindByEmail", `SELECT id, email, password_hash, name, role, created_at FROM users WHERE email = $1`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, "FindByID", `SELECT id, email, password_hash, name, role, created_at FROM users WHERE id = $1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, method, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to find user", err, port.Fields{
			"component": "UserRepository",
			"method":    method,
		})
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
