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

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresLikeRepository хранит лайки; уникальность (user_id, listing_id) - на уровне индекса
type PostgresLikeRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLikeRepository(pool *pgxpool.Pool) (*PostgresLikeRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresLikeRepository{pool: pool}, nil
}

func (r *PostgresLikeRepository) FindOne(ctx context.Context, userID, listingID uuid.UUID) (*domain.Like, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresLikeRepository",
		"method":     "FindOne",
		"user_id":    userID.String(),
		"listing_id": listingID.String(),
	})

	query := `SELECT id, user_id, listing_id, created_at FROM likes WHERE user_id = $1 AND listing_id = $2`

	var like domain.Like
	err := r.pool.QueryRow(ctx, query, userID, listingID).Scan(&like.ID, &like.UserID, &like.ListingID, &like.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find like", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find like: %w", err)
	}
	return &like, nil
}

// InsertUnique возвращает domain.ErrLikeExists, если пара уже есть
func (r *PostgresLikeRepository) InsertUnique(ctx context.Context, like *domain.Like) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresLikeRepository",
		"method":     "InsertUnique",
		"user_id":    like.UserID.String(),
		"listing_id": like.ListingID.String(),
	})

	query := `INSERT INTO likes (id, user_id, listing_id, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, like.ID, like.UserID, like.ListingID, like.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				repoLogger.Debug("Like already exists", nil)
				return domain.ErrLikeExists
			case pgForeignKeyViolation:
				return domain.ErrListingNotFound
			}
		}
		repoLogger.Error("Failed to insert like", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// Delete не считает ошибкой отсутствие строки: ее мог удалить параллельный toggle
func (r *PostgresLikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE id = $1`, id)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to delete like", err, port.Fields{
			"component": "PostgresLikeRepository",
			"like_id":   id.String(),
		})
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func (r *PostgresLikeRepository) FindLikedListings(ctx context.Context, userID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresLikeRepository",
		"method":    "FindLikedListings",
		"user_id":   userID.String(),
	})

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE user_id = $1`, userID).Scan(&total); err != nil {
		repoLogger.Error("Failed to count likes", err, nil)
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	limitClause, args := pageClause(page, []interface{}{userID})
	query := "SELECT " + listingColumns + ` FROM likes lk JOIN listings l ON l.id = lk.listing_id
		WHERE lk.user_id = $1 ORDER BY lk.created_at DESC, l.id ASC` + limitClause

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query liked listings", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query liked listings: %w", err)
	}
	defer rows.Close()

	result := &domain.PaginatedListings{Listings: []domain.Listing{}, Total: total}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		result.Listings = append(result.Listings, *listing)
	}
	return result, rows.Err()
}
