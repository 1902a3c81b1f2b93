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
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, listing_id, user_id, owner_id, viewing_date, message, status, created_at, updated_at`

type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookingRepository(pool *pgxpool.Pool) (*PostgresBookingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresBookingRepository{pool: pool}, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var status string
	if err := row.Scan(&b.ID, &b.ListingID, &b.UserID, &b.OwnerID, &b.ViewingDate, &b.Message, &status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatus(status)
	return &b, nil
}

func (r *PostgresBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query, b.ID, b.ListingID, b.UserID, b.OwnerID, b.ViewingDate, b.Message, string(b.Status), b.CreatedAt, b.UpdatedAt)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to create booking", err, port.Fields{
			"component":  "PostgresBookingRepository",
			"method":     "Create",
			"booking_id": b.ID.String(),
		})
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *PostgresBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return b, nil
}

// UpdateStatus обновляет статус, только если в БД заявка все еще pending
func (r *PostgresBookingRepository) UpdateStatus(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`

	tag, err := r.pool.Exec(ctx, query, b.ID, string(b.Status), b.UpdatedAt, string(domain.BookingPending))
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidBookingStatus
	}
	return nil
}

func (r *PostgresBookingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	return r.findMany(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresBookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	return r.findMany(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *PostgresBookingRepository) findMany(ctx context.Context, query string, id uuid.UUID) ([]domain.Booking, error) {
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
