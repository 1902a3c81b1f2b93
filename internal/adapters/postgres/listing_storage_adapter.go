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

const listingColumns = `l.id, l.owner_id, l.title, l.description,
	l.county, l.city, l.suburb, l.area, l.road, l.latitude, l.longitude, l.geohash,
	l.price, l.property_type, l.offer_type,
	l.bedrooms, l.bathrooms, l.rooms, l.size,
	l.amenities_internal, l.amenities_external, l.amenities_nearby,
	l.images, l.featured, l.listing_status, l.visits, l.created_at, l.updated_at`

// PostgresListingStorage - реализация ListingStoragePort для PostgreSQL.
type PostgresListingStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresListingStorage(pool *pgxpool.Pool) (*PostgresListingStorage, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresListingStorage{pool: pool}, nil
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	var offerType string
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description,
		&l.Location.County, &l.Location.City, &l.Location.Suburb, &l.Location.Area, &l.Location.Road,
		&l.Location.Latitude, &l.Location.Longitude, &l.Location.Geohash,
		&l.Price, &l.PropertyType, &offerType,
		&l.Features.Bedrooms, &l.Features.Bathrooms, &l.Features.Rooms, &l.Features.Size,
		&l.Amenities.Internal, &l.Amenities.External, &l.Amenities.Nearby,
		&l.Images, &l.Featured, &l.ListingStatus, &l.Visits, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.OfferType = domain.OfferType(offerType)
	return &l, nil
}

// FindWithFilters ищет объявления по фильтрам; COUNT и выборка выполняются в одной транзакции
func (a *PostgresListingStorage) FindWithFilters(ctx context.Context, filters domain.ListingFilters, page domain.Pagination) (*domain.PaginatedListings, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresListingStorage",
		"method":    "FindWithFilters",
		"limit":     page.Limit,
		"offset":    page.Offset,
	})

	whereClause, args := applyFilters(filters)
	return a.findPage(ctx, "FROM listings l "+whereClause, args, page, repoLogger)
}

func (a *PostgresListingStorage) FindByOwner(ctx context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresListingStorage",
		"method":    "FindByOwner",
		"owner_id":  ownerID.String(),
	})

	return a.findPage(ctx, "FROM listings l WHERE l.owner_id = $1", []interface{}{ownerID}, page, repoLogger)
}

// findPage считает совпадения и читает страницу, новые объявления первыми
func (a *PostgresListingStorage) findPage(ctx context.Context, fromWhere string, args []interface{}, page domain.Pagination, repoLogger port.LoggerPort) (*domain.PaginatedListings, error) {
	tx, err := a.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := "SELECT COUNT(*) " + fromWhere
	var total int
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count listings", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	result := &domain.PaginatedListings{Listings: []domain.Listing{}, Total: total}
	if total == 0 {
		return result, nil
	}

	limitClause, pageArgs := pageClause(page, args)
	dataQuery := "SELECT " + listingColumns + " " + fromWhere + " ORDER BY l.created_at DESC, l.id ASC" + limitClause

	rows, err := tx.Query(ctx, dataQuery, pageArgs...)
	if err != nil {
		repoLogger.Error("Failed to query listings", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		result.Listings = append(result.Listings, *listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Listings page loaded", port.Fields{"total": total, "count": len(result.Listings)})
	return result, nil
}

func (a *PostgresListingStorage) FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresListingStorage",
		"method":     "FindByID",
		"listing_id": id.String(),
	})

	query := "SELECT " + listingColumns + " FROM listings l WHERE l.id = $1"
	listing, err := scanListing(a.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Listing not found", nil)
			return nil, domain.ErrListingNotFound
		}
		repoLogger.Error("Failed to find listing", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find listing by id: %w", err)
	}
	return listing, nil
}

func (a *PostgresListingStorage) Create(ctx context.Context, l *domain.Listing) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresListingStorage",
		"method":     "Create",
		"listing_id": l.ID.String(),
	})

	query := `INSERT INTO listings (
		id, owner_id, title, description,
		county, city, suburb, area, road, latitude, longitude, geohash,
		price, property_type, offer_type,
		bedrooms, bathrooms, rooms, size,
		amenities_internal, amenities_external, amenities_nearby,
		images, featured, listing_status, visits, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`

	_, err := a.pool.Exec(ctx, query,
		l.ID, l.OwnerID, l.Title, l.Description,
		l.Location.County, l.Location.City, l.Location.Suburb, l.Location.Area, l.Location.Road,
		l.Location.Latitude, l.Location.Longitude, l.Location.Geohash,
		l.Price, l.PropertyType, string(l.OfferType),
		l.Features.Bedrooms, l.Features.Bathrooms, l.Features.Rooms, l.Features.Size,
		nonNil(l.Amenities.Internal), nonNil(l.Amenities.External), nonNil(l.Amenities.Nearby),
		nonNil(l.Images), l.Featured, l.ListingStatus, l.Visits, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to create listing", err, nil)
		return fmt.Errorf("failed to create listing: %w", err)
	}

	repoLogger.Debug("Listing created", nil)
	return nil
}

func (a *PostgresListingStorage) Update(ctx context.Context, l *domain.Listing) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresListingStorage",
		"method":     "Update",
		"listing_id": l.ID.String(),
	})

	// visits не перезаписываем: счетчик меняется только через AddVisits
	query := `UPDATE listings SET
		title = $2, description = $3,
		county = $4, city = $5, suburb = $6, area = $7, road = $8,
		latitude = $9, longitude = $10, geohash = $11,
		price = $12, property_type = $13, offer_type = $14,
		bedrooms = $15, bathrooms = $16, rooms = $17, size = $18,
		amenities_internal = $19, amenities_external = $20, amenities_nearby = $21,
		images = $22, featured = $23, listing_status = $24, updated_at = $25
	WHERE id = $1`

	tag, err := a.pool.Exec(ctx, query,
		l.ID, l.Title, l.Description,
		l.Location.County, l.Location.City, l.Location.Suburb, l.Location.Area, l.Location.Road,
		l.Location.Latitude, l.Location.Longitude, l.Location.Geohash,
		l.Price, l.PropertyType, string(l.OfferType),
		l.Features.Bedrooms, l.Features.Bathrooms, l.Features.Rooms, l.Features.Size,
		nonNil(l.Amenities.Internal), nonNil(l.Amenities.External), nonNil(l.Amenities.Nearby),
		nonNil(l.Images), l.Featured, l.ListingStatus, l.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to update listing", err, nil)
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// Delete удаляет объявление; likes и bookings удаляются через ON DELETE CASCADE
func (a *PostgresListingStorage) Delete(ctx context.Context, id uuid.UUID) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresListingStorage",
		"method":     "Delete",
		"listing_id": id.String(),
	})

	tag, err := a.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete listing", err, nil)
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (a *PostgresListingStorage) AddVisits(ctx context.Context, id uuid.UUID, delta int64) error {
	_, err := a.pool.Exec(ctx, `UPDATE listings SET visits = visits + $2 WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to add visits: %w", err)
	}
	return nil
}

// nonNil - колонки text[] объявлены NOT NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
