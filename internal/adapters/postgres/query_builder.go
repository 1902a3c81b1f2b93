package postgres_adapter

import (
	"fmt"
	"real-estate-marketplace/internal/core/domain"
	"strings"
)

// адресные поля, по которым ищет каждый токен location
var locationColumns = []string{"l.county", "l.city", "l.suburb", "l.area", "l.road"}

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// addAnyFieldCondition строит (f1 <op> $n OR f2 <op> $n ...) с одним аргументом на все поля
func (qb *queryBuilder) addAnyFieldCondition(condition string, fieldNames []string, arg interface{}) {
	parts := make([]string, 0, len(fieldNames))
	for _, field := range fieldNames {
		parts = append(parts, fmt.Sprintf(condition, field, qb.argId))
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
	qb.args = append(qb.args, arg)
	qb.argId++
}

func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d::float8", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d::float8", fieldName, *max)
	}
}

func (qb *queryBuilder) AddContainsAll(fieldName string, tags []string) {
	if len(tags) > 0 {
		qb.addCondition("%s @> $%d::text[]", fieldName, tags)
	}
}

func (qb *queryBuilder) AddBool(fieldName string, v *bool) {
	if v != nil {
		qb.addCondition("%s = $%d", fieldName, *v)
	}
}

func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// likePattern экранирует спецсимволы LIKE, чтобы токен искался как обычная подстрока
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// applyFilters переводит ListingFilters в WHERE и позиционные аргументы.
// Семантика совпадает с domain.ListingFilters.Matches: регистр сравнивается
// через ILIKE/LOWER, в памяти через cases.Lower.
func applyFilters(filters domain.ListingFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	// каждый токен - OR по адресным полям, токены между собой - AND
	for _, token := range filters.LocationTokens {
		qb.addAnyFieldCondition("%s ILIKE $%d", locationColumns, likePattern(token))
	}

	qb.AddFloatFilter("l.price", filters.MinPrice, filters.MaxPrice)

	if filters.PropertyType != "" {
		qb.addCondition("%s ILIKE $%d", "l.property_type", likePattern(filters.PropertyType))
	}
	if filters.OfferType != "" {
		qb.addCondition("%s = LOWER($%d)", "LOWER(l.offer_type)", filters.OfferType)
	}

	qb.AddFloatFilter("l.bedrooms", filters.Bedrooms, nil)
	qb.AddFloatFilter("l.bathrooms", filters.Bathrooms, nil)
	qb.AddFloatFilter("l.rooms", filters.Rooms, nil)
	qb.AddFloatFilter("l.size", filters.Size, nil)

	qb.AddContainsAll("l.amenities_internal", filters.AmenitiesInternal)
	qb.AddContainsAll("l.amenities_external", filters.AmenitiesExternal)
	qb.AddContainsAll("l.amenities_nearby", filters.AmenitiesNearby)

	qb.AddBool("l.featured", filters.Featured)
	qb.AddBool("l.listing_status", filters.Available)

	return qb.build()
}

// pageClause добавляет LIMIT/OFFSET, только если они заданы
func pageClause(page domain.Pagination, args []interface{}) (string, []interface{}) {
	var clause strings.Builder
	if page.Limit > 0 {
		args = append(args, page.Limit)
		fmt.Fprintf(&clause, " LIMIT $%d", len(args))
	}
	if page.Offset > 0 {
		args = append(args, page.Offset)
		fmt.Fprintf(&clause, " OFFSET $%d", len(args))
	}
	return clause.String(), args
}
