package domain

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ключи фильтров в query string
const (
	FilterLocation          = "location"
	FilterMinPrice          = "minPrice"
	FilterMaxPrice          = "maxPrice"
	FilterPropertyType      = "propertytype"
	FilterOfferType         = "offertype"
	FilterBedrooms          = "bedrooms"
	FilterBathrooms         = "bathrooms"
	FilterRooms             = "rooms"
	FilterSize              = "size"
	FilterAmenitiesInternal = "amenitiesInternal"
	FilterAmenitiesExternal = "amenitiesExternal"
	FilterAmenitiesNearby   = "amenitiesNearby"
	FilterFeatured          = "featured"
	FilterAvailable         = "available"

	PaginationLimit  = "limit"
	PaginationOffset = "offset"
)

// MaxPageLimit - верхняя граница для limit
const MaxPageLimit = 100

// RawFilters - плоское отображение ключ фильтра -> сырое значение из query string
type RawFilters map[string]string

// ListingFilters - разобранные фильтры поиска. Нулевое значение поля означает "без ограничения".
type ListingFilters struct {
	LocationTokens []string
	MinPrice       *float64
	MaxPrice       *float64
	PropertyType   string
	OfferType      string

	Bedrooms  *float64
	Bathrooms *float64
	Rooms     *float64
	Size      *float64

	AmenitiesInternal []string
	AmenitiesExternal []string
	AmenitiesNearby   []string

	Featured  *bool
	Available *bool
}

// Pagination - Limit == 0 означает "вернуть все"
type Pagination struct {
	Limit  int
	Offset int
}

// ParseListingFilters разбирает сырые параметры. Неизвестные, пустые и некорректные
// значения игнорируются.
func ParseListingFilters(raw RawFilters) ListingFilters {
	var f ListingFilters

	if tokens := strings.Fields(raw[FilterLocation]); len(tokens) > 0 {
		f.LocationTokens = tokens
	}
	f.MinPrice = parseNumber(raw[FilterMinPrice])
	f.MaxPrice = parseNumber(raw[FilterMaxPrice])
	f.PropertyType = strings.TrimSpace(raw[FilterPropertyType])
	f.OfferType = strings.TrimSpace(raw[FilterOfferType])

	f.Bedrooms = parseNumber(raw[FilterBedrooms])
	f.Bathrooms = parseNumber(raw[FilterBathrooms])
	f.Rooms = parseNumber(raw[FilterRooms])
	f.Size = parseNumber(raw[FilterSize])

	f.AmenitiesInternal = parseTagList(raw[FilterAmenitiesInternal])
	f.AmenitiesExternal = parseTagList(raw[FilterAmenitiesExternal])
	f.AmenitiesNearby = parseTagList(raw[FilterAmenitiesNearby])

	f.Featured = parseBool(raw[FilterFeatured])
	f.Available = parseBool(raw[FilterAvailable])

	return f
}

// ParsePagination разбирает limit/offset. Без limit пагинации нет.
func ParsePagination(raw RawFilters) Pagination {
	return NewPagination(parseInt(raw[PaginationLimit]), parseInt(raw[PaginationOffset]))
}

// NewPagination нормализует значения: отрицательные обнуляются, limit режется до MaxPageLimit
func NewPagination(limit, offset int) Pagination {
	if limit < 0 {
		limit = 0
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Pagination{Limit: limit, Offset: offset}
}

// Window возвращает границы среза [start, end) для n элементов
func (p Pagination) Window(n int) (int, int) {
	start := p.Offset
	if start > n {
		start = n
	}
	end := n
	if p.Limit > 0 && start+p.Limit < n {
		end = start + p.Limit
	}
	return start, end
}

// Matches - in-memory вариант того же предиката, что строит SQL-билдер.
func (f ListingFilters) Matches(l Listing) bool {
	for _, token := range f.LocationTokens {
		if !anyContainsFold(l.Location.Fields(), token) {
			return false
		}
	}

	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.PropertyType != "" && !containsFold(l.PropertyType, f.PropertyType) {
		return false
	}
	if f.OfferType != "" && lower(string(l.OfferType)) != lower(f.OfferType) {
		return false
	}

	if !atLeastInt(l.Features.Bedrooms, f.Bedrooms) ||
		!atLeastInt(l.Features.Bathrooms, f.Bathrooms) ||
		!atLeastInt(l.Features.Rooms, f.Rooms) {
		return false
	}
	if f.Size != nil && (l.Features.Size == nil || *l.Features.Size < *f.Size) {
		return false
	}

	if !containsAll(l.Amenities.Internal, f.AmenitiesInternal) ||
		!containsAll(l.Amenities.External, f.AmenitiesExternal) ||
		!containsAll(l.Amenities.Nearby, f.AmenitiesNearby) {
		return false
	}

	if f.Featured != nil && l.Featured != *f.Featured {
		return false
	}
	if f.Available != nil && l.ListingStatus != *f.Available {
		return false
	}
	return true
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// parseBool принимает только "true"/"false" (без учета регистра)
func parseBool(s string) *bool {
	var v bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		v = true
	case "false":
		v = false
	default:
		return nil
	}
	return &v
}

func parseTagList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	tags := DedupeTags(strings.Split(s, ","))
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// Только нижний регистр, без полного Unicode folding (ß не равно ss),
// как LOWER/ILIKE в Postgres. Caser хранит состояние, поэтому создается на каждый вызов
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func containsFold(s, substr string) bool {
	return strings.Contains(lower(s), lower(substr))
}

func anyContainsFold(fields []string, token string) bool {
	for _, field := range fields {
		if containsFold(field, token) {
			return true
		}
	}
	return false
}

func atLeastInt(v *int, min *float64) bool {
	if min == nil {
		return true
	}
	return v != nil && float64(*v) >= *min
}

func containsAll(set, required []string) bool {
	for _, r := range required {
		found := false
		for _, s := range set {
			if s == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
