package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"real-estate-marketplace/internal/adapters/memory"
	token_adapter "real-estate-marketplace/internal/adapters/jwt"
	logger_adapter "real-estate-marketplace/internal/adapters/logger"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

type failingFind struct{}

func (failingFind) Execute(ctx context.Context, raw domain.RawFilters) (*domain.PaginatedListings, error) {
	return nil, errors.New("connection refused")
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := memory.NewStore()
	listings := memory.NewListingStorage(store)
	likes := memory.NewLikeRepository(store)
	bookings := memory.NewBookingRepository(store)
	users := memory.NewUserRepository(store)

	tokens, err := token_adapter.NewTokenService("test-secret")
	require.NoError(t, err)

	h := Handlers{
		Listings: NewListingHandler(
			usecase.NewFindListingsUseCase(listings),
			usecase.NewGetListingDetailsUseCase(listings, nil, nil),
			usecase.NewCreateListingUseCase(listings, nil),
			usecase.NewUpdateListingUseCase(listings, nil, nil),
			usecase.NewDeleteListingUseCase(listings, nil, nil),
			usecase.NewGetOwnerListingsUseCase(listings),
		),
		Likes: NewLikeHandler(
			usecase.NewToggleLikeUseCase(likes, nil),
			usecase.NewCheckLikeUseCase(likes),
			usecase.NewGetLikedListingsUseCase(likes),
		),
		Bookings: NewBookingHandler(
			usecase.NewCreateBookingUseCase(listings, bookings, nil),
			usecase.NewGetUserBookingsUseCase(bookings),
			usecase.NewGetOwnerBookingsUseCase(bookings),
			usecase.NewUpdateBookingStatusUseCase(bookings, nil),
		),
		Auth: NewAuthHandler(
			usecase.NewRegisterUserUseCase(users, tokens, time.Hour),
			usecase.NewLoginUserUseCase(users, tokens, time.Hour),
			usecase.NewGetCurrentUserUseCase(users),
		),
		Health: NewHealthHandler(map[string]HealthCheck{
			"storage": func(ctx context.Context) error { return nil },
		}),
	}

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	auth := NewAuthMiddleware(usecase.NewValidateTokenUseCase(tokens))
	cfg := ServerConfig{Port: "0", CORSAllowedOrigins: []string{"http://localhost:5173"}}

	return &testAPI{t: t, handler: NewRouter(cfg, h, auth, logger)}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(email, role string) string {
	a.t.Helper()
	body := map[string]string{"email": email, "password": "correct-horse", "name": "Test"}
	if role != "" {
		body["role"] = role
	}
	rec := a.do(http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp AuthResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func (a *testAPI) createListing(token string, body map[string]interface{}) ListingResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/listings", token, body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp ListingResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestFindListings_FiltersAndShape(t *testing.T) {
	api := newTestAPI(t)
	agency := api.register("agency@test.io", domain.RoleAgency)

	api.createListing(agency, map[string]interface{}{
		"price": 999999, "offertype": "sale", "propertytype": "Apartment",
		"location": map[string]string{"county": "Nairobi", "suburb": "Ngara"},
	})
	time.Sleep(2 * time.Millisecond)
	newest := api.createListing(agency, map[string]interface{}{
		"price": 5000000, "offertype": "rent", "propertytype": "Townhouse",
		"location": map[string]string{"city": "nairobi", "area": "NGARA estate"},
		"amenities": map[string][]string{"internal": {"AC", "Wi-Fi", "AC"}},
	})

	rec := api.do(http.MethodGet, "/api/v1/listings?location=nairobi+ngara&minPrice=1000000&offertype=RENT", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[FindListingsResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Listings, 1)
	assert.Equal(t, newest.ID, resp.Listings[0].ID)
	assert.Equal(t, []string{"AC", "Wi-Fi"}, resp.Listings[0].Amenities.Internal)
	assert.Equal(t, []string{}, resp.Listings[0].Amenities.Nearby)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	listing := raw["listings"].([]interface{})[0].(map[string]interface{})
	for _, key := range []string{"propertytype", "offertype", "listingstatus", "createdAt", "features", "amenities"} {
		assert.Contains(t, listing, key)
	}
}

func TestFindListings_MalformedValuesIgnoredAndNewestFirst(t *testing.T) {
	api := newTestAPI(t)
	agency := api.register("agency@test.io", domain.RoleAgency)

	first := api.createListing(agency, map[string]interface{}{"price": 1, "offertype": "sale"})
	time.Sleep(2 * time.Millisecond)
	second := api.createListing(agency, map[string]interface{}{"price": 2, "offertype": "sale"})

	rec := api.do(http.MethodGet, "/api/v1/listings?minPrice=abc&featured=yes&bedrooms=&amenitiesInternal=,", "", nil)
	resp := decode[FindListingsResponse](t, rec)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, second.ID, resp.Listings[0].ID)
	assert.Equal(t, first.ID, resp.Listings[1].ID)

	rec = api.do(http.MethodGet, "/api/v1/listings?limit=1&offset=1", "", nil)
	resp = decode[FindListingsResponse](t, rec)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, first.ID, resp.Listings[0].ID)
}

func TestFindListings_StorageFailure(t *testing.T) {
	h := NewListingHandler(failingFind{}, nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	h.FindListings(rec, httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[FailureResponse](t, rec)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestLikeToggle_Flow(t *testing.T) {
	api := newTestAPI(t)
	agency := api.register("agency@test.io", domain.RoleAgency)
	user := api.register("user@test.io", "")
	listing := api.createListing(agency, map[string]interface{}{"price": 10, "offertype": "rent"})
	likePath := "/api/v1/listings/" + listing.ID + "/like"

	rec := api.do(http.MethodPost, likePath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"not authenticated"}`, rec.Body.String())

	rec = api.do(http.MethodGet, likePath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"not authenticated"}`, rec.Body.String())

	rec = api.do(http.MethodPost, likePath, "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.False(t, decode[LikeResponse](t, api.do(http.MethodGet, likePath, user, nil)).Liked)
	assert.True(t, decode[LikeResponse](t, api.do(http.MethodPost, likePath, user, nil)).Liked)
	assert.True(t, decode[LikeResponse](t, api.do(http.MethodGet, likePath, user, nil)).Liked)

	liked := decode[PaginatedListingsResponse](t, api.do(http.MethodGet, "/api/v1/me/likes", user, nil))
	require.Len(t, liked.Data, 1)
	assert.Equal(t, listing.ID, liked.Data[0].ID)

	assert.False(t, decode[LikeResponse](t, api.do(http.MethodPost, likePath, user, nil)).Liked)
	assert.False(t, decode[LikeResponse](t, api.do(http.MethodGet, likePath, user, nil)).Liked)
}

func TestLikeToggle_UnknownListing(t *testing.T) {
	api := newTestAPI(t)
	user := api.register("user@test.io", "")

	rec := api.do(http.MethodPost, "/api/v1/listings/00000000-0000-0000-0000-000000000001/like", user, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/listings/abc/like", user, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListings_AccessControl(t *testing.T) {
	api := newTestAPI(t)
	agency := api.register("agency@test.io", domain.RoleAgency)
	other := api.register("other@test.io", domain.RoleAgency)
	user := api.register("user@test.io", domain.RoleUser)

	rec := api.do(http.MethodPost, "/api/v1/listings", user, map[string]interface{}{"price": 1, "offertype": "sale"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/listings", "", map[string]interface{}{"price": 1, "offertype": "sale"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/listings", agency, map[string]interface{}{"price": 1, "offertype": "lease"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	listing := api.createListing(agency, map[string]interface{}{"price": 1, "offertype": "sale", "title": "Old"})
	path := "/api/v1/listings/" + listing.ID

	rec = api.do(http.MethodPut, path, other, map[string]interface{}{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPut, path, agency, map[string]interface{}{"title": "New"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New", decode[ListingResponse](t, rec).Title)

	mine := decode[PaginatedListingsResponse](t, api.do(http.MethodGet, "/api/v1/me/listings", agency, nil))
	assert.Equal(t, 1, mine.Total)

	rec = api.do(http.MethodDelete, path, agency, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookings_Flow(t *testing.T) {
	api := newTestAPI(t)
	agency := api.register("agency@test.io", domain.RoleAgency)
	user := api.register("user@test.io", "")
	listing := api.createListing(agency, map[string]interface{}{"price": 10, "offertype": "rent"})

	viewing := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	rec := api.do(http.MethodPost, "/api/v1/listings/"+listing.ID+"/bookings", user, map[string]string{
		"viewingDate": viewing, "message": "Saturday works",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	booking := decode[BookingResponse](t, rec)
	assert.Equal(t, "pending", booking.Status)

	rec = api.do(http.MethodPost, "/api/v1/listings/"+listing.ID+"/bookings", agency, map[string]string{"viewingDate": viewing})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	incoming := decode[[]BookingResponse](t, api.do(http.MethodGet, "/api/v1/me/bookings/incoming", agency, nil))
	require.Len(t, incoming, 1)

	rec = api.do(http.MethodGet, "/api/v1/me/bookings/incoming", user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPatch, "/api/v1/bookings/"+booking.ID, user, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPatch, "/api/v1/bookings/"+booking.ID, agency, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "accepted", decode[BookingResponse](t, rec).Status)

	rec = api.do(http.MethodPatch, "/api/v1/bookings/"+booking.ID, user, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	mine := decode[[]BookingResponse](t, api.do(http.MethodGet, "/api/v1/me/bookings", user, nil))
	require.Len(t, mine, 1)
	assert.Equal(t, "accepted", mine[0].Status)
}

func TestAuth_LoginAndMe(t *testing.T) {
	api := newTestAPI(t)
	api.register("User@Test.io", "")

	rec := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "user@test.io", "password": "another-pass", "name": "Dup",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "user@test.io", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "user@test.io", "password": "correct-horse"})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[AuthResponse](t, rec)

	me := decode[UserResponse](t, api.do(http.MethodGet, "/api/v1/auth/me", login.Token, nil))
	assert.Equal(t, "user@test.io", me.Email)
	assert.Equal(t, domain.RoleUser, me.Role)

	rec = api.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthAndTraceHeader(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(traceHeader, "5f0c7e1a-8a51-4f55-9d8e-1f7f4f5b2c11")
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5f0c7e1a-8a51-4f55-9d8e-1f7f4f5b2c11", rec.Header().Get(traceHeader))
	assert.JSONEq(t, `{"status":"ok","checks":{"storage":"ok"}}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/healthz", "", nil)
	assert.NotEqual(t, "", rec.Header().Get(traceHeader))
}

func TestHealth_Degraded(t *testing.T) {
	h := NewHealthHandler(map[string]HealthCheck{
		"redis": func(ctx context.Context) error { return errors.New("dial tcp: refused") },
	})
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}
