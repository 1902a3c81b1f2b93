package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"real-estate-marketplace/internal/contracts"
	"real-estate-marketplace/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// statusForError сопоставляет доменные ошибки с HTTP-статусами
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, contracts.ErrInvalidPayload):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, domain.ErrNotAuthenticated.Error()
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrEmailInUse), errors.Is(err, domain.ErrInvalidBookingStatus):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidListing),
		errors.Is(err, domain.ErrInvalidBooking),
		errors.Is(err, domain.ErrInvalidRegistration):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

func writeUseCaseError(w http.ResponseWriter, err error) {
	status, message := statusForError(err)
	WriteJSONError(w, status, message)
}

// decodeValidated читает тело, проверяет его по схеме и декодирует в dst
func decodeValidated(r *http.Request, schemaKey string, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if err := contracts.Validate(schemaKey, body); err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

func uuidParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

// paginationFromQuery - некорректные limit/offset игнорируются, как и остальные фильтры
func paginationFromQuery(r *http.Request) domain.Pagination {
	limit, _ := strconv.Atoi(r.URL.Query().Get(domain.PaginationLimit))
	offset, _ := strconv.Atoi(r.URL.Query().Get(domain.PaginationOffset))
	return domain.NewPagination(limit, offset)
}

// rawFiltersFromQuery берет первое значение каждого параметра
func rawFiltersFromQuery(r *http.Request) domain.RawFilters {
	query := r.URL.Query()
	raw := make(domain.RawFilters, len(query))
	for key, values := range query {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}
	return raw
}
