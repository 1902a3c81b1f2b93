package rest

import (
	"net/http"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/contracts"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/internal/core/port/usecases_port"
)

type ListingHandler struct {
	findUC      usecases_port.FindListingsUseCasePort
	detailsUC   usecases_port.GetListingDetailsUseCasePort
	createUC    usecases_port.CreateListingUseCasePort
	updateUC    usecases_port.UpdateListingUseCasePort
	deleteUC    usecases_port.DeleteListingUseCasePort
	ownerListUC usecases_port.GetOwnerListingsUseCasePort
}

func NewListingHandler(findUC usecases_port.FindListingsUseCasePort,
	detailsUC usecases_port.GetListingDetailsUseCasePort,
	createUC usecases_port.CreateListingUseCasePort,
	updateUC usecases_port.UpdateListingUseCasePort,
	deleteUC usecases_port.DeleteListingUseCasePort,
	ownerListUC usecases_port.GetOwnerListingsUseCasePort) *ListingHandler {
	return &ListingHandler{
		findUC:      findUC,
		detailsUC:   detailsUC,
		createUC:    createUC,
		updateUC:    updateUC,
		deleteUC:    deleteUC,
		ownerListUC: ownerListUC,
	}
}

// FindListings обрабатывает GET /api/v1/listings
func (h *ListingHandler) FindListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindListings"})

	result, err := h.findUC.Execute(r.Context(), rawFiltersFromQuery(r))
	if err != nil {
		logger.Error("Find listings use case failed", err, nil)
		RespondWithJSON(w, http.StatusInternalServerError, FailureResponse{
			Success: false,
			Message: "failed to retrieve listings",
		})
		return
	}

	RespondWithJSON(w, http.StatusOK, FindListingsResponse{
		Success:  true,
		Count:    len(result.Listings),
		Total:    result.Total,
		Listings: toListingResponses(result.Listings),
	})
}

// GetListing обрабатывает GET /api/v1/listings/{id}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	listing, err := h.detailsUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingResponse(*listing))
}

// CreateListing обрабатывает POST /api/v1/listings
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateListing"})

	var req ListingRequest
	if err := decodeValidated(r, contracts.ListingCreateRequest, &req); err != nil {
		logger.Warn("Rejected listing payload", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := h.createUC.Execute(r.Context(), contextkeys.ClaimsFromContext(r.Context()), req.toInput())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toListingResponse(*listing))
}

// UpdateListing обрабатывает PUT /api/v1/listings/{id}
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateListing"})

	id, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	var req ListingRequest
	if err := decodeValidated(r, contracts.ListingUpdateRequest, &req); err != nil {
		logger.Warn("Rejected listing payload", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := h.updateUC.Execute(r.Context(), contextkeys.ClaimsFromContext(r.Context()), id, req.toInput())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingResponse(*listing))
}

// DeleteListing обрабатывает DELETE /api/v1/listings/{id}
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), contextkeys.ClaimsFromContext(r.Context()), id); err != nil {
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMyListings обрабатывает GET /api/v1/me/listings
func (h *ListingHandler) GetMyListings(w http.ResponseWriter, r *http.Request) {
	page := paginationFromQuery(r)

	result, err := h.ownerListUC.Execute(r.Context(), currentUserID(r), page)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, PaginatedListingsResponse{
		Data:   toListingResponses(result.Listings),
		Total:  result.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}
