package rest

import (
	"net/http"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/contracts"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/internal/core/port/usecases_port"
)

type BookingHandler struct {
	createUC       usecases_port.CreateBookingUseCasePort
	userBookingsUC usecases_port.GetUserBookingsUseCasePort
	ownerBookingUC usecases_port.GetOwnerBookingsUseCasePort
	updateStatusUC usecases_port.UpdateBookingStatusUseCasePort
}

func NewBookingHandler(createUC usecases_port.CreateBookingUseCasePort,
	userBookingsUC usecases_port.GetUserBookingsUseCasePort,
	ownerBookingUC usecases_port.GetOwnerBookingsUseCasePort,
	updateStatusUC usecases_port.UpdateBookingStatusUseCasePort) *BookingHandler {
	return &BookingHandler{
		createUC:       createUC,
		userBookingsUC: userBookingsUC,
		ownerBookingUC: ownerBookingUC,
		updateStatusUC: updateStatusUC,
	}
}

// CreateBooking обрабатывает POST /api/v1/listings/{id}/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateBooking"})

	listingID, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	var req BookingRequest
	if err := decodeValidated(r, contracts.BookingCreateRequest, &req); err != nil {
		logger.Warn("Rejected booking payload", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.createUC.Execute(r.Context(), currentUserID(r), listingID, req.ViewingDate, req.Message)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toBookingResponse(*booking))
}

// GetMyBookings обрабатывает GET /api/v1/me/bookings
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.userBookingsUC.Execute(r.Context(), currentUserID(r))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toBookingResponses(bookings))
}

// GetIncomingBookings обрабатывает GET /api/v1/me/bookings/incoming
func (h *BookingHandler) GetIncomingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.ownerBookingUC.Execute(r.Context(), currentUserID(r))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toBookingResponses(bookings))
}

// UpdateBookingStatus обрабатывает PATCH /api/v1/bookings/{id}
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req BookingStatusRequest
	if err := decodeValidated(r, contracts.BookingStatusRequest, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	status, _ := domain.ParseBookingStatus(req.Status)

	booking, err := h.updateStatusUC.Execute(r.Context(), currentUserID(r), bookingID, status)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toBookingResponse(*booking))
}
