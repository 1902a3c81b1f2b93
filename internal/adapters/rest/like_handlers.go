package rest

import (
	"net/http"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type LikeHandler struct {
	toggleUC usecases_port.ToggleLikeUseCasePort
	checkUC  usecases_port.CheckLikeUseCasePort
	likedUC  usecases_port.GetLikedListingsUseCasePort
}

func NewLikeHandler(toggleUC usecases_port.ToggleLikeUseCasePort,
	checkUC usecases_port.CheckLikeUseCasePort,
	likedUC usecases_port.GetLikedListingsUseCasePort) *LikeHandler {
	return &LikeHandler{toggleUC: toggleUC, checkUC: checkUC, likedUC: likedUC}
}

// currentUserID возвращает uuid.Nil для анонимного запроса
func currentUserID(r *http.Request) uuid.UUID {
	if claims := contextkeys.ClaimsFromContext(r.Context()); claims != nil {
		return claims.UserID
	}
	return uuid.Nil
}

// ToggleLike обрабатывает POST /api/v1/listings/{id}/like
func (h *LikeHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	listingID, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	liked, err := h.toggleUC.Execute(r.Context(), currentUserID(r), listingID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, LikeResponse{Liked: liked})
}

// CheckLike обрабатывает GET /api/v1/listings/{id}/like
func (h *LikeHandler) CheckLike(w http.ResponseWriter, r *http.Request) {
	listingID, ok := uuidParam(r, "id")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	liked, err := h.checkUC.Execute(r.Context(), currentUserID(r), listingID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, LikeResponse{Liked: liked})
}

// GetMyLikes обрабатывает GET /api/v1/me/likes
func (h *LikeHandler) GetMyLikes(w http.ResponseWriter, r *http.Request) {
	page := paginationFromQuery(r)

	result, err := h.likedUC.Execute(r.Context(), currentUserID(r), page)
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
