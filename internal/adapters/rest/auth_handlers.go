package rest

import (
	"net/http"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/contracts"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/internal/core/port/usecases_port"
)

type AuthHandler struct {
	registerUC usecases_port.RegisterUserUseCasePort
	loginUC    usecases_port.LoginUserUseCasePort
	meUC       usecases_port.GetCurrentUserUseCasePort
}

func NewAuthHandler(registerUC usecases_port.RegisterUserUseCasePort,
	loginUC usecases_port.LoginUserUseCasePort,
	meUC usecases_port.GetCurrentUserUseCasePort) *AuthHandler {
	return &AuthHandler{registerUC: registerUC, loginUC: loginUC, meUC: meUC}
}

// Register обрабатывает POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if err := decodeValidated(r, contracts.UserRegisterRequest, &req); err != nil {
		logger.Warn("Rejected registration payload", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.registerUC.Execute(r.Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, AuthResponse{User: toUserResponse(result.User), Token: result.Token})
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeValidated(r, contracts.UserLoginRequest, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, AuthResponse{User: toUserResponse(result.User), Token: result.Token})
}

// Me обрабатывает GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.meUC.Execute(r.Context(), currentUserID(r))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}
