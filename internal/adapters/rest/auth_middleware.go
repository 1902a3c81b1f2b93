package rest

import (
	"net/http"
	"strings"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/internal/core/port/usecases_port"
)

type AuthMiddleware struct {
	validateUC usecases_port.ValidateTokenUseCasePort
}

func NewAuthMiddleware(validateUC usecases_port.ValidateTokenUseCasePort) *AuthMiddleware {
	return &AuthMiddleware{validateUC: validateUC}
}

// bearerToken возвращает токен и признак того, что заголовок вообще был передан
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", true
	}
	return strings.TrimSpace(tokenString), true
}

// Authenticate - middleware для проверки JWT, без токена дальше не пускает
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return am.authenticate(next, true)
}

// OptionalAuthenticate кладет claims в контекст, если токен передан.
// Анонимные запросы идут дальше, решение принимает use case.
func (am *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return am.authenticate(next, false)
}

func (am *AuthMiddleware) authenticate(next http.Handler, required bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"component": "AuthMiddleware"})

		tokenString, present := bearerToken(r)
		if !present {
			if required {
				WriteJSONError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		if tokenString == "" {
			WriteJSONError(w, http.StatusUnauthorized, "invalid token format")
			return
		}

		claims, err := am.validateUC.Execute(r.Context(), tokenString)
		if err != nil {
			logger.Warn("Token rejected", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := contextkeys.ContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole - middleware для проверки роли пользователя, ставится после Authenticate
func (am *AuthMiddleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := contextkeys.ClaimsFromContext(r.Context())
			if claims == nil {
				WriteJSONError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if !claims.HasRole(roles...) {
				WriteJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
