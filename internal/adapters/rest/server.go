package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const apiPrefix = "/api/v1"

// Handlers - все обработчики, которые монтирует сервер
type Handlers struct {
	Listings *ListingHandler
	Likes    *LikeHandler
	Bookings *BookingHandler
	Auth     *AuthHandler
	Health   *HealthHandler
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает chi-роутер со всеми маршрутами
func NewRouter(cfg ServerConfig, h Handlers, authMiddleware *AuthMiddleware, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceHeader},
		ExposedHeaders:   []string{traceHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health.Health)

	agencyRoles := []string{domain.RoleAgency, domain.RoleAdmin}

	r.Route(apiPrefix, func(r chi.Router) {
		// --- Публичные маршруты ---
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Get("/listings", h.Listings.FindListings)
		r.Get("/listings/{id}", h.Listings.GetListing)

		// Лайки: анонимный запрос отклоняет use case, ответ 401 {"error":"not authenticated"}
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuthenticate)
			r.Post("/listings/{id}/like", h.Likes.ToggleLike)
			r.Get("/listings/{id}/like", h.Likes.CheckLike)
		})

		// --- Приватные маршруты (для всех авторизованных) ---
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", h.Auth.Me)
			r.Put("/listings/{id}", h.Listings.UpdateListing)
			r.Delete("/listings/{id}", h.Listings.DeleteListing)
			r.Post("/listings/{id}/bookings", h.Bookings.CreateBooking)
			r.Patch("/bookings/{id}", h.Bookings.UpdateBookingStatus)
			r.Get("/me/likes", h.Likes.GetMyLikes)
			r.Get("/me/bookings", h.Bookings.GetMyBookings)
		})

		// --- Приватные маршруты (агентства и админы) ---
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(authMiddleware.RequireRole(agencyRoles...))

			r.Post("/listings", h.Listings.CreateListing)
			r.Get("/me/listings", h.Listings.GetMyListings)
			r.Get("/me/bookings/incoming", h.Bookings.GetIncomingBookings)
		})
	})

	return r
}

// NewServer создает новый экземпляр сервера.
func NewServer(cfg ServerConfig, h Handlers, authMiddleware *AuthMiddleware, baseLogger port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, h, authMiddleware, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
