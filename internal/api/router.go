package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aweston/charkeep/internal/api/handler"
	apimiddleware "github.com/aweston/charkeep/internal/api/middleware"
	"github.com/aweston/charkeep/internal/middleware"
	"github.com/aweston/charkeep/internal/services/auth"
	"github.com/aweston/charkeep/internal/services/catalog"
	"github.com/aweston/charkeep/internal/services/character"
	"github.com/aweston/charkeep/internal/services/user"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	UserService      *user.Service
	CharacterService *character.Service
	CatalogService   *catalog.Service
}

// NewRouter creates a new API router with all routes configured.
// Routes are mounted at the root with no version prefix.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	userHandler := handler.NewUserHandler(cfg.UserService)
	characterHandler := handler.NewCharacterHandler(cfg.CharacterService)
	catalogHandler := handler.NewCatalogHandler(cfg.CatalogService)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Auth routes
	r.HandleFunc("/login/", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/register/", authHandler.Register).Methods(http.MethodPost)
	r.Handle("/protected/", authMiddleware(http.HandlerFunc(authHandler.Protected))).Methods(http.MethodGet)

	// User routes. GET /user/ reports the authenticated user; the
	// remaining user CRUD routes carry no auth (observed surface).
	r.Handle("/user/", authMiddleware(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)
	r.HandleFunc("/user/", userHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/users/", userHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/user/{id}", userHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/user/{id}", userHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/user/{id}", userHandler.Delete).Methods(http.MethodDelete)

	// Character routes
	r.HandleFunc("/user/{id}/characters/", characterHandler.ListForUser).Methods(http.MethodGet)
	r.HandleFunc("/characters/", characterHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/characters/{id}", characterHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/characters/{id}", characterHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/characters/{id}", characterHandler.Delete).Methods(http.MethodDelete)

	// Parent phone routes
	r.HandleFunc("/users/{id}/parent-phones/", userHandler.ListParentPhones).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/parent-phones/", userHandler.AddParentPhone).Methods(http.MethodPost)
	r.HandleFunc("/parent-phones/{id}", userHandler.DeleteParentPhone).Methods(http.MethodDelete)

	// Catalog routes
	r.HandleFunc("/races/", catalogHandler.ListRaces).Methods(http.MethodGet)
	r.HandleFunc("/religions/", catalogHandler.ListReligions).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
