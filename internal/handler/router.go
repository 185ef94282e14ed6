package handler

import (
	"log/slog"
	"net/http"

	"github.com/segyhp/debt-ledger/pkg/response"

	"github.com/gorilla/mux"
)

// RouterOptions configures the HTTP surface; an empty JWTSecret disables auth
type RouterOptions struct {
	Logger    *slog.Logger
	JWTSecret string
	Issuer    string
}

func NewRouter(debtors *DebtorHandler, health *HealthHandler, opts RouterOptions) *mux.Router {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	router := mux.NewRouter()
	router.Use(response.CORSMiddleware, RequestLogger(opts.Logger))

	// Health check
	router.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", health.Ready).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	if opts.JWTSecret != "" {
		api.Use(AuthMiddleware(opts.JWTSecret, opts.Issuer))
	}
	debtors.Register(api)

	return router
}
