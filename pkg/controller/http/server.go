package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/openinvites/flamingo/pkg/cli/config"
	slackCtrl "github.com/openinvites/flamingo/pkg/controller/slack"
	"github.com/openinvites/flamingo/pkg/usecase"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router       chi.Router
	slackHandler *slackCtrl.Handler
	authHandler  *AuthHandler
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	slackConfig *config.Slack,
	inviteUC usecase.InviteUseCase,
	oauthUC usecase.OAuthUseCase,
) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	slackHandler := slackCtrl.NewHandler(slackConfig, inviteUC)
	authHandler := NewAuthHandler(oauthUC)

	router.Get("/health", handleHealth)

	// Slack webhook endpoints
	router.Post("/flamingo", slackHandler.HandleCommand)
	router.Post("/response", slackHandler.HandleInteraction)

	// OAuth install flow and informational pages
	router.Get("/auth", authHandler.HandleAuth)
	router.Get("/", handleHome)
	router.Get("/success", handleSuccess)
	router.Get("/error", handleError)

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:       router,
		slackHandler: slackHandler,
		authHandler:  authHandler,
	}
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "flamingo",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}
