package http

import (
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/openinvites/flamingo/pkg/usecase"
)

// AuthHandler handles the OAuth install redirect
type AuthHandler struct {
	oauthUC usecase.OAuthUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(oauthUC usecase.OAuthUseCase) *AuthHandler {
	return &AuthHandler{
		oauthUC: oauthUC,
	}
}

// HandleAuth is the OAuth redirect target. The code is exchanged for a bot
// token and the workspace credential is persisted; the browser lands on a
// success or error page either way.
func (h *AuthHandler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.From(r.Context())

	code := r.URL.Query().Get("code")
	if code == "" {
		logger.Warn("OAuth callback without code",
			"query", r.URL.RawQuery,
		)
		http.Redirect(w, r, "/error", http.StatusFound)
		return
	}

	cred, err := h.oauthUC.ExchangeCode(r.Context(), code)
	if err != nil {
		logger.Error("Failed to complete OAuth exchange", "error", err)
		http.Redirect(w, r, "/error", http.StatusFound)
		return
	}

	logger.Info("Workspace installed",
		"teamID", cred.TeamID,
		"teamName", cred.TeamName,
	)
	http.Redirect(w, r, "/success", http.StatusFound)
}
