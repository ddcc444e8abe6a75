package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/m-mizutani/ctxlog"
	slackSvc "github.com/openinvites/flamingo/pkg/service/slack"
	"github.com/openinvites/flamingo/pkg/utils/async"
	"github.com/slack-go/slack"
)

// HandleInteraction handles interactive-component callbacks. The response
// is always an immediate empty 200; processing continues afterwards.
func (h *Handler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.From(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read interaction body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.verifySignature(r, body); err != nil {
		logger.Warn("Invalid Slack signature for interaction", "error", err)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		logger.Error("Failed to parse interaction form", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	payload := form.Get("payload")
	if payload == "" {
		logger.Warn("Interaction without payload field")
		w.WriteHeader(http.StatusOK)
		return
	}

	// Ack first; routing happens in the background.
	w.WriteHeader(http.StatusOK)

	async.Dispatch(r.Context(), func(ctx context.Context) error {
		return h.routeInteraction(ctx, []byte(payload))
	})
}

// routeInteraction dispatches a callback by its correlation identifier.
// Unknown or missing identifiers are silently ignored.
func (h *Handler) routeInteraction(ctx context.Context, payload []byte) error {
	var interaction slack.InteractionCallback
	if err := json.Unmarshal(payload, &interaction); err != nil {
		ctxlog.From(ctx).Debug("Ignoring malformed interaction payload", "error", err)
		return nil
	}

	ctxlog.From(ctx).Info("Handling Slack interaction",
		"callbackID", interaction.CallbackID,
		"user", interaction.User.ID,
		"team", interaction.Team.ID,
	)

	switch interaction.CallbackID {
	case slackSvc.CallbackRSVP:
		return h.inviteUC.HandleRSVP(ctx, &interaction)

	case slackSvc.CallbackCancel:
		return h.inviteUC.HandleCancel(ctx, &interaction)

	default:
		ctxlog.From(ctx).Debug("Ignoring interaction with unknown callback",
			"callbackID", interaction.CallbackID,
		)
		return nil
	}
}
