package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/m-mizutani/ctxlog"
	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/openinvites/flamingo/pkg/domain/types"
	"github.com/openinvites/flamingo/pkg/utils/async"
)

// HandleCommand handles the /flamingo slash command. The acknowledgment
// is written synchronously before any side effect; the invite itself is
// created in the background.
func (h *Handler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.From(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read slash command body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Verify before any side effect; a failed check looks like a
	// missing endpoint to the caller.
	if err := h.verifySignature(r, body); err != nil {
		logger.Warn("Invalid Slack signature for slash command", "error", err)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		logger.Error("Failed to parse slash command form", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cmd := &model.SlashCommand{
		TeamID:    types.TeamID(form.Get("team_id")),
		ChannelID: types.ChannelID(form.Get("channel_id")),
		UserID:    types.SlackUserID(form.Get("user_id")),
		UserName:  form.Get("user_name"),
		Text:      form.Get("text"),
	}

	// The in-channel ack goes out only when an invite will be created;
	// the usage path answers with an empty body and an ephemeral hint.
	if cmd.WantsUsage() {
		w.WriteHeader(http.StatusOK)
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(map[string]string{
			"response_type": "in_channel",
		}); err != nil {
			logger.Error("Failed to write slash command ack", "error", err)
		}
	}

	async.Dispatch(r.Context(), func(ctx context.Context) error {
		return h.inviteUC.HandleCommand(ctx, cmd)
	})
}
