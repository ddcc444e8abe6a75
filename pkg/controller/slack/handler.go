package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/cli/config"
	"github.com/openinvites/flamingo/pkg/usecase"
)

// Handler handles Slack webhook endpoints
type Handler struct {
	slackConfig *config.Slack
	inviteUC    usecase.InviteUseCase
}

// NewHandler creates a new Slack handler
func NewHandler(slackConfig *config.Slack, inviteUC usecase.InviteUseCase) *Handler {
	return &Handler{
		slackConfig: slackConfig,
		inviteUC:    inviteUC,
	}
}

// verifySignature verifies the Slack request signature over the raw body
func (h *Handler) verifySignature(r *http.Request, body []byte) error {
	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	if timestamp == "" {
		return goerr.New("missing timestamp header")
	}

	// Reject stale timestamps to prevent replay attacks (5 minute window)
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}
	if abs(time.Now().Unix()-ts) > 60*5 {
		return goerr.New("timestamp too old")
	}

	signature := r.Header.Get("X-Slack-Signature")
	if signature == "" {
		return goerr.New("missing signature header")
	}

	baseString := fmt.Sprintf("v0:%s:%s", timestamp, string(body))
	mac := hmac.New(sha256.New, []byte(h.slackConfig.SigningSecret))
	mac.Write([]byte(baseString))
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// abs returns the absolute value of an int64
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
