package interfaces

import (
	"context"

	"github.com/slack-go/slack"
)

// SlackGateway wraps the chat API calls the bot performs against one
// workspace. Implementations carry that workspace's bot token.
type SlackGateway interface {
	PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UpdateMessage(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
	DeleteMessage(ctx context.Context, channelID, timestamp string) (string, string, error)
	PostEphemeral(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error)
	GetPermalink(ctx context.Context, channelID, timestamp string) (string, error)
}

// GatewayFactory builds a gateway for a workspace token. Tokens are
// resolved per request from the credential store.
type GatewayFactory func(token string) SlackGateway
