package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/domain/interfaces"
	"github.com/slack-go/slack"
)

// Service provides Slack messaging capabilities for one workspace
type Service struct {
	client *slack.Client
}

// New creates a new Slack service bound to a workspace token
func New(token string) *Service {
	return &Service{
		client: slack.New(token),
	}
}

// NewGateway is an interfaces.GatewayFactory
func NewGateway(token string) interfaces.SlackGateway {
	return New(token)
}

// PostMessage sends a message to a Slack channel
func (s *Service) PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	channel, timestamp, err := s.client.PostMessageContext(ctx, channelID, options...)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to post message to Slack")
	}
	return channel, timestamp, nil
}

// UpdateMessage updates an existing Slack message
func (s *Service) UpdateMessage(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error) {
	channel, ts, text, err := s.client.UpdateMessageContext(ctx, channelID, timestamp, options...)
	if err != nil {
		return "", "", "", goerr.Wrap(err, "failed to update message",
			goerr.V("channelID", channelID),
			goerr.V("timestamp", timestamp))
	}
	return channel, ts, text, nil
}

// DeleteMessage deletes a Slack message
func (s *Service) DeleteMessage(ctx context.Context, channelID, timestamp string) (string, string, error) {
	channel, ts, err := s.client.DeleteMessageContext(ctx, channelID, timestamp)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to delete message",
			goerr.V("channelID", channelID),
			goerr.V("timestamp", timestamp))
	}
	return channel, ts, nil
}

// PostEphemeral sends an ephemeral message visible only to the specified user
func (s *Service) PostEphemeral(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error) {
	timestamp, err := s.client.PostEphemeralContext(ctx, channelID, userID, options...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post ephemeral message")
	}
	return timestamp, nil
}

// GetPermalink fetches the permalink of a posted message
func (s *Service) GetPermalink(ctx context.Context, channelID, timestamp string) (string, error) {
	link, err := s.client.GetPermalinkContext(ctx, &slack.PermalinkParameters{
		Channel: channelID,
		Ts:      timestamp,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to get permalink")
	}
	return link, nil
}

// GetClient returns the underlying Slack client for advanced operations
func (s *Service) GetClient() *slack.Client {
	return s.client
}
