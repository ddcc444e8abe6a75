package usecase

import (
	"context"

	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/slack-go/slack"
)

// InviteUseCase defines the interface for invite operations
type InviteUseCase interface {
	// HandleCommand processes a /flamingo slash command: either the usage
	// hint or a new invite
	HandleCommand(ctx context.Context, cmd *model.SlashCommand) error

	// HandleRSVP toggles the acting user's attendance on an invite
	HandleRSVP(ctx context.Context, interaction *slack.InteractionCallback) error

	// HandleCancel deletes an invite and notifies its attendees
	HandleCancel(ctx context.Context, interaction *slack.InteractionCallback) error
}

// OAuthUseCase defines the interface for workspace installation
type OAuthUseCase interface {
	// ExchangeCode trades an OAuth code for a bot token and persists the
	// workspace credential
	ExchangeCode(ctx context.Context, code string) (*model.Credential, error)
}
