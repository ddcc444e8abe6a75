package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/domain/interfaces"
	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/openinvites/flamingo/pkg/domain/types"
	"github.com/slack-go/slack"
)

// exchangeFunc trades an OAuth code for a token response
type exchangeFunc func(ctx context.Context, clientID, clientSecret, code string) (*slack.OAuthV2Response, error)

// OAuth implements OAuthUseCase
type OAuth struct {
	repo         interfaces.Repository
	clientID     string
	clientSecret string
	exchange     exchangeFunc
}

// NewOAuth creates a new OAuth use case
func NewOAuth(repo interfaces.Repository, clientID, clientSecret string) *OAuth {
	return &OAuth{
		repo:         repo,
		clientID:     clientID,
		clientSecret: clientSecret,
		exchange:     slackExchange,
	}
}

// ExchangeCode trades the code for a bot token and persists the workspace
// credential keyed by team ID
func (o *OAuth) ExchangeCode(ctx context.Context, code string) (*model.Credential, error) {
	if code == "" {
		return nil, goerr.New("authorization code is required")
	}
	if o.clientID == "" || o.clientSecret == "" {
		return nil, goerr.New("OAuth client is not configured")
	}

	resp, err := o.exchange(ctx, o.clientID, o.clientSecret, code)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to exchange authorization code")
	}

	cred := &model.Credential{
		TeamID:      types.TeamID(resp.Team.ID),
		TeamName:    resp.Team.Name,
		AccessToken: resp.AccessToken,
		BotUserID:   types.SlackUserID(resp.BotUserID),
		InstalledAt: time.Now(),
	}
	if err := o.repo.SaveCredential(ctx, cred); err != nil {
		return nil, goerr.Wrap(err, "failed to save workspace credential",
			goerr.V("teamID", cred.TeamID))
	}

	ctxlog.From(ctx).Info("Installed workspace",
		"teamID", cred.TeamID,
		"teamName", cred.TeamName,
	)
	return cred, nil
}

func slackExchange(ctx context.Context, clientID, clientSecret, code string) (*slack.OAuthV2Response, error) {
	return slack.GetOAuthV2ResponseContext(ctx, &http.Client{}, clientID, clientSecret, code, "")
}
