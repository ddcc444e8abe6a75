package model

import (
	"time"

	"github.com/openinvites/flamingo/pkg/domain/types"
)

// Credential holds the bot access token for one installed workspace.
// Written once when the OAuth handshake completes, read on every inbound
// request for that workspace. There is no TTL or rotation.
type Credential struct {
	TeamID      types.TeamID      `json:"team_id" firestore:"team_id"`
	TeamName    string            `json:"team_name" firestore:"team_name"`
	AccessToken string            `json:"access_token" firestore:"access_token"`
	BotUserID   types.SlackUserID `json:"bot_user_id" firestore:"bot_user_id"`
	InstalledAt time.Time         `json:"installed_at" firestore:"installed_at"`
}
