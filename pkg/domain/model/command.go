package model

import (
	"strings"

	"github.com/openinvites/flamingo/pkg/domain/types"
)

// SlashCommand is the parsed form of a /flamingo invocation
type SlashCommand struct {
	TeamID    types.TeamID
	ChannelID types.ChannelID
	UserID    types.SlackUserID
	UserName  string
	Text      string
}

// WantsUsage reports whether the command should get the usage hint
// instead of creating an invite
func (c *SlashCommand) WantsUsage() bool {
	text := strings.TrimSpace(c.Text)
	return text == "" || strings.EqualFold(text, "help")
}

// Title returns the invite title taken from the command text
func (c *SlashCommand) Title() string {
	return strings.TrimSpace(c.Text)
}
