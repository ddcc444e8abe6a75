package types

import (
	"fmt"
	"strings"
)

// TeamID represents a Slack workspace (team) identifier
type TeamID string

// String returns the string representation
func (id TeamID) String() string {
	return string(id)
}

// SlackUserID represents a Slack user identifier
type SlackUserID string

// String returns the string representation
func (id SlackUserID) String() string {
	return string(id)
}

// Mention returns the mention token form used inside message text
func (id SlackUserID) Mention() string {
	return fmt.Sprintf("<@%s>", string(id))
}

// ChannelID represents a Slack channel identifier
type ChannelID string

// String returns the string representation
func (id ChannelID) String() string {
	return string(id)
}

// MessageTS represents a Slack message timestamp
type MessageTS string

// String returns the string representation
func (ts MessageTS) String() string {
	return string(ts)
}

// InviteID identifies an invite by the message that carries it. The ID is
// stable across message updates because Slack keeps the timestamp of an
// updated message.
type InviteID string

// NewInviteID derives an invite ID from the channel and message timestamp
func NewInviteID(channelID ChannelID, ts MessageTS) InviteID {
	return InviteID(fmt.Sprintf("%s:%s", channelID, ts))
}

// String returns the string representation
func (id InviteID) String() string {
	return string(id)
}

// Split returns the channel ID and message timestamp the invite ID was
// derived from. Returns empty values for malformed IDs.
func (id InviteID) Split() (ChannelID, MessageTS) {
	parts := strings.SplitN(string(id), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return ChannelID(parts[0]), MessageTS(parts[1])
}

// ParseMention extracts the user ID from a mention token such as "<@U123>".
// Returns an empty ID when the token is not a mention.
func ParseMention(token string) SlackUserID {
	if strings.HasPrefix(token, "<@") && strings.HasSuffix(token, ">") {
		return SlackUserID(token[2 : len(token)-1])
	}
	return ""
}
