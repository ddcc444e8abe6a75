package model

import (
	"time"

	"github.com/openinvites/flamingo/pkg/domain/types"
)

// Invite is the event record behind an invitation message. The rendered
// Slack message is a projection of this record; the record is the source
// of truth for attendance.
type Invite struct {
	ID        types.InviteID      `json:"id" firestore:"id"`
	TeamID    types.TeamID        `json:"team_id" firestore:"team_id"`
	ChannelID types.ChannelID     `json:"channel_id" firestore:"channel_id"`
	MessageTS types.MessageTS     `json:"message_ts" firestore:"message_ts"`
	Title     string              `json:"title" firestore:"title"`
	CreatorID types.SlackUserID   `json:"creator_id" firestore:"creator_id"`
	Attending []types.SlackUserID `json:"attending" firestore:"attending"`
	CreatedAt time.Time           `json:"created_at" firestore:"created_at"`
}

// NewInvite creates an invite record for a freshly posted message. The
// creator is the first attendee.
func NewInvite(teamID types.TeamID, channelID types.ChannelID, ts types.MessageTS, title string, creatorID types.SlackUserID) *Invite {
	return &Invite{
		ID:        types.NewInviteID(channelID, ts),
		TeamID:    teamID,
		ChannelID: channelID,
		MessageTS: ts,
		Title:     title,
		CreatorID: creatorID,
		Attending: []types.SlackUserID{creatorID},
		CreatedAt: time.Now(),
	}
}

// IsAttending reports whether the user is currently on the attendee list
func (i *Invite) IsAttending(userID types.SlackUserID) bool {
	for _, id := range i.Attending {
		if id == userID {
			return true
		}
	}
	return false
}

// Toggle flips the user's attendance. Removal preserves the order of the
// remaining attendees; addition appends. Returns true when the user was
// added (a fresh RSVP), false when removed.
func (i *Invite) Toggle(userID types.SlackUserID) bool {
	for idx, id := range i.Attending {
		if id == userID {
			i.Attending = append(i.Attending[:idx], i.Attending[idx+1:]...)
			return false
		}
	}
	i.Attending = append(i.Attending, userID)
	return true
}
