package slack_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/openinvites/flamingo/pkg/domain/types"
	slackSvc "github.com/openinvites/flamingo/pkg/service/slack"
)

func TestBuildInviteAttachments(t *testing.T) {
	attachments := slackSvc.BuildInviteAttachments("book club", []types.SlackUserID{"U1"}, ":books:")
	gt.A(t, attachments).Length(4)

	t.Run("Header carries the title", func(t *testing.T) {
		gt.Equal(t, "You're invited to:\n *book club*", attachments[0].Text)
	})

	t.Run("RSVP action shows the emoji", func(t *testing.T) {
		gt.Equal(t, slackSvc.CallbackRSVP, attachments[1].CallbackID)
		gt.A(t, attachments[1].Actions).Length(1)
		gt.Equal(t, ":books: I'll be there", attachments[1].Actions[0].Text)
		gt.Equal(t, "button", attachments[1].Actions[0].Type)
	})

	t.Run("Attendee section lists attendees", func(t *testing.T) {
		gt.Equal(t, "Attending", attachments[2].Title)
		gt.Equal(t, "<@U1>", attachments[2].Text)
	})

	t.Run("Footer carries the cancel control", func(t *testing.T) {
		gt.Equal(t, slackSvc.CallbackCancel, attachments[3].CallbackID)
		gt.A(t, attachments[3].Actions).Length(1)
		gt.Equal(t, "Cancel event", attachments[3].Actions[0].Text)
		gt.Equal(t, "danger", string(attachments[3].Actions[0].Style))
	})

	t.Run("All sections share the brand color", func(t *testing.T) {
		for _, a := range attachments {
			gt.Equal(t, "#6ECADC", a.Color)
		}
	})
}

func TestUpdateInviteAttachments(t *testing.T) {
	original := slackSvc.BuildInviteAttachments("soccer at noon", nil, ":soccer:")
	gt.Equal(t, placeholder, original[2].Text)

	updated, err := slackSvc.UpdateInviteAttachments(original, []types.SlackUserID{"U1", "U2"})
	gt.NoError(t, err).Required()
	gt.A(t, updated).Length(4)

	t.Run("Only the attendee section changes", func(t *testing.T) {
		gt.Equal(t, original[0], updated[0])
		gt.Equal(t, original[1], updated[1])
		gt.Equal(t, original[3], updated[3])
		gt.Equal(t, "<@U1> <@U2>", updated[2].Text)
	})

	t.Run("Original is left untouched", func(t *testing.T) {
		gt.Equal(t, placeholder, original[2].Text)
	})

	t.Run("Back to empty restores the placeholder", func(t *testing.T) {
		reverted, err := slackSvc.UpdateInviteAttachments(updated, nil)
		gt.NoError(t, err).Required()
		gt.Equal(t, placeholder, reverted[2].Text)
	})

	t.Run("Rejects non-invite messages", func(t *testing.T) {
		_, err := slackSvc.UpdateInviteAttachments(original[:1], nil)
		gt.Error(t, err)
	})
}

func TestBuildCalendarAttachments(t *testing.T) {
	link := "https://www.google.com/calendar/event?action=TEMPLATE"
	attachments := slackSvc.BuildCalendarAttachments(link)
	gt.A(t, attachments).Length(1)
	gt.A(t, attachments[0].Actions).Length(1)
	gt.Equal(t, link, attachments[0].Actions[0].URL)
	gt.Equal(t, "Add to calendar", attachments[0].Actions[0].Text)
}
