package slack

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Correlation identifiers routing interaction callbacks to their handlers
const (
	CallbackRSVP   = "event_rsvp"
	CallbackCancel = "cancel_event"
)

const (
	messageColor = "#6ECADC"
	feedbackLink = "https://goo.gl/forms/IY9t25qqNWYLgW9u2"
	footerIcon   = "https://avatars.slack-edge.com/2018-12-11/502563278519_39d786b2bb6ef9fbab5a_96.png"
)

// Invite message section layout. The update operation depends on these
// positions staying fixed.
const (
	headerIndex           = 0
	actionIndex           = 1
	attendeesIndex        = 2
	footerIndex           = 3
	inviteAttachmentCount = 4
)

// BuildInviteAttachments renders the four-section invite body: header,
// RSVP action, attendee list, footer with the cancel control.
func BuildInviteAttachments(title string, attending []types.SlackUserID, emoji string) []slack.Attachment {
	return []slack.Attachment{
		{
			Text:  headerPrefix + title + headerSuffix,
			Color: messageColor,
		},
		{
			Fallback:   "You are unable to RSVP.",
			Color:      messageColor,
			CallbackID: CallbackRSVP,
			Actions: []slack.AttachmentAction{
				{
					Name:  "yes",
					Type:  "button",
					Text:  fmt.Sprintf("%s I'll be there", emoji),
					Value: "yes",
				},
			},
		},
		buildAttendeesAttachment(attending),
		{
			Text:       "",
			Color:      messageColor,
			Footer:     fmt.Sprintf("Flamingo   <%s|Feedback>", feedbackLink),
			FooterIcon: footerIcon,
			CallbackID: CallbackCancel,
			Actions: []slack.AttachmentAction{
				{
					Name:  "cancel",
					Type:  "button",
					Text:  "Cancel event",
					Value: "cancel",
					Style: "danger",
				},
			},
		},
	}
}

// UpdateInviteAttachments replaces only the attendee section of a
// previously rendered invite, carrying the other sections over untouched.
// The header embeds the original title, so it must never be re-rendered.
func UpdateInviteAttachments(original []slack.Attachment, attending []types.SlackUserID) ([]slack.Attachment, error) {
	if len(original) < inviteAttachmentCount {
		return nil, goerr.New("message is not an invite",
			goerr.V("attachments", len(original)))
	}

	updated := make([]slack.Attachment, inviteAttachmentCount)
	copy(updated, original[:inviteAttachmentCount])
	updated[attendeesIndex] = buildAttendeesAttachment(attending)
	return updated, nil
}

// BuildCalendarAttachments renders the ephemeral "add to calendar" body
func BuildCalendarAttachments(calendarLink string) []slack.Attachment {
	return []slack.Attachment{
		{
			Fallback: calendarLink,
			Color:    messageColor,
			Actions: []slack.AttachmentAction{
				{
					Type: "button",
					Text: "Add to calendar",
					URL:  calendarLink,
				},
			},
		},
	}
}

func buildAttendeesAttachment(attending []types.SlackUserID) slack.Attachment {
	return slack.Attachment{
		Fallback: "No one is attending at the moment.",
		Color:    messageColor,
		Title:    "Attending",
		Text:     EncodeAttendees(attending),
	}
}
