package slack

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Legacy message-text encodings. Messages rendered before invite records
// existed carry their whole state inside the attachment texts; these
// codecs recover it. The constants must stay in lockstep with the
// renderer or the round trip breaks.
const (
	headerPrefix       = "You're invited to:\n *"
	headerSuffix       = "*"
	emptyAttendeesText = ":see_no_evil: _No one is attending yet._"
)

// EncodeAttendees renders the attendee list as the canonical message text:
// space-joined mention tokens, or the fixed placeholder when empty.
func EncodeAttendees(attending []types.SlackUserID) string {
	if len(attending) == 0 {
		return emptyAttendeesText
	}
	tokens := make([]string, 0, len(attending))
	for _, id := range attending {
		tokens = append(tokens, id.Mention())
	}
	return strings.Join(tokens, " ")
}

// DecodeAttendees parses the attendee text back into an ordered user list.
// The placeholder decodes to an empty list.
func DecodeAttendees(text string) []types.SlackUserID {
	if text == "" || text == emptyAttendeesText {
		return nil
	}
	var attending []types.SlackUserID
	for _, token := range strings.Split(text, " ") {
		if id := types.ParseMention(token); id != "" {
			attending = append(attending, id)
		}
	}
	return attending
}

// TitleFromHeader recovers the invite title from the rendered header text
// by slicing off the fixed prefix and the trailing asterisk.
func TitleFromHeader(text string) (string, bool) {
	if !strings.HasPrefix(text, headerPrefix) || !strings.HasSuffix(text, headerSuffix) {
		return "", false
	}
	body := text[len(headerPrefix) : len(text)-len(headerSuffix)]
	if body == "" {
		return "", false
	}
	return body, true
}

// DecodeInviteMessage recovers the title and attendee list from a rendered
// invite message's attachments. Used as the fallback when no invite record
// exists for the message.
func DecodeInviteMessage(attachments []slack.Attachment) (string, []types.SlackUserID, error) {
	if len(attachments) < inviteAttachmentCount {
		return "", nil, goerr.New("message is not an invite",
			goerr.V("attachments", len(attachments)))
	}

	title, ok := TitleFromHeader(attachments[headerIndex].Text)
	if !ok {
		return "", nil, goerr.New("unrecognized invite header",
			goerr.V("text", attachments[headerIndex].Text))
	}

	return title, DecodeAttendees(attachments[attendeesIndex].Text), nil
}
