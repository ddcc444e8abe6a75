package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/openinvites/flamingo/pkg/domain/interfaces"
	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/openinvites/flamingo/pkg/domain/types"
	"github.com/openinvites/flamingo/pkg/repository"
	"github.com/openinvites/flamingo/pkg/service/emoji"
	slackSvc "github.com/openinvites/flamingo/pkg/service/slack"
	"github.com/openinvites/flamingo/pkg/usecase"
	slackgo "github.com/slack-go/slack"
)

type postedMessage struct {
	channelID string
	userID    string
}

// fakeGateway records chat API calls instead of hitting Slack
type fakeGateway struct {
	mu         sync.Mutex
	token      string
	nextTS     int
	posted     []postedMessage
	updated    []string
	deleted    []string
	ephemerals []postedMessage
	deleteErr  error
}

func (g *fakeGateway) PostMessage(ctx context.Context, channelID string, options ...slackgo.MsgOption) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextTS++
	g.posted = append(g.posted, postedMessage{channelID: channelID})
	return channelID, fmt.Sprintf("1700000000.%06d", g.nextTS), nil
}

func (g *fakeGateway) UpdateMessage(ctx context.Context, channelID, timestamp string, options ...slackgo.MsgOption) (string, string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updated = append(g.updated, timestamp)
	return channelID, timestamp, "", nil
}

func (g *fakeGateway) DeleteMessage(ctx context.Context, channelID, timestamp string) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, timestamp)
	return channelID, timestamp, g.deleteErr
}

func (g *fakeGateway) PostEphemeral(ctx context.Context, channelID, userID string, options ...slackgo.MsgOption) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ephemerals = append(g.ephemerals, postedMessage{channelID: channelID, userID: userID})
	return "", nil
}

func (g *fakeGateway) GetPermalink(ctx context.Context, channelID, timestamp string) (string, error) {
	return fmt.Sprintf("https://example.slack.com/archives/%s/p%s", channelID, timestamp), nil
}

func setupInvite(t *testing.T) (usecase.InviteUseCase, interfaces.Repository, *fakeGateway) {
	repo := repository.NewMemory()
	gw := &fakeGateway{}
	factory := func(token string) interfaces.SlackGateway {
		gw.token = token
		return gw
	}

	cred := &model.Credential{
		TeamID:      "T12345",
		TeamName:    "Testing Team",
		AccessToken: "xoxb-test",
		BotUserID:   "U0BOT",
	}
	gt.NoError(t, repo.SaveCredential(context.Background(), cred)).Required()

	return usecase.NewInvite(repo, factory, emoji.New(nil)), repo, gw
}

func newRSVPInteraction(userID string, message slackgo.Message) *slackgo.InteractionCallback {
	return &slackgo.InteractionCallback{
		CallbackID: slackSvc.CallbackRSVP,
		User: slackgo.User{
			ID: userID,
		},
		Team: slackgo.Team{
			ID: "T12345",
		},
		Channel: slackgo.Channel{
			GroupConversation: slackgo.GroupConversation{
				Conversation: slackgo.Conversation{
					ID: "C12345",
				},
			},
		},
		OriginalMessage: message,
	}
}

func inviteMessage(ts, title string, attending []types.SlackUserID) slackgo.Message {
	return slackgo.Message{
		Msg: slackgo.Msg{
			Timestamp:   ts,
			Attachments: slackSvc.BuildInviteAttachments(title, attending, ":tada:"),
		},
	}
}

func TestHandleCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty text posts usage hint", func(t *testing.T) {
		uc, _, gw := setupInvite(t)

		cmd := &model.SlashCommand{TeamID: "T12345", ChannelID: "C12345", UserID: "U1"}
		gt.NoError(t, uc.HandleCommand(ctx, cmd)).Required()

		gt.A(t, gw.posted).Length(0)
		gt.A(t, gw.ephemerals).Length(1)
		gt.Equal(t, "U1", gw.ephemerals[0].userID)
	})

	t.Run("Help text posts usage hint", func(t *testing.T) {
		uc, _, gw := setupInvite(t)

		cmd := &model.SlashCommand{TeamID: "T12345", ChannelID: "C12345", UserID: "U1", Text: "help"}
		gt.NoError(t, uc.HandleCommand(ctx, cmd)).Required()

		gt.A(t, gw.posted).Length(0)
		gt.A(t, gw.ephemerals).Length(1)
	})

	t.Run("Invite text posts message and saves record", func(t *testing.T) {
		uc, repo, gw := setupInvite(t)

		cmd := &model.SlashCommand{
			TeamID:    "T12345",
			ChannelID: "C12345",
			UserID:    "U1",
			Text:      "happy hour next week on wednesday 5-6pm",
		}
		gt.NoError(t, uc.HandleCommand(ctx, cmd)).Required()
		gt.A(t, gw.posted).Length(1)
		gt.Equal(t, "C12345", gw.posted[0].channelID)
		gt.Equal(t, "xoxb-test", gw.token)

		id := types.NewInviteID("C12345", "1700000000.000001")
		invite, err := repo.GetInvite(ctx, id)
		gt.NoError(t, err).Required()
		gt.Equal(t, "happy hour next week on wednesday 5-6pm", invite.Title)
		gt.Equal(t, types.SlackUserID("U1"), invite.CreatorID)
		gt.Equal(t, []types.SlackUserID{"U1"}, invite.Attending)
	})

	t.Run("Unknown workspace fails", func(t *testing.T) {
		uc, _, _ := setupInvite(t)

		cmd := &model.SlashCommand{TeamID: "TUNKNOWN", ChannelID: "C12345", UserID: "U1", Text: "lunch"}
		err := uc.HandleCommand(ctx, cmd)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrCredentialNotFound))
	})
}

func TestHandleRSVP(t *testing.T) {
	ctx := context.Background()

	createInvite := func(t *testing.T, uc usecase.InviteUseCase, title string) types.MessageTS {
		cmd := &model.SlashCommand{TeamID: "T12345", ChannelID: "C12345", UserID: "U1", Text: title}
		gt.NoError(t, uc.HandleCommand(ctx, cmd)).Required()
		return "1700000000.000001"
	}

	t.Run("New attendee joins and gets calendar link", func(t *testing.T) {
		uc, repo, gw := setupInvite(t)
		ts := createInvite(t, uc, "soccer tomorrow at 5pm")

		interaction := newRSVPInteraction("U2",
			inviteMessage(ts.String(), "soccer tomorrow at 5pm", []types.SlackUserID{"U1"}))
		gt.NoError(t, uc.HandleRSVP(ctx, interaction)).Required()

		invite, err := repo.GetInvite(ctx, types.NewInviteID("C12345", ts))
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.SlackUserID{"U1", "U2"}, invite.Attending)

		gt.A(t, gw.updated).Length(1)
		// The calendar follow-up is ephemeral to the joiner
		gt.A(t, gw.ephemerals).Length(1)
		gt.Equal(t, "U2", gw.ephemerals[0].userID)
	})

	t.Run("Second click reverts without calendar link", func(t *testing.T) {
		uc, repo, gw := setupInvite(t)
		ts := createInvite(t, uc, "soccer tomorrow at 5pm")

		message := inviteMessage(ts.String(), "soccer tomorrow at 5pm", []types.SlackUserID{"U1"})
		gt.NoError(t, uc.HandleRSVP(ctx, newRSVPInteraction("U2", message))).Required()
		gt.NoError(t, uc.HandleRSVP(ctx, newRSVPInteraction("U2", message))).Required()

		invite, err := repo.GetInvite(ctx, types.NewInviteID("C12345", ts))
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.SlackUserID{"U1"}, invite.Attending)

		gt.A(t, gw.updated).Length(2)
		gt.A(t, gw.ephemerals).Length(1)
	})

	t.Run("Removal preserves the order of the rest", func(t *testing.T) {
		uc, repo, gw := setupInvite(t)
		ts := createInvite(t, uc, "book club")

		message := inviteMessage(ts.String(), "book club", []types.SlackUserID{"U1"})
		gt.NoError(t, uc.HandleRSVP(ctx, newRSVPInteraction("U2", message))).Required()
		gt.NoError(t, uc.HandleRSVP(ctx, newRSVPInteraction("U3", message))).Required()
		gt.NoError(t, uc.HandleRSVP(ctx, newRSVPInteraction("U2", message))).Required()

		invite, err := repo.GetInvite(ctx, types.NewInviteID("C12345", ts))
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.SlackUserID{"U1", "U3"}, invite.Attending)

		// "book club" carries no date, so no calendar follow-ups at all
		gt.A(t, gw.ephemerals).Length(0)
	})

	t.Run("Creator can leave their own invite", func(t *testing.T) {
		uc, repo, _ := setupInvite(t)
		ts := createInvite(t, uc, "book club")

		message := inviteMessage(ts.String(), "book club", []types.SlackUserID{"U1"})
		gt.NoError(t, uc.HandleRSVP(ctx, newRSVPInteraction("U1", message))).Required()

		invite, err := repo.GetInvite(ctx, types.NewInviteID("C12345", ts))
		gt.NoError(t, err).Required()
		gt.A(t, invite.Attending).Length(0)
	})

	t.Run("Legacy message without record is recovered", func(t *testing.T) {
		uc, repo, gw := setupInvite(t)

		// No record saved: the message text is the only state
		message := inviteMessage("1699999999.000042", "coffee break", []types.SlackUserID{"U5", "U6"})
		gt.NoError(t, uc.HandleRSVP(ctx, newRSVPInteraction("U7", message))).Required()

		invite, err := repo.GetInvite(ctx, types.NewInviteID("C12345", "1699999999.000042"))
		gt.NoError(t, err).Required()
		gt.Equal(t, "coffee break", invite.Title)
		gt.Equal(t, types.SlackUserID("U5"), invite.CreatorID)
		gt.Equal(t, []types.SlackUserID{"U5", "U6", "U7"}, invite.Attending)
		gt.A(t, gw.updated).Length(1)
	})

	t.Run("Non-invite message fails", func(t *testing.T) {
		uc, _, _ := setupInvite(t)

		message := slackgo.Message{
			Msg: slackgo.Msg{
				Timestamp: "1699999999.000043",
				Text:      "just a normal message",
			},
		}
		gt.Error(t, uc.HandleRSVP(ctx, newRSVPInteraction("U2", message)))
	})
}

func TestHandleCancel(t *testing.T) {
	ctx := context.Background()

	cancelInteraction := func(userID string, message slackgo.Message) *slackgo.InteractionCallback {
		interaction := newRSVPInteraction(userID, message)
		interaction.CallbackID = slackSvc.CallbackCancel
		return interaction
	}

	t.Run("Deletes message and record, notifies other attendees", func(t *testing.T) {
		uc, repo, gw := setupInvite(t)

		cmd := &model.SlashCommand{TeamID: "T12345", ChannelID: "C12345", UserID: "U1", Text: "pizza night"}
		gt.NoError(t, uc.HandleCommand(ctx, cmd)).Required()
		ts := types.MessageTS("1700000000.000001")

		message := inviteMessage(ts.String(), "pizza night", []types.SlackUserID{"U1"})
		gt.NoError(t, uc.HandleRSVP(ctx, newRSVPInteraction("U2", message))).Required()
		gt.NoError(t, uc.HandleRSVP(ctx, newRSVPInteraction("U3", message))).Required()

		gt.NoError(t, uc.HandleCancel(ctx, cancelInteraction("U1", message))).Required()

		gt.A(t, gw.deleted).Length(1)
		gt.Equal(t, ts.String(), gw.deleted[0])

		_, err := repo.GetInvite(ctx, types.NewInviteID("C12345", ts))
		gt.True(t, errors.Is(err, model.ErrInviteNotFound))

		// U2 and U3 are notified; the cancelling creator is not
		gt.A(t, gw.ephemerals).Length(2)
		gt.Equal(t, "U2", gw.ephemerals[0].userID)
		gt.Equal(t, "U3", gw.ephemerals[1].userID)
	})

	t.Run("Record cleanup survives a failed message delete", func(t *testing.T) {
		uc, repo, gw := setupInvite(t)

		cmd := &model.SlashCommand{TeamID: "T12345", ChannelID: "C12345", UserID: "U1", Text: "pizza night"}
		gt.NoError(t, uc.HandleCommand(ctx, cmd)).Required()
		ts := types.MessageTS("1700000000.000001")

		gw.deleteErr = errors.New("message_not_found")
		message := inviteMessage(ts.String(), "pizza night", []types.SlackUserID{"U1"})
		gt.NoError(t, uc.HandleCancel(ctx, cancelInteraction("U1", message))).Required()

		_, err := repo.GetInvite(ctx, types.NewInviteID("C12345", ts))
		gt.True(t, errors.Is(err, model.ErrInviteNotFound))
	})
}

func TestConcurrentRSVP(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := setupInvite(t)

	cmd := &model.SlashCommand{TeamID: "T12345", ChannelID: "C12345", UserID: "U1", Text: "team offsite"}
	gt.NoError(t, uc.HandleCommand(ctx, cmd)).Required()
	ts := types.MessageTS("1700000000.000001")

	message := inviteMessage(ts.String(), "team offsite", []types.SlackUserID{"U1"})

	const workers = 8
	var wg sync.WaitGroup
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("UW%03d", n)
			gt.NoError(t, uc.HandleRSVP(ctx, newRSVPInteraction(userID, message)))
		}(n)
	}
	wg.Wait()

	// No RSVP may be lost to a concurrent toggle
	invite, err := repo.GetInvite(ctx, types.NewInviteID("C12345", ts))
	gt.NoError(t, err).Required()
	gt.A(t, invite.Attending).Length(workers + 1)
	gt.True(t, invite.IsAttending("U1"))
}
