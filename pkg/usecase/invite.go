package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/domain/interfaces"
	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/openinvites/flamingo/pkg/domain/types"
	"github.com/openinvites/flamingo/pkg/service/emoji"
	"github.com/openinvites/flamingo/pkg/service/schedule"
	slackSvc "github.com/openinvites/flamingo/pkg/service/slack"
	"github.com/slack-go/slack"
)

const usageText = "To create an invitation, try formatting your message like this: \n" +
	"`/flamingo happy hour next week on wednesday 5-6pm`"

const calendarText = "You're in! Add it to your calendar."

// Invite implements InviteUseCase
type Invite struct {
	repo     interfaces.Repository
	gateways interfaces.GatewayFactory
	emoji    *emoji.Selector
	schedule *schedule.Parser
	now      func() time.Time
}

// NewInvite creates a new Invite use case
func NewInvite(repo interfaces.Repository, gateways interfaces.GatewayFactory, selector *emoji.Selector) InviteUseCase {
	return &Invite{
		repo:     repo,
		gateways: gateways,
		emoji:    selector,
		schedule: schedule.NewParser(),
		now:      time.Now,
	}
}

// HandleCommand processes a slash command. The HTTP ack has already been
// sent; everything here runs in the background.
func (u *Invite) HandleCommand(ctx context.Context, cmd *model.SlashCommand) error {
	gw, err := u.gateway(ctx, cmd.TeamID)
	if err != nil {
		return err
	}

	if cmd.WantsUsage() {
		_, err := gw.PostEphemeral(ctx, cmd.ChannelID.String(), cmd.UserID.String(),
			slack.MsgOptionText(usageText, false),
			slack.MsgOptionAsUser(true),
		)
		if err != nil {
			return goerr.Wrap(err, "failed to post usage message")
		}
		return nil
	}

	title := cmd.Title()
	attending := []types.SlackUserID{cmd.UserID}
	attachments := slackSvc.BuildInviteAttachments(title, attending, u.emoji.Select(title))

	_, ts, err := gw.PostMessage(ctx, cmd.ChannelID.String(),
		slack.MsgOptionAttachments(attachments...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post invite message")
	}

	invite := model.NewInvite(cmd.TeamID, cmd.ChannelID, types.MessageTS(ts), title, cmd.UserID)
	if err := u.repo.SaveInvite(ctx, invite); err != nil {
		return goerr.Wrap(err, "failed to save invite record",
			goerr.V("inviteID", invite.ID))
	}

	ctxlog.From(ctx).Info("Created invite",
		"inviteID", invite.ID,
		"title", title,
		"creator", cmd.UserID,
	)
	return nil
}

// HandleRSVP toggles the acting user's attendance and projects the new
// state onto the message
func (u *Invite) HandleRSVP(ctx context.Context, interaction *slack.InteractionCallback) error {
	teamID := types.TeamID(interaction.Team.ID)
	gw, err := u.gateway(ctx, teamID)
	if err != nil {
		return err
	}

	invite, err := u.resolveInvite(ctx, teamID, interaction)
	if err != nil {
		return err
	}

	userID := types.SlackUserID(interaction.User.ID)
	var joined bool
	invite, err = u.repo.UpdateInvite(ctx, invite.ID, func(inv *model.Invite) error {
		joined = inv.Toggle(userID)
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to toggle attendance",
			goerr.V("user", userID))
	}

	updated, err := slackSvc.UpdateInviteAttachments(interaction.OriginalMessage.Attachments, invite.Attending)
	if err != nil {
		return err
	}

	channelID := invite.ChannelID.String()
	if _, _, _, err := gw.UpdateMessage(ctx, channelID, invite.MessageTS.String(),
		slack.MsgOptionAttachments(updated...),
		slack.MsgOptionAsUser(true),
	); err != nil {
		return goerr.Wrap(err, "failed to update invite message",
			goerr.V("inviteID", invite.ID))
	}

	ctxlog.From(ctx).Info("Toggled RSVP",
		"inviteID", invite.ID,
		"user", userID,
		"joined", joined,
		"attending", len(invite.Attending),
	)

	if !joined {
		return nil
	}
	return u.sendCalendarLink(ctx, gw, invite, userID)
}

// HandleCancel deletes the invite message and record, then notifies the
// attendees. Notification failures are logged per recipient and do not
// stop the loop.
func (u *Invite) HandleCancel(ctx context.Context, interaction *slack.InteractionCallback) error {
	teamID := types.TeamID(interaction.Team.ID)
	gw, err := u.gateway(ctx, teamID)
	if err != nil {
		return err
	}

	invite, err := u.resolveInvite(ctx, teamID, interaction)
	if err != nil {
		return err
	}

	channelID := invite.ChannelID.String()
	if _, _, err := gw.DeleteMessage(ctx, channelID, invite.MessageTS.String()); err != nil {
		// A double cancel lands here; log and keep going so the record
		// is still cleaned up.
		ctxlog.From(ctx).Error("Failed to delete invite message",
			"error", err,
			"inviteID", invite.ID,
		)
	}

	if err := u.repo.DeleteInvite(ctx, invite.ID); err != nil {
		return goerr.Wrap(err, "failed to delete invite record",
			goerr.V("inviteID", invite.ID))
	}

	actor := types.SlackUserID(interaction.User.ID)
	notice := fmt.Sprintf(":no_entry_sign: %s cancelled *%s*.", actor.Mention(), invite.Title)
	for _, attendee := range invite.Attending {
		if attendee == actor {
			continue
		}
		if _, err := gw.PostEphemeral(ctx, channelID, attendee.String(),
			slack.MsgOptionText(notice, false),
			slack.MsgOptionAsUser(true),
		); err != nil {
			ctxlog.From(ctx).Error("Failed to notify attendee of cancellation",
				"error", err,
				"inviteID", invite.ID,
				"attendee", attendee,
			)
		}
	}

	ctxlog.From(ctx).Info("Cancelled invite",
		"inviteID", invite.ID,
		"actor", actor,
		"notified", len(invite.Attending),
	)
	return nil
}

// resolveInvite finds the invite record for an interaction. Messages
// rendered before records existed are recovered from the message text and
// persisted, so later interactions take the repository path.
func (u *Invite) resolveInvite(ctx context.Context, teamID types.TeamID, interaction *slack.InteractionCallback) (*model.Invite, error) {
	channelID := types.ChannelID(interaction.Channel.ID)
	ts := types.MessageTS(interaction.OriginalMessage.Timestamp)
	if ts == "" {
		ts = types.MessageTS(interaction.MessageTs)
	}

	id := types.NewInviteID(channelID, ts)
	invite, err := u.repo.GetInvite(ctx, id)
	if err == nil {
		return invite, nil
	}
	if !errors.Is(err, model.ErrInviteNotFound) {
		return nil, err
	}

	title, attending, err := slackSvc.DecodeInviteMessage(interaction.OriginalMessage.Attachments)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to recover legacy invite",
			goerr.V("inviteID", id))
	}

	creator := types.SlackUserID(interaction.User.ID)
	if len(attending) > 0 {
		creator = attending[0]
	}

	invite = &model.Invite{
		ID:        id,
		TeamID:    teamID,
		ChannelID: channelID,
		MessageTS: ts,
		Title:     title,
		CreatorID: creator,
		Attending: attending,
		CreatedAt: u.now(),
	}
	if err := u.repo.SaveInvite(ctx, invite); err != nil {
		return nil, goerr.Wrap(err, "failed to persist recovered invite",
			goerr.V("inviteID", id))
	}

	ctxlog.From(ctx).Info("Recovered legacy invite from message text",
		"inviteID", id,
		"title", title,
		"attending", len(attending),
	)
	return invite, nil
}

// sendCalendarLink posts the private calendar follow-up for a fresh RSVP.
// Titles without a parseable schedule get no calendar link.
func (u *Invite) sendCalendarLink(ctx context.Context, gw interfaces.SlackGateway, invite *model.Invite, userID types.SlackUserID) error {
	window, ok := u.schedule.Parse(invite.Title, u.now())
	if !ok {
		ctxlog.From(ctx).Debug("No schedule in invite title, skipping calendar link",
			"inviteID", invite.ID,
		)
		return nil
	}

	permalink, err := gw.GetPermalink(ctx, invite.ChannelID.String(), invite.MessageTS.String())
	if err != nil {
		return goerr.Wrap(err, "failed to fetch invite permalink",
			goerr.V("inviteID", invite.ID))
	}

	link := schedule.CalendarLink(invite.Title, window, permalink)
	if _, err := gw.PostEphemeral(ctx, invite.ChannelID.String(), userID.String(),
		slack.MsgOptionText(calendarText, false),
		slack.MsgOptionAttachments(slackSvc.BuildCalendarAttachments(link)...),
		slack.MsgOptionAsUser(true),
	); err != nil {
		return goerr.Wrap(err, "failed to post calendar message",
			goerr.V("inviteID", invite.ID))
	}
	return nil
}

// gateway resolves the workspace credential and builds its gateway
func (u *Invite) gateway(ctx context.Context, teamID types.TeamID) (interfaces.SlackGateway, error) {
	cred, err := u.repo.GetCredential(ctx, teamID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve workspace credential",
			goerr.V("teamID", teamID))
	}
	return u.gateways(cred.AccessToken), nil
}
