package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/openinvites/flamingo/pkg/domain/types"
)

func TestNewInvite(t *testing.T) {
	invite := model.NewInvite("T12345", "C12345", "1700000000.000001", "pizza night", "U1")

	gt.Equal(t, types.InviteID("C12345:1700000000.000001"), invite.ID)
	gt.Equal(t, "pizza night", invite.Title)
	gt.Equal(t, types.SlackUserID("U1"), invite.CreatorID)
	// The creator starts as the first attendee
	gt.Equal(t, []types.SlackUserID{"U1"}, invite.Attending)
	gt.False(t, invite.CreatedAt.IsZero())
}

func TestToggle(t *testing.T) {
	t.Run("Addition appends", func(t *testing.T) {
		invite := model.NewInvite("T12345", "C12345", "1700000000.000001", "lunch", "U1")

		gt.True(t, invite.Toggle("U2"))
		gt.True(t, invite.Toggle("U3"))
		gt.Equal(t, []types.SlackUserID{"U1", "U2", "U3"}, invite.Attending)
	})

	t.Run("Removal preserves order", func(t *testing.T) {
		invite := model.NewInvite("T12345", "C12345", "1700000000.000001", "lunch", "U1")
		invite.Toggle("U2")
		invite.Toggle("U3")

		gt.False(t, invite.Toggle("U2"))
		gt.Equal(t, []types.SlackUserID{"U1", "U3"}, invite.Attending)
	})

	t.Run("Double toggle restores the original list", func(t *testing.T) {
		invite := model.NewInvite("T12345", "C12345", "1700000000.000001", "lunch", "U1")
		invite.Toggle("U2")

		before := append([]types.SlackUserID(nil), invite.Attending...)
		invite.Toggle("U3")
		invite.Toggle("U3")
		gt.Equal(t, before, invite.Attending)
	})

	t.Run("IsAttending follows toggles", func(t *testing.T) {
		invite := model.NewInvite("T12345", "C12345", "1700000000.000001", "lunch", "U1")

		gt.True(t, invite.IsAttending("U1"))
		gt.False(t, invite.IsAttending("U2"))

		invite.Toggle("U2")
		gt.True(t, invite.IsAttending("U2"))

		invite.Toggle("U2")
		gt.False(t, invite.IsAttending("U2"))
	})
}

func TestSlashCommand(t *testing.T) {
	t.Run("WantsUsage", func(t *testing.T) {
		cases := map[string]bool{
			"":               true,
			"   ":            true,
			"help":           true,
			"HELP":           true,
			" help ":         true,
			"helping hands":  false,
			"lunch tomorrow": false,
			"happy hour 5pm": false,
		}
		for text, want := range cases {
			cmd := &model.SlashCommand{Text: text}
			gt.Equal(t, want, cmd.WantsUsage())
		}
	})

	t.Run("Title trims whitespace", func(t *testing.T) {
		cmd := &model.SlashCommand{Text: "  pizza night  "}
		gt.Equal(t, "pizza night", cmd.Title())
	})
}

func TestEmojiConfigValidate(t *testing.T) {
	t.Run("Default config is valid", func(t *testing.T) {
		gt.NoError(t, model.DefaultEmojiConfig().Validate())
	})

	t.Run("Missing default emoji", func(t *testing.T) {
		config := &model.EmojiConfig{}
		gt.Error(t, config.Validate())
	})

	t.Run("Empty keyword", func(t *testing.T) {
		config := &model.EmojiConfig{
			Default:  ":tada:",
			Keywords: []model.EmojiKeyword{{Keyword: "", Emoji: ":pizza:"}},
		}
		gt.Error(t, config.Validate())
	})

	t.Run("Keyword without emoji", func(t *testing.T) {
		config := &model.EmojiConfig{
			Default:  ":tada:",
			Keywords: []model.EmojiKeyword{{Keyword: "pizza", Emoji: ""}},
		}
		gt.Error(t, config.Validate())
	})

	t.Run("Duplicate keyword", func(t *testing.T) {
		config := &model.EmojiConfig{
			Default: ":tada:",
			Keywords: []model.EmojiKeyword{
				{Keyword: "pizza", Emoji: ":pizza:"},
				{Keyword: "pizza", Emoji: ":cookie:"},
			},
		}
		gt.Error(t, config.Validate())
	})
}
