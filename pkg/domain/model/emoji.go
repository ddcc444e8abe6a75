package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// EmojiKeyword maps one title keyword to an emoji token
type EmojiKeyword struct {
	Keyword string `yaml:"keyword"`
	Emoji   string `yaml:"emoji"`
}

// EmojiConfig is the keyword table used to decorate invites. Order is
// significant: the first keyword found in a title wins.
type EmojiConfig struct {
	Default  string         `yaml:"default"`
	Keywords []EmojiKeyword `yaml:"keywords"`
}

// Validate validates the emoji configuration
func (c *EmojiConfig) Validate() error {
	if c.Default == "" {
		return goerr.New("default emoji is required")
	}

	seen := make(map[string]bool)
	for i, kw := range c.Keywords {
		if kw.Keyword == "" {
			return goerr.New("empty keyword", goerr.V("index", i))
		}
		if kw.Emoji == "" {
			return goerr.New("keyword without emoji", goerr.V("keyword", kw.Keyword))
		}
		if seen[kw.Keyword] {
			return goerr.New("duplicate keyword", goerr.V("keyword", kw.Keyword))
		}
		seen[kw.Keyword] = true
	}

	return nil
}

// DefaultEmojiConfig returns the built-in keyword table. The declared order
// is the priority order for ties.
func DefaultEmojiConfig() *EmojiConfig {
	return &EmojiConfig{
		Default: ":tada:",
		Keywords: []EmojiKeyword{
			{Keyword: "wine", Emoji: ":wine_glass:"},
			{Keyword: "cookie", Emoji: ":cookie:"},
			{Keyword: "pizza", Emoji: ":pizza:"},
			{Keyword: "happy hour", Emoji: ":cocktail:"},
			{Keyword: "beer", Emoji: ":beer:"},
			{Keyword: "beers", Emoji: ":beers:"},
			{Keyword: "book", Emoji: ":book:"},
			{Keyword: "lunch", Emoji: ":fork_and_knife:"},
			{Keyword: "dinner", Emoji: ":knife_fork_plate:"},
			{Keyword: "coffee", Emoji: ":coffee:"},
			{Keyword: "soccer", Emoji: ":soccer:"},
			{Keyword: "basketball", Emoji: ":basketball:"},
			{Keyword: "golf", Emoji: ":golf:"},
		},
	}
}
