package emoji

import (
	"strings"

	"github.com/openinvites/flamingo/pkg/domain/model"
)

// Selector picks a decorative emoji for an invite title
type Selector struct {
	config *model.EmojiConfig
}

// New creates a selector from a keyword table. A nil config falls back to
// the built-in table.
func New(config *model.EmojiConfig) *Selector {
	if config == nil {
		config = model.DefaultEmojiConfig()
	}
	return &Selector{config: config}
}

// Select returns the emoji for the first keyword found in the title,
// matching case-insensitively as a substring. Keywords earlier in the
// declared table take priority over later ones. Titles matching no
// keyword get the default emoji.
func (s *Selector) Select(title string) string {
	value := strings.ToLower(title)
	for _, kw := range s.config.Keywords {
		if strings.Contains(value, strings.ToLower(kw.Keyword)) {
			return kw.Emoji
		}
	}
	return s.config.Default
}
