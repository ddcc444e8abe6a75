package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/openinvites/flamingo/pkg/cli/config"
)

func TestEmojiConfigure(t *testing.T) {
	t.Run("No path falls back to the built-in table", func(t *testing.T) {
		e := &config.Emoji{}
		table, err := e.Configure()
		gt.NoError(t, err).Required()
		gt.Equal(t, ":tada:", table.Default)
		gt.A(t, table.Keywords).Length(13)
	})

	t.Run("Loads keyword table from YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "emoji.yml")
		content := `default: ":sparkles:"
keywords:
  - keyword: "sushi"
    emoji: ":sushi:"
  - keyword: "karaoke"
    emoji: ":microphone:"
`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()

		e := &config.Emoji{Path: path}
		table, err := e.Configure()
		gt.NoError(t, err).Required()
		gt.Equal(t, ":sparkles:", table.Default)
		gt.A(t, table.Keywords).Length(2)
		gt.Equal(t, "sushi", table.Keywords[0].Keyword)
		gt.Equal(t, ":sushi:", table.Keywords[0].Emoji)
	})

	t.Run("Missing file fails", func(t *testing.T) {
		e := &config.Emoji{Path: filepath.Join(t.TempDir(), "missing.yml")}
		_, err := e.Configure()
		gt.Error(t, err)
	})

	t.Run("Invalid table fails validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "emoji.yml")
		content := `keywords:
  - keyword: "sushi"
    emoji: ":sushi:"
`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()

		e := &config.Emoji{Path: path}
		_, err := e.Configure()
		gt.Error(t, err)
	})
}
