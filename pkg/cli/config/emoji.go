package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Emoji holds emoji keyword table configuration
type Emoji struct {
	Path string
}

// Flags returns CLI flags for Emoji configuration
func (e *Emoji) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "emoji-config",
			Usage:       "Path to emoji keyword YAML file (optional, built-in table by default)",
			Category:    "Emoji",
			Sources:     cli.EnvVars("FLAMINGO_EMOJI_CONFIG"),
			Destination: &e.Path,
		},
	}
}

// Configure loads the keyword table from the file, or the built-in table
// when no path is configured
func (e *Emoji) Configure() (*model.EmojiConfig, error) {
	if e.Path == "" {
		return model.DefaultEmojiConfig(), nil
	}

	data, err := os.ReadFile(e.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "emoji configuration file not found",
				goerr.V("path", e.Path))
		}
		return nil, goerr.Wrap(err, "failed to read emoji configuration",
			goerr.V("path", e.Path))
	}

	var config model.EmojiConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse emoji configuration",
			goerr.V("path", e.Path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid emoji configuration",
			goerr.V("path", e.Path))
	}

	return &config, nil
}

// LogValue returns structured log value
func (e Emoji) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", e.Path),
	)
}
