package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Slack holds Slack app configuration. Bot tokens are not configured
// here: they are stored per workspace by the OAuth install flow.
type Slack struct {
	ClientID      string
	ClientSecret  string
	SigningSecret string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-client-id",
			Usage:       "Slack OAuth client ID",
			Category:    "Slack",
			Sources:     cli.EnvVars("FLAMINGO_SLACK_CLIENT_ID"),
			Destination: &s.ClientID,
		},
		&cli.StringFlag{
			Name:        "slack-client-secret",
			Usage:       "Slack OAuth client secret",
			Category:    "Slack",
			Sources:     cli.EnvVars("FLAMINGO_SLACK_CLIENT_SECRET"),
			Destination: &s.ClientSecret,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack signing secret for request verification",
			Category:    "Slack",
			Sources:     cli.EnvVars("FLAMINGO_SLACK_SIGNING_SECRET"),
			Destination: &s.SigningSecret,
		},
	}
}

// IsOAuthConfigured checks if the install flow can run
func (s *Slack) IsOAuthConfigured() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_client_id", s.ClientID != ""),
		slog.Bool("has_client_secret", s.ClientSecret != ""),
		slog.Bool("has_signing_secret", s.SigningSecret != ""),
	)
}
