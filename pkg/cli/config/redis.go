package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Redis holds Redis configuration
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Flags returns CLI flags for Redis configuration
func (r *Redis) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis server address (host:port)",
			Category:    "Redis",
			Sources:     cli.EnvVars("FLAMINGO_REDIS_ADDR"),
			Destination: &r.Addr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Category:    "Redis",
			Sources:     cli.EnvVars("FLAMINGO_REDIS_PASSWORD"),
			Destination: &r.Password,
		},
		&cli.IntFlag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Category:    "Redis",
			Value:       0,
			Sources:     cli.EnvVars("FLAMINGO_REDIS_DB"),
			Destination: &r.DB,
		},
	}
}

// IsConfigured checks if Redis is properly configured
func (r *Redis) IsConfigured() bool {
	return r.Addr != ""
}

// LogValue returns structured log value
func (r Redis) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", r.Addr),
		slog.Bool("has_password", r.Password != ""),
		slog.Int("db", r.DB),
	)
}
