package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openinvites/flamingo/pkg/cli/config"
	controller "github.com/openinvites/flamingo/pkg/controller/http"
	"github.com/openinvites/flamingo/pkg/service/emoji"
	slackSvc "github.com/openinvites/flamingo/pkg/service/slack"
	"github.com/openinvites/flamingo/pkg/usecase"
	"github.com/openinvites/flamingo/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		slackCfg     config.Slack
		redisCfg     config.Redis
		firestoreCfg config.Firestore
		emojiCfg     config.Emoji
	)

	flags := joinFlags(
		serverCfg.Flags(),
		slackCfg.Flags(),
		redisCfg.Flags(),
		firestoreCfg.Flags(),
		emojiCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting flamingo server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("slack", slackCfg),
				slog.Any("redis", redisCfg),
				slog.Any("firestore", firestoreCfg),
				slog.Any("emoji", emojiCfg),
			)

			if slackCfg.SigningSecret == "" {
				return goerr.New("Slack signing secret is required. Please provide FLAMINGO_SLACK_SIGNING_SECRET")
			}
			if !slackCfg.IsOAuthConfigured() {
				logger.Warn("Slack OAuth client not configured; the install flow will not work")
			}

			repo, err := config.ConfigureRepository(ctx, &firestoreCfg, &redisCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			emojiConfig, err := emojiCfg.Configure()
			if err != nil {
				return err
			}

			inviteUC := usecase.NewInvite(repo, slackSvc.NewGateway, emoji.New(emojiConfig))
			oauthUC := usecase.NewOAuth(repo, slackCfg.ClientID, slackCfg.ClientSecret)

			server := controller.NewServer(ctx, serverCfg.Addr, &slackCfg, inviteUC, oauthUC)

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					apperr.Handle(ctx, goerr.Wrap(err, "HTTP server error"))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
