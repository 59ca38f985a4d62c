// Package main is the entry point for the parkbot webhook server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/prilive-com/parkbot"
	"github.com/prilive-com/parkbot/internal/env"
	"github.com/prilive-com/parkbot/receiver"
	"github.com/prilive-com/parkbot/tg"
)

// Set by ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "parkbot:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	serve := serveCmd()
	root := &cobra.Command{
		Use:           "parkbot",
		Short:         "Answer Telegram updates for parked bots",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().String("env-file", ".env", "Load environment from this file if it exists")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("env-file")
		return loadEnvFile(path)
	}
	root.AddCommand(serve, checkCmd(), versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "parkbot %s (commit: %s)\n", version, commit)
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			logger, err := newLogger(cmd.ErrOrStderr(), level)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, logger)
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the environment configuration and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			botCfg, srvCfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "listen=%s webhook_path=%s metrics=%t sender_window=%s default_language=%s\n",
				srvCfg.Addr(), srvCfg.WebhookPath, botCfg.MetricsEnabled && srvCfg.MetricsPath != "",
				botCfg.SenderWindow, botCfg.DefaultLanguage)
			return nil
		},
	}
}

func loadConfig() (*parkbot.Config, *receiver.Config, error) {
	botCfg, err := parkbot.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	srvCfg, err := receiver.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	return botCfg, srvCfg, nil
}

func serve(ctx context.Context, logger *slog.Logger) error {
	botCfg, srvCfg, err := loadConfig()
	if err != nil {
		return err
	}

	bot, err := parkbot.NewFromConfig(*botCfg, parkbot.WithLogger(logger))
	if err != nil {
		return err
	}
	defer bot.Close()

	handler := receiver.NewWebhookHandler(logger, bot, *srvCfg,
		receiver.WithWebhookMetrics(bot.Metrics()))
	srv := receiver.NewServer(*srvCfg, handler,
		receiver.WithServerLogger(logger),
		receiver.WithServerMetrics(bot.Metrics()))

	logger.Debug("starting",
		"version", version,
		"webhook_path", srvCfg.WebhookPath,
		"metrics_path", srvCfg.MetricsPath,
		"secret", srvCfg.WebhookSecret,
		"sender_window", botCfg.SenderWindow)

	return srv.Run(ctx)
}

// loadEnvFile loads path without overriding variables already set in the
// process environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// newLogger builds the process logger from LOG_FORMAT (text or json) and
// the level flag, falling back to LOG_LEVEL.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	if level == "" {
		level = env.String("LOG_LEVEL", "info")
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, tg.NewValidationError("LOG_LEVEL", "must be debug, info, warn or error")
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format := strings.ToLower(env.String("LOG_FORMAT", "text")); format {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, tg.NewValidationError("LOG_FORMAT", "must be text or json")
	}
}
