package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-pseudonymizer/internal/db"
	"github.com/jonathan/resume-pseudonymizer/internal/server"
	"github.com/jonathan/resume-pseudonymizer/internal/server/ratelimit"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	servePort        int
	serveConfigPath  string
	serveDatabaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API server",
	Long:  `Start an HTTP server that exposes the pseudonymization engine. Stored profile endpoints are enabled when a database URL is configured.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file with default options")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &engineFlags{configPath: serveConfigPath})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srvCfg := server.Config{
		Port:      servePort,
		Defaults:  *cfg,
		RateLimit: ratelimit.LoadConfig(),
		Logger:    logrus.StandardLogger(),
	}

	databaseURL := serveDatabaseURL
	if databaseURL == "" {
		databaseURL = cfg.DatabaseURL
	}
	if databaseURL != "" {
		database, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		srvCfg.Store = database
	} else {
		logrus.Warn("no database configured; stored profile endpoints are disabled")
	}

	return server.New(srvCfg).Start(ctx)
}
