package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/vettedge/internal/config"
	"github.com/jonathan/vettedge/internal/logging"
	"github.com/jonathan/vettedge/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	Long:  `Start an HTTP server that serves the dashboard pages and the JSON API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, else 8080)")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to YAML or JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings(serveConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	logging.Init(cfg.Log)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("invalid JWT configuration: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("invalid password configuration: %w", err)
	}
	auth, err := authConfig(cfg)
	if err != nil {
		return err
	}
	if auth.DemoMode() {
		log.Warn().Msg("no operator account configured, any credentials will sign in")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	src, err := openSource(ctx, cfg, time.Now())
	cancel()
	if err != nil {
		return fmt.Errorf("failed to open candidate source: %w", err)
	}
	defer src.close()

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		Provider:   src.provider,
		Activities: src.activities,
		JWT:        jwtConfig,
		Password:   passwordConfig,
		Auth:       auth,
		Language:   cfg.Tag(),
		Logger:     log.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
