package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/vettedge/internal/activity"
	"github.com/jonathan/vettedge/internal/config"
	"github.com/jonathan/vettedge/internal/db"
	"github.com/jonathan/vettedge/internal/provider"
	"github.com/rs/zerolog/log"
)

// loadSettings merges the optional config file with defaults and applies environment
// overrides for the data source and logging.
func loadSettings(path string) (config.Config, error) {
	file := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		file = loaded
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		file.DatabaseURL = v
		file.Fixture = ""
	}
	if v := os.Getenv("VETTEDGE_FIXTURE"); v != "" && file.DatabaseURL == "" {
		file.Fixture = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		file.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		file.Log.Format = v
	}

	if err := file.Validate(); err != nil {
		return config.Config{}, err
	}
	return file.MergeWithDefaults(config.Defaults()), nil
}

// source is an opened candidate provider together with its activity store.
type source struct {
	provider   provider.Provider
	activities activity.Store
	close      func()
}

// openSource picks the data source: PostgreSQL when a database URL is set, then a
// fixture file, then generated demo data.
func openSource(ctx context.Context, cfg config.Config, now time.Time) (*source, error) {
	switch {
	case cfg.DatabaseURL != "":
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		log.Info().Msg("using PostgreSQL candidate store")
		return &source{provider: store, activities: store, close: store.Close}, nil

	case cfg.Fixture != "":
		m, err := provider.LoadFixture(cfg.Fixture)
		if err != nil {
			return nil, err
		}
		log.Info().Str("fixture", cfg.Fixture).Msg("using fixture candidate data")
		return &source{provider: m, activities: activity.NewFeed(activity.Demo(now)...), close: func() {}}, nil

	default:
		log.Info().Uint64("seed", cfg.Seed).Msg("using generated demo candidates")
		return &source{
			provider:   provider.Generate(provider.DefaultRoles(), cfg.Seed),
			activities: activity.NewFeed(activity.Demo(now)...),
			close:      func() {},
		}, nil
	}
}

// authConfig prefers AUTH_EMAIL and AUTH_PASSWORD_HASH over the config file.
func authConfig(cfg config.Config) (config.AuthConfig, error) {
	env, err := config.NewAuthConfig()
	if err != nil {
		return config.AuthConfig{}, fmt.Errorf("invalid auth configuration: %w", err)
	}
	if !env.DemoMode() {
		return *env, nil
	}
	return cfg.Auth, nil
}
