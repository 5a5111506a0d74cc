// Package seeder floods a provisioned backend project with synthetic user and
// team records. User creation is sequential so duplicate detection and pacing
// stay meaningful; only the membership fan-out runs concurrently.
package seeder

import (
	"context"
	"log/slog"
	"time"

	"appseed/internal/console"
	"appseed/internal/faker"
)

// Progress receives incremental creation counts for display. It is invoked
// once per successfully created record, never on a skip.
type Progress func(created, total int)

// Config tunes the generators. Zero values fall back to defaults.
type Config struct {
	// PauseEvery pauses after every Nth user-creation iteration. Negative
	// disables pacing.
	PauseEvery int
	// PauseDuration is how long each pause lasts.
	PauseDuration time.Duration
	// Workers bounds the membership fan-out concurrency.
	Workers int
	// RedirectURL is required by the membership invite flow.
	RedirectURL string
}

func (c Config) withDefaults() Config {
	if c.PauseEvery == 0 {
		c.PauseEvery = 100
	}
	if c.PauseDuration == 0 {
		c.PauseDuration = 5 * time.Second
	}
	if c.Workers <= 0 {
		c.Workers = 16
	}
	if c.RedirectURL == "" {
		c.RedirectURL = "http://localhost"
	}
	return c
}

// Generator creates synthetic records through a key-authenticated client.
type Generator struct {
	client *console.Client
	faker  *faker.Faker
	logger *slog.Logger
	cfg    Config
	sleep  func(context.Context, time.Duration) error
}

// New creates a Generator. The faker's random source drives every randomized
// choice, so a seeded faker reproduces the same run.
func New(client *console.Client, fk *faker.Faker, logger *slog.Logger, cfg Config) *Generator {
	return &Generator{
		client: client,
		faker:  fk,
		logger: logger,
		cfg:    cfg.withDefaults(),
		sleep:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
