package main

import (
	"io"
	"log/slog"
	"testing"

	"cinemahub/proj/internal/config"

	govalidator "github.com/go-playground/validator/v10"
)

// NewTestApplication builds an Application without a database or any
// services wired; enough for exercising middlewares and helpers.
func NewTestApplication(t *testing.T) *Application {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	return &Application{
		cfg:       cfg,
		log:       log,
		validator: govalidator.New(govalidator.WithRequiredStructEnabled()),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
