package main

import (
	"log/slog"

	"cinemahub/proj/internal/api/tasks"
	"cinemahub/proj/internal/config"
	"cinemahub/proj/internal/services"
	"cinemahub/proj/internal/storage/postgres"

	govalidator "github.com/go-playground/validator/v10"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	validator *govalidator.Validate
	Services  *services.Services
	tasks     *tasks.BackgroundTasks
}

func NewApplication(cfg *config.Config, log *slog.Logger, storage *postgres.Storage) *Application {
	bgTasks := tasks.New(log, cfg.Tasks.MaxWorkers, cfg.Tasks.QueueSize)
	bgTasks.Run()
	return &Application{
		cfg:       cfg,
		log:       log,
		validator: govalidator.New(govalidator.WithRequiredStructEnabled()),
		Services:  services.New(log, cfg, storage, bgTasks),
		tasks:     bgTasks,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
