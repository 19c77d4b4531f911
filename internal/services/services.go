package services

import (
	"log/slog"

	"cinemahub/proj/internal/config"
	"cinemahub/proj/internal/mails"
	"cinemahub/proj/internal/services/auth"
	"cinemahub/proj/internal/services/genres"
	"cinemahub/proj/internal/services/movies"
	"cinemahub/proj/internal/services/reviews"
	"cinemahub/proj/internal/storage/postgres"
	dbmodels "cinemahub/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth    *auth.AuthService
	Movies  *movies.MovieService
	Genres  *genres.GenreService
	Reviews *reviews.ReviewService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage, taskExecutor auth.TaskExecutor) *Services {
	m := dbmodels.New(storage)
	mailer := mails.New(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Timeout,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.Sender,
		cfg.SMTP.RetriesCount,
	)
	return &Services{
		Auth:    auth.New(log, m.User, mailer, taskExecutor, cfg.AppSecret, cfg.TokenTTL, cfg.Debug),
		Movies:  movies.New(log, m.Movie, m.Genre, m.Review),
		Genres:  genres.New(log, m.Genre),
		Reviews: reviews.New(log, m.Review, m.Movie),
	}
}
