package genres

import (
	"context"
	"errors"
	"log/slog"

	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/storage"
)

type GenresStorage interface {
	List(ctx context.Context) ([]models.Genre, error)
	Get(ctx context.Context, id int64) (*models.Genre, error)
	Insert(ctx context.Context, name string) (*models.Genre, error)
	Delete(ctx context.Context, id int64) (*models.Genre, error)
}

type GenreService struct {
	log     *slog.Logger
	storage GenresStorage
}

func New(log *slog.Logger, storage GenresStorage) *GenreService {
	return &GenreService{
		log:     log,
		storage: storage,
	}
}

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	const op = "genres.GenreService.List"
	genres, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return genres, nil
}

func (s *GenreService) Get(ctx context.Context, id int64) (*models.Genre, error) {
	const op = "genres.GenreService.Get"
	log := s.log.With("op", op, "id", id)
	genre, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return nil, ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) Create(ctx context.Context, name string) (*models.Genre, error) {
	const op = "genres.GenreService.Create"
	log := s.log.With("op", op, "name", name)
	genre, err := s.storage.Insert(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("genre already exists")
			return nil, ErrGenreAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("created genre", "id", genre.ID)
	return genre, nil
}

func (s *GenreService) Delete(ctx context.Context, id int64) (*models.Genre, error) {
	const op = "genres.GenreService.Delete"
	log := s.log.With("op", op, "id", id)
	genre, err := s.storage.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return nil, ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("deleted genre")
	return genre, nil
}
