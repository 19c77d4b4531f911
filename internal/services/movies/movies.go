package movies

import (
	"context"
	"errors"
	"log/slog"

	"cinemahub/proj/internal/domain/filters"
	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/storage"
)

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
	List(ctx context.Context, f filters.MovieFilters) ([]models.Movie, int, error)
	Insert(ctx context.Context, name, description, imageURL string, price int, location models.Location, published bool, genreID int64) (*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Delete(ctx context.Context, id int64) (*models.Movie, error)
}

type GenresGetter interface {
	Get(ctx context.Context, id int64) (*models.Genre, error)
}

type ReviewsLister interface {
	ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error)
}

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
	genres  GenresGetter
	reviews ReviewsLister
}

func New(log *slog.Logger, storage MoviesStorage, genres GenresGetter, reviews ReviewsLister) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
		genres:  genres,
		reviews: reviews,
	}
}

type CreateMovieParams struct {
	Name        string
	Description string
	ImageURL    string
	Price       int
	Location    models.Location
	Published   bool
	GenreID     int64
}

// EditMovieParams carries partial updates; nil fields are left untouched.
type EditMovieParams struct {
	Name        *string
	Description *string
	ImageURL    *string
	Price       *int
	Location    *models.Location
	Published   *bool
	GenreID     *int64
}

// MovieDetails is the single-movie view: the movie joined with its genre
// name and all of its reviews.
type MovieDetails struct {
	models.Movie
	Genre   string          `json:"genre"`
	Reviews []models.Review `json:"reviews"`
}

func (s *MovieService) List(ctx context.Context, f filters.MovieFilters) ([]models.Movie, int, error) {
	const op = "movies.MovieService.List"
	log := s.log.With("op", op, "page", f.Page, "page_size", f.PageSize)
	if f.MinPrice >= f.MaxPrice {
		log.Info("invalid price range", "min_price", f.MinPrice, "max_price", f.MaxPrice)
		return nil, 0, ErrInvalidPriceRange
	}
	movies, total, err := s.storage.List(ctx, f)
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return movies, total, nil
}

func (s *MovieService) Get(ctx context.Context, id int64) (*MovieDetails, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	genre, err := s.genres.Get(ctx, movie.GenreID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}
	reviews, err := s.reviews.ListForMovie(ctx, id)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	details := &MovieDetails{Movie: *movie, Reviews: reviews}
	if genre != nil {
		details.Genre = genre.Name
	}
	return details, nil
}

func (s *MovieService) Create(ctx context.Context, params CreateMovieParams) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "name", params.Name)
	movie, err := s.storage.Insert(
		ctx,
		params.Name, params.Description, params.ImageURL,
		params.Price, params.Location, params.Published, params.GenreID,
	)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("movie already exists")
			return nil, ErrMovieAlreadyExists
		case errors.Is(err, storage.ErrInvalidReference):
			log.Info("unknown genre", "genre_id", params.GenreID)
			return nil, ErrUnknownGenre
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("created movie", "id", movie.ID)
	return movie, nil
}

func (s *MovieService) Edit(ctx context.Context, id int64, params EditMovieParams) (*models.Movie, error) {
	const op = "movies.MovieService.Edit"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if params.Name != nil {
		movie.Name = *params.Name
	}
	if params.Description != nil {
		movie.Description = *params.Description
	}
	if params.ImageURL != nil {
		movie.ImageURL = *params.ImageURL
	}
	if params.Price != nil {
		movie.Price = *params.Price
	}
	if params.Location != nil {
		movie.Location = *params.Location
	}
	if params.Published != nil {
		movie.Published = *params.Published
	}
	if params.GenreID != nil {
		movie.GenreID = *params.GenreID
	}
	updated, err := s.storage.Update(ctx, movie)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrMovieNotFound
		case errors.Is(err, storage.ErrConflict):
			log.Info("movie already exists")
			return nil, ErrMovieAlreadyExists
		case errors.Is(err, storage.ErrInvalidReference):
			log.Info("unknown genre")
			return nil, ErrUnknownGenre
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *MovieService) Delete(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("deleted movie")
	return movie, nil
}
