package reviews

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/storage"

	"github.com/google/uuid"
)

type ReviewsStorage interface {
	Get(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Review, error)
	ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error)
	Insert(ctx context.Context, userID uuid.UUID, movieID int64, rating int, text string) (*models.Review, error)
	Update(ctx context.Context, userID uuid.UUID, movieID int64, rating int, text string) (*models.Review, error)
	SetHidden(ctx context.Context, userID uuid.UUID, movieID int64, hidden bool) (*models.Review, error)
	Delete(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Review, error)
}

type MoviesStorage interface {
	Exists(ctx context.Context, movieID int64) (bool, error)
	UpdateRating(ctx context.Context, movieID int64, rating float64) error
}

// ReviewService owns the invariant that a movie's rating equals the mean
// of its review ratings rounded to one decimal place, and the ownership
// rules for mutating reviews.
type ReviewService struct {
	log     *slog.Logger
	storage ReviewsStorage
	movies  MoviesStorage
}

func New(log *slog.Logger, storage ReviewsStorage, movies MoviesStorage) *ReviewService {
	return &ReviewService{
		log:     log,
		storage: storage,
		movies:  movies,
	}
}

// GetMovieReviews returns every review for the movie, hidden ones included.
// Filtering hidden reviews out for anonymous viewers is the caller's concern.
func (s *ReviewService) GetMovieReviews(ctx context.Context, movieID int64) ([]models.Review, error) {
	const op = "reviews.ReviewService.GetMovieReviews"
	log := s.log.With("op", op, "movie_id", movieID)
	if err := s.checkMovieExists(ctx, movieID, log); err != nil {
		return nil, err
	}
	reviews, err := s.storage.ListForMovie(ctx, movieID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, actor *models.User, movieID int64, rating int, text string) (*models.Review, error) {
	const op = "reviews.ReviewService.Create"
	log := s.log.With("op", op, "user_id", actor.ID, "movie_id", movieID)
	if err := s.checkMovieExists(ctx, movieID, log); err != nil {
		return nil, err
	}
	if _, err := s.storage.Get(ctx, actor.ID, movieID); err == nil {
		log.Info("review already exists")
		return nil, ErrReviewAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}
	review, err := s.storage.Insert(ctx, actor.ID, movieID, rating, text)
	if err != nil {
		// A concurrent insert may slip past the check above; the primary
		// key on (user_id, movie_id) is the real guard.
		if errors.Is(err, storage.ErrConflict) {
			log.Info("review already exists")
			return nil, ErrReviewAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	if err := s.recomputeRating(ctx, movieID); err != nil {
		return nil, err
	}
	log.Info("created review", "rating", rating)
	return review, nil
}

// Edit updates the actor's own review. There is no admin override here:
// only the owner may change a review's content.
func (s *ReviewService) Edit(ctx context.Context, actor *models.User, movieID int64, rating int, text string) (*models.Review, error) {
	const op = "reviews.ReviewService.Edit"
	log := s.log.With("op", op, "user_id", actor.ID, "movie_id", movieID)
	if err := s.checkMovieExists(ctx, movieID, log); err != nil {
		return nil, err
	}
	if _, err := s.storage.Get(ctx, actor.ID, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	review, err := s.storage.Update(ctx, actor.ID, movieID, rating, text)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if err := s.recomputeRating(ctx, movieID); err != nil {
		return nil, err
	}
	log.Info("edited review", "rating", rating)
	return review, nil
}

// Delete removes a review. Admins may target any user's review via
// targetUserID; everyone else may only delete their own. A zero
// targetUserID means "my review".
func (s *ReviewService) Delete(ctx context.Context, actor *models.User, movieID int64, targetUserID uuid.UUID) (*models.Review, error) {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "user_id", actor.ID, "movie_id", movieID)
	if err := s.checkMovieExists(ctx, movieID, log); err != nil {
		return nil, err
	}
	isAdmin := actor.IsAdmin()
	if !isAdmin && targetUserID != uuid.Nil && targetUserID != actor.ID {
		log.Warn("user does not own the review", "target_user_id", targetUserID)
		return nil, ErrForbidden
	}
	owner := actor.ID
	if isAdmin && targetUserID != uuid.Nil {
		owner = targetUserID
	}
	if _, err := s.storage.Get(ctx, owner, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found", "owner_id", owner)
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	review, err := s.storage.Delete(ctx, owner, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if err := s.recomputeRating(ctx, movieID); err != nil {
		return nil, err
	}
	log.Info("deleted review", "owner_id", owner)
	return review, nil
}

// SetVisibility flips the hidden flag only. Hidden reviews still count
// toward the movie's rating, so no recompute happens here.
func (s *ReviewService) SetVisibility(ctx context.Context, movieID int64, targetUserID uuid.UUID, hidden bool) (*models.Review, error) {
	const op = "reviews.ReviewService.SetVisibility"
	log := s.log.With("op", op, "user_id", targetUserID, "movie_id", movieID, "hidden", hidden)
	if err := s.checkMovieExists(ctx, movieID, log); err != nil {
		return nil, err
	}
	if _, err := s.storage.Get(ctx, targetUserID, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	review, err := s.storage.SetHidden(ctx, targetUserID, movieID, hidden)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("changed review visibility")
	return review, nil
}

// recomputeRating rereads every review of the movie and writes back the
// mean rounded to one decimal place, or 0 when no reviews remain. It runs
// after every successful create/edit/delete and is deliberately not
// atomic with the mutation that triggered it.
func (s *ReviewService) recomputeRating(ctx context.Context, movieID int64) error {
	const op = "reviews.ReviewService.recomputeRating"
	log := s.log.With("op", op, "movie_id", movieID)
	reviews, err := s.storage.ListForMovie(ctx, movieID)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	var rating float64
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		rating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}
	if err := s.movies.UpdateRating(ctx, movieID, rating); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// The movie vanished between the review write and here.
			log.Info("movie disappeared before rating write")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	log.Debug("recomputed rating", "rating", rating, "reviews", len(reviews))
	return nil
}

func (s *ReviewService) checkMovieExists(ctx context.Context, movieID int64, log *slog.Logger) error {
	exists, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	if !exists {
		log.Info("movie not found")
		return ErrMovieNotFound
	}
	return nil
}
