package reviews

import (
	"context"
	"log/slog"
	"testing"

	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewKey struct {
	userID  uuid.UUID
	movieID int64
}

// fakeStorage implements ReviewsStorage and MoviesStorage in memory.
type fakeStorage struct {
	movies           map[int64]float64 // id -> rating
	reviews          map[reviewKey]*models.Review
	ratingWriteCount int
}

func newFakeStorage(movieIDs ...int64) *fakeStorage {
	f := &fakeStorage{
		movies:  make(map[int64]float64),
		reviews: make(map[reviewKey]*models.Review),
	}
	for _, id := range movieIDs {
		f.movies[id] = 0
	}
	return f
}

func (f *fakeStorage) Exists(_ context.Context, movieID int64) (bool, error) {
	_, ok := f.movies[movieID]
	return ok, nil
}

func (f *fakeStorage) UpdateRating(_ context.Context, movieID int64, rating float64) error {
	if _, ok := f.movies[movieID]; !ok {
		return storage.ErrNotFound
	}
	f.movies[movieID] = rating
	f.ratingWriteCount++
	return nil
}

func (f *fakeStorage) Get(_ context.Context, userID uuid.UUID, movieID int64) (*models.Review, error) {
	review, ok := f.reviews[reviewKey{userID, movieID}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *review
	return &copied, nil
}

func (f *fakeStorage) ListForMovie(_ context.Context, movieID int64) ([]models.Review, error) {
	out := []models.Review{}
	for _, r := range f.reviews {
		if r.MovieID == movieID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStorage) Insert(_ context.Context, userID uuid.UUID, movieID int64, rating int, text string) (*models.Review, error) {
	key := reviewKey{userID, movieID}
	if _, ok := f.reviews[key]; ok {
		return nil, storage.ErrConflict
	}
	review := &models.Review{UserID: userID, MovieID: movieID, Rating: rating, Text: text}
	f.reviews[key] = review
	copied := *review
	return &copied, nil
}

func (f *fakeStorage) Update(_ context.Context, userID uuid.UUID, movieID int64, rating int, text string) (*models.Review, error) {
	review, ok := f.reviews[reviewKey{userID, movieID}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	review.Rating = rating
	review.Text = text
	copied := *review
	return &copied, nil
}

func (f *fakeStorage) SetHidden(_ context.Context, userID uuid.UUID, movieID int64, hidden bool) (*models.Review, error) {
	review, ok := f.reviews[reviewKey{userID, movieID}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	review.Hidden = hidden
	copied := *review
	return &copied, nil
}

func (f *fakeStorage) Delete(_ context.Context, userID uuid.UUID, movieID int64) (*models.Review, error) {
	key := reviewKey{userID, movieID}
	review, ok := f.reviews[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	delete(f.reviews, key)
	return review, nil
}

func newTestService(store *fakeStorage) *ReviewService {
	return New(slog.Default(), store, store)
}

func testUser(roles ...models.Role) *models.User {
	if len(roles) == 0 {
		roles = []models.Role{models.RoleUser}
	}
	return &models.User{ID: uuid.New(), Email: "test@example.com", Roles: roles}
}

const movieID = int64(1)

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	t.Run("success recomputes rating", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		review, err := s.Create(ctx, testUser(), movieID, 4, "good one")
		require.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
		assert.False(t, review.Hidden)
		assert.Equal(t, 4.0, store.movies[movieID])
	})
	t.Run("movie not found", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		_, err := s.Create(ctx, testUser(), 999, 4, "good one")
		assert.ErrorIs(t, err, ErrMovieNotFound)
		assert.Empty(t, store.reviews)
	})
	t.Run("duplicate review conflicts and changes nothing", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		user := testUser()
		_, err := s.Create(ctx, user, movieID, 5, "first")
		require.NoError(t, err)
		_, err = s.Create(ctx, user, movieID, 1, "second")
		assert.ErrorIs(t, err, ErrReviewAlreadyExists)
		assert.Len(t, store.reviews, 1)
		assert.Equal(t, 5.0, store.movies[movieID])
	})
}

func TestRatingAggregation(t *testing.T) {
	ctx := context.Background()
	t.Run("no reviews means zero rating", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		user := testUser()
		_, err := s.Create(ctx, user, movieID, 3, "ok")
		require.NoError(t, err)
		_, err = s.Delete(ctx, user, movieID, uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, store.movies[movieID])
	})
	t.Run("mean is rounded to one decimal", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		users := []*models.User{testUser(), testUser(), testUser()}
		for i, rating := range []int{5, 5, 4} {
			_, err := s.Create(ctx, users[i], movieID, rating, "review")
			require.NoError(t, err)
		}
		// round(14/3, 1) == 4.7
		assert.Equal(t, 4.7, store.movies[movieID])

		_, err := s.Delete(ctx, users[2], movieID, uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, 5.0, store.movies[movieID])
	})
	t.Run("hidden reviews still count toward the mean", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		first, second := testUser(), testUser()
		_, err := s.Create(ctx, first, movieID, 5, "great")
		require.NoError(t, err)
		_, err = s.Create(ctx, second, movieID, 1, "awful")
		require.NoError(t, err)
		require.Equal(t, 3.0, store.movies[movieID])

		_, err = s.SetVisibility(ctx, movieID, second.ID, true)
		require.NoError(t, err)
		_, err = s.Edit(ctx, first, movieID, 5, "still great")
		require.NoError(t, err)
		assert.Equal(t, 3.0, store.movies[movieID])
	})
}

func TestEditReview(t *testing.T) {
	ctx := context.Background()
	t.Run("owner edit recomputes rating", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		user := testUser()
		_, err := s.Create(ctx, user, movieID, 2, "meh")
		require.NoError(t, err)
		review, err := s.Edit(ctx, user, movieID, 5, "grew on me")
		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, 5.0, store.movies[movieID])
	})
	t.Run("no path exists to edit a foreign review", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		owner := testUser()
		_, err := s.Create(ctx, owner, movieID, 4, "mine")
		require.NoError(t, err)
		// Even an admin edits only rows keyed by their own id, so the
		// foreign review is simply not found.
		intruder := testUser(models.RoleAdmin)
		_, err = s.Edit(ctx, intruder, movieID, 1, "hijack")
		assert.ErrorIs(t, err, ErrReviewNotFound)
		assert.Equal(t, 4, store.reviews[reviewKey{owner.ID, movieID}].Rating)
	})
	t.Run("movie not found", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		_, err := s.Edit(ctx, testUser(), 999, 4, "text")
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()
	t.Run("non-owner non-admin is forbidden", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		owner := testUser()
		_, err := s.Create(ctx, owner, movieID, 4, "mine")
		require.NoError(t, err)
		_, err = s.Delete(ctx, testUser(), movieID, owner.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Len(t, store.reviews, 1)
		assert.Equal(t, 4.0, store.movies[movieID])
	})
	t.Run("admin deletes the targeted review", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		owner := testUser()
		_, err := s.Create(ctx, owner, movieID, 4, "mine")
		require.NoError(t, err)
		admin := testUser(models.RoleAdmin)
		review, err := s.Delete(ctx, admin, movieID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, review.UserID)
		assert.Empty(t, store.reviews)
		assert.Equal(t, 0.0, store.movies[movieID])
	})
	t.Run("super admin may target too", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		owner := testUser()
		_, err := s.Create(ctx, owner, movieID, 4, "mine")
		require.NoError(t, err)
		_, err = s.Delete(ctx, testUser(models.RoleSuperAdmin), movieID, owner.ID)
		assert.NoError(t, err)
	})
	t.Run("missing review", func(t *testing.T) {
		store := newFakeStorage(movieID)
		s := newTestService(store)
		_, err := s.Delete(ctx, testUser(), movieID, uuid.Nil)
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestSetVisibility(t *testing.T) {
	ctx := context.Background()
	store := newFakeStorage(movieID)
	s := newTestService(store)
	owner := testUser()
	_, err := s.Create(ctx, owner, movieID, 4, "mine")
	require.NoError(t, err)
	writesBefore := store.ratingWriteCount

	review, err := s.SetVisibility(ctx, movieID, owner.ID, true)
	require.NoError(t, err)
	assert.True(t, review.Hidden)
	assert.Equal(t, 4, review.Rating)
	// Visibility changes never touch the aggregate.
	assert.Equal(t, writesBefore, store.ratingWriteCount)
	assert.Equal(t, 4.0, store.movies[movieID])

	review, err = s.SetVisibility(ctx, movieID, owner.ID, false)
	require.NoError(t, err)
	assert.False(t, review.Hidden)

	_, err = s.SetVisibility(ctx, movieID, uuid.New(), true)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
