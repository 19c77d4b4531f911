package models

import (
	"context"
	"errors"

	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Every review read joins the author's display name, as the API always
// returns reviews together with it.
const reviewColumns = "r.user_id, r.movie_id, r.rating, r.text, r.hidden, r.created_at, u.full_name AS author_name"

type ReviewModel struct {
	DB *pgxpool.Pool
}

func (m *ReviewModel) Get(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT `+reviewColumns+` FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1 AND r.movie_id = $2`,
		userID, movieID,
	)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (m *ReviewModel) ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT `+reviewColumns+` FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = $1
		ORDER BY r.created_at`,
		movieID,
	)
	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (m *ReviewModel) Insert(ctx context.Context, userID uuid.UUID, movieID int64, rating int, text string) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`WITH r AS (
			INSERT INTO reviews (user_id, movie_id, rating, text)
			VALUES ($1, $2, $3, $4) RETURNING *
		)
		SELECT `+reviewColumns+` FROM r JOIN users u ON u.id = r.user_id`,
		userID, movieID, rating, text,
	)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, mapMutationErr(err)
	}
	return &review, nil
}

func (m *ReviewModel) Update(ctx context.Context, userID uuid.UUID, movieID int64, rating int, text string) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`WITH r AS (
			UPDATE reviews SET rating = $3, text = $4
			WHERE user_id = $1 AND movie_id = $2 RETURNING *
		)
		SELECT `+reviewColumns+` FROM r JOIN users u ON u.id = r.user_id`,
		userID, movieID, rating, text,
	)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, mapMutationErr(err)
	}
	return &review, nil
}

func (m *ReviewModel) SetHidden(ctx context.Context, userID uuid.UUID, movieID int64, hidden bool) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`WITH r AS (
			UPDATE reviews SET hidden = $3
			WHERE user_id = $1 AND movie_id = $2 RETURNING *
		)
		SELECT `+reviewColumns+` FROM r JOIN users u ON u.id = r.user_id`,
		userID, movieID, hidden,
	)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (m *ReviewModel) Delete(ctx context.Context, userID uuid.UUID, movieID int64) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`WITH r AS (
			DELETE FROM reviews
			WHERE user_id = $1 AND movie_id = $2 RETURNING *
		)
		SELECT `+reviewColumns+` FROM r JOIN users u ON u.id = r.user_id`,
		userID, movieID,
	)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}
