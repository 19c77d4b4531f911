package models

import (
	"context"
	"errors"
	"fmt"

	"cinemahub/proj/internal/domain/filters"
	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/storage"
	"cinemahub/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const movieColumns = "id, name, description, image_url, price, rating, location, published, genre_id, created_at"

type MovieModel struct {
	DB *pgxpool.Pool
}

func (m *MovieModel) Get(ctx context.Context, id int64) (*models.Movie, error) {
	rows, err := m.DB.Query(
		ctx,
		fmt.Sprintf("SELECT %s FROM movies WHERE id = $1", movieColumns),
		id,
	)
	if err != nil {
		return nil, err
	}
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (m *MovieModel) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (m *MovieModel) List(ctx context.Context, f filters.MovieFilters) ([]models.Movie, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER(), %s FROM movies
	WHERE (location = ANY($1) OR cardinality($1::text[]) = 0)
	AND (published = $2 OR $3)
	AND (genre_id = $4 OR $4 = 0)
	AND price BETWEEN $5 AND $6
	ORDER BY created_at %s, id ASC
	LIMIT $7 OFFSET $8
	`, movieColumns, f.SortDirection())
	locations := make([]string, 0, len(f.Locations))
	for _, l := range f.Locations {
		locations = append(locations, string(l))
	}
	var published, anyPublished bool
	if f.Published != nil {
		published = *f.Published
	} else {
		anyPublished = true
	}
	args := []any{locations, published, anyPublished, f.GenreID, f.MinPrice, f.MaxPrice, f.Limit(), f.Offset()}
	rows, _ := m.DB.Query(ctx, query, args...)
	type row struct {
		Count int
		models.Movie
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []models.Movie{}, 0, nil
	}
	movies := make([]models.Movie, 0, len(outputRows))
	for _, row := range outputRows {
		movies = append(movies, row.Movie)
	}
	return movies, outputRows[0].Count, nil
}

func (m *MovieModel) Insert(
	ctx context.Context,
	name, description, imageURL string,
	price int,
	location models.Location,
	published bool,
	genreID int64,
) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		fmt.Sprintf(`INSERT INTO movies (name, description, image_url, price, location, published, genre_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING %s`, movieColumns),
		name, description, imageURL, price, location, published, genreID,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, mapMutationErr(err)
	}
	return &movie, nil
}

func (m *MovieModel) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		fmt.Sprintf(`UPDATE movies SET name = $1, description = $2, image_url = $3, price = $4,
		location = $5, published = $6, genre_id = $7 WHERE id = $8 RETURNING %s`, movieColumns),
		movie.Name, movie.Description, movie.ImageURL, movie.Price,
		movie.Location, movie.Published, movie.GenreID, movie.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, mapMutationErr(err)
	}
	return &updated, nil
}

// UpdateRating writes the recomputed aggregate rating only.
func (m *MovieModel) UpdateRating(ctx context.Context, id int64, rating float64) error {
	status, err := m.DB.Exec(ctx, "UPDATE movies SET rating = $1 WHERE id = $2", rating, id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *MovieModel) Delete(ctx context.Context, id int64) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		fmt.Sprintf("DELETE FROM movies WHERE id = $1 RETURNING %s", movieColumns),
		id,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func mapMutationErr(err error) error {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		switch pgxErr.Code {
		case postgres.ErrConflictCode:
			return storage.ErrConflict
		case postgres.ErrForeignKeyCode:
			return storage.ErrInvalidReference
		}
	}
	return err
}
