package models

import (
	"context"
	"errors"

	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GenreModel struct {
	DB *pgxpool.Pool
}

func (m *GenreModel) List(ctx context.Context) ([]models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM genres ORDER BY id")
	genres, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		return nil, err
	}
	return genres, nil
}

func (m *GenreModel) Get(ctx context.Context, id int64) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM genres WHERE id = $1", id)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &genre, nil
}

func (m *GenreModel) Insert(ctx context.Context, name string) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "INSERT INTO genres (name) VALUES ($1) RETURNING id, name", name)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		return nil, mapMutationErr(err)
	}
	return &genre, nil
}

func (m *GenreModel) Delete(ctx context.Context, id int64) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "DELETE FROM genres WHERE id = $1 RETURNING id, name", id)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &genre, nil
}
