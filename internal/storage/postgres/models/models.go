package models

import "cinemahub/proj/internal/storage/postgres"

type Models struct {
	Movie  *MovieModel
	Genre  *GenreModel
	Review *ReviewModel
	User   *UserModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Movie:  &MovieModel{db.Conn},
		Genre:  &GenreModel{db.Conn},
		Review: &ReviewModel{db.Conn},
		User:   &UserModel{db.Conn},
	}
}
