package main

import (
	"errors"
	"net/http"

	"cinemahub/proj/internal/services/genres"
)

func (app *Application) listGenres(w http.ResponseWriter, r *http.Request) {
	genresList, err := app.Services.Genres.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genres": genresList}, "")
}

func (app *Application) getGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	genre, err := app.Services.Genres.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, genres.ErrGenreNotFound) {
			app.Http.NotFound(w, r, "Genre not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "")
}

type createGenreInput struct {
	Name string `json:"name" validate:"required,max=50"`
}

func (app *Application) createGenre(w http.ResponseWriter, r *http.Request) {
	var input createGenreInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	genre, err := app.Services.Genres.Create(r.Context(), input.Name)
	if err != nil {
		if errors.Is(err, genres.ErrGenreAlreadyExists) {
			app.Http.Conflict(w, r, "Genre with this name already exists")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"genre": genre}, "Genre successfully created")
}

func (app *Application) deleteGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	genre, err := app.Services.Genres.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, genres.ErrGenreNotFound) {
			app.Http.NotFound(w, r, "Genre not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "Genre successfully deleted")
}
