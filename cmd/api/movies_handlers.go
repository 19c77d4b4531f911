package main

import (
	"errors"
	"net/http"

	"cinemahub/proj/internal/domain/filters"
	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/services/movies"
)

type listMoviesInput struct {
	Page      int               `schema:"page" validate:"omitempty,min=1"`
	PageSize  int               `schema:"pageSize" validate:"omitempty,min=1,max=20"`
	MinPrice  int               `schema:"minPrice" validate:"omitempty,min=0"`
	MaxPrice  int               `schema:"maxPrice" validate:"omitempty,min=1"`
	Locations []models.Location `schema:"locations" validate:"omitempty,dive,oneof=MSK SPB"`
	Published *bool             `schema:"published"`
	GenreID   int64             `schema:"genreId" validate:"omitempty,min=1"`
	Sort      string            `schema:"sort" validate:"omitempty,oneof=asc desc"`
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	input := listMoviesInput{
		Page:     1,
		PageSize: 10,
		MaxPrice: 1_000_000,
		Sort:     "asc",
	}
	if err := app.decodeQuery(r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	// Explicit zeros slip past omitempty; fall back to the defaults.
	if input.Page == 0 {
		input.Page = 1
	}
	if input.PageSize == 0 {
		input.PageSize = 10
	}
	f := filters.MovieFilters{
		Page:      input.Page,
		PageSize:  input.PageSize,
		MinPrice:  input.MinPrice,
		MaxPrice:  input.MaxPrice,
		Locations: input.Locations,
		Published: input.Published,
		GenreID:   input.GenreID,
		Sort:      input.Sort,
	}
	moviesList, total, err := app.Services.Movies.List(r.Context(), f)
	if err != nil {
		if errors.Is(err, movies.ErrInvalidPriceRange) {
			app.Http.BadRequest(w, r, "minPrice must be less than maxPrice")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	pageCount := (total + input.PageSize - 1) / input.PageSize
	app.Http.Ok(w, r, envelop{
		"movies":    moviesList,
		"total":     total,
		"page":      input.Page,
		"pageSize":  input.PageSize,
		"pageCount": pageCount,
	}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	movie, err := app.Services.Movies.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

type createMovieInput struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"required"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
	Price       int             `json:"price" validate:"required,min=1"`
	Location    models.Location `json:"location" validate:"required,oneof=MSK SPB"`
	Published   *bool           `json:"published" validate:"required"`
	GenreID     int64           `json:"genreId" validate:"required,min=1"`
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var input createMovieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	movie, err := app.Services.Movies.Create(r.Context(), movies.CreateMovieParams{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		Location:    input.Location,
		Published:   *input.Published,
		GenreID:     input.GenreID,
	})
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieAlreadyExists):
			app.Http.Conflict(w, r, "Movie with this name already exists")
		case errors.Is(err, movies.ErrUnknownGenre):
			app.Http.BadRequest(w, r, "Genre does not exist")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"movie": movie}, "Movie successfully created")
}

type editMovieInput struct {
	Name        *string          `json:"name" validate:"omitempty,max=100"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"imageUrl" validate:"omitempty,url"`
	Price       *int             `json:"price" validate:"omitempty,min=1"`
	Location    *models.Location `json:"location" validate:"omitempty,oneof=MSK SPB"`
	Published   *bool            `json:"published"`
	GenreID     *int64           `json:"genreId" validate:"omitempty,min=1"`
}

func (app *Application) editMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input editMovieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	movie, err := app.Services.Movies.Edit(r.Context(), id, movies.EditMovieParams{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		Location:    input.Location,
		Published:   input.Published,
		GenreID:     input.GenreID,
	})
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieNotFound):
			app.Http.NotFound(w, r, "Movie not found")
		case errors.Is(err, movies.ErrMovieAlreadyExists):
			app.Http.Conflict(w, r, "Movie with this name already exists")
		case errors.Is(err, movies.ErrUnknownGenre):
			app.Http.BadRequest(w, r, "Genre does not exist")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "Movie successfully updated")
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	movie, err := app.Services.Movies.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "Movie successfully deleted")
}
