package main

import (
	"errors"
	"net/http"

	"cinemahub/proj/internal/services/reviews"

	"github.com/google/uuid"
)

func (app *Application) handleReviewErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviews.ErrMovieNotFound):
		app.Http.NotFound(w, r, "Movie not found")
	case errors.Is(err, reviews.ErrReviewNotFound):
		app.Http.NotFound(w, r, "Review not found")
	case errors.Is(err, reviews.ErrReviewAlreadyExists):
		app.Http.Conflict(w, r, "You have already reviewed this movie")
	case errors.Is(err, reviews.ErrForbidden):
		app.Http.Forbidden(w, r, "You can only delete your own review")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) getMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	reviewsList, err := app.Services.Reviews.GetMovieReviews(r.Context(), movieID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": reviewsList}, "")
}

type reviewInput struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required,max=1000"`
}

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	var input reviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	actor := app.contextGetUser(r)
	review, err := app.Services.Reviews.Create(r.Context(), actor, movieID, input.Rating, input.Text)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "Review successfully created")
}

func (app *Application) editReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	var input reviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	actor := app.contextGetUser(r)
	review, err := app.Services.Reviews.Edit(r.Context(), actor, movieID, input.Rating, input.Text)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "Review successfully updated")
}

// deleteReview removes the caller's review, or with a userId query
// parameter somebody else's (admins only).
func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	targetUserID := uuid.Nil
	if raw := r.URL.Query().Get("userId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			app.Http.BadRequest(w, r, "invalid userId parameter")
			return
		}
		targetUserID = parsed
	}
	actor := app.contextGetUser(r)
	review, err := app.Services.Reviews.Delete(r.Context(), actor, movieID, targetUserID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "Review successfully deleted")
}

func (app *Application) hideReview(w http.ResponseWriter, r *http.Request) {
	app.setReviewVisibility(w, r, true)
}

func (app *Application) showReview(w http.ResponseWriter, r *http.Request) {
	app.setReviewVisibility(w, r, false)
}

func (app *Application) setReviewVisibility(w http.ResponseWriter, r *http.Request, hidden bool) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	targetUserID, ok := app.extractUserIDParam(w, r, "userId")
	if !ok {
		return
	}
	review, err := app.Services.Reviews.SetVisibility(r.Context(), movieID, targetUserID, hidden)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	msg := "Review is now visible"
	if hidden {
		msg = "Review is now hidden"
	}
	app.Http.Ok(w, r, envelop{"review": review}, msg)
}
