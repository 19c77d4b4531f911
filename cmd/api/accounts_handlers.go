package main

import (
	"errors"
	"net/http"

	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/services/auth"
)

type signupInput struct {
	Email          string `json:"email" validate:"required,email"`
	FullName       string `json:"fullName" validate:"required,max=100"`
	Password       string `json:"password" validate:"required,min=8,max=32"`
	PasswordRepeat string `json:"passwordRepeat" validate:"required,eqfield=Password" errorMsg:"Passwords don't match"`
}

func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var input signupInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	user, err := app.Services.Auth.Signup(r.Context(), input.Email, input.FullName, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			app.Http.Conflict(w, r, "User with this email already exists")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"user": user}, "Account successfully created")
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	tokens, err := app.Services.Auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.Unauthorized(w, r, "Invalid email or password")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"tokens": tokens}, "Successfully logged in")
}

func (app *Application) currentUser(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

type editUserInput struct {
	Roles    []models.Role `json:"roles" validate:"omitempty,dive,oneof=USER ADMIN SUPER_ADMIN"`
	Verified *bool         `json:"verified"`
}

func (app *Application) editUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractUserIDParam(w, r, "userId")
	if !ok {
		return
	}
	var input editUserInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	user, err := app.Services.Auth.EditUser(r.Context(), id, auth.EditUserParams{
		Roles:    input.Roles,
		Verified: input.Verified,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			app.Http.NotFound(w, r, "User not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "User successfully updated")
}

func (app *Application) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractUserIDParam(w, r, "userId")
	if !ok {
		return
	}
	actor := app.contextGetUser(r)
	err := app.Services.Auth.DeleteUser(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			app.Http.NotFound(w, r, "User not found")
		case errors.Is(err, auth.ErrForbidden):
			app.Http.Forbidden(w, r, "You can only delete your own account")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, nil, "Account successfully deleted")
}
