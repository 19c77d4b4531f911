package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinemahub/proj/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func requestWithUser(user *models.User) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	return request.WithContext(context.WithValue(request.Context(), CtxKeyUser, user))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequireAuthenticatedUser(t *testing.T) {
	app := NewTestApplication(t)
	t.Run("authenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestWithUser(&models.User{
			ID:       uuid.New(),
			FullName: "test",
			Email:    "test@gmail.com",
			Roles:    []models.Role{models.RoleUser},
		})
		app.requireAuthenticatedUser(okHandler).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestWithUser(models.AnonymousUser)
		app.requireAuthenticatedUser(okHandler).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	app := NewTestApplication(t)
	newUser := func(roles ...models.Role) *models.User {
		return &models.User{
			ID:       uuid.New(),
			FullName: "test",
			Email:    "test@gmail.com",
			Roles:    roles,
		}
	}
	adminOnly := app.requireRoles(models.RoleAdmin)
	t.Run("admin allowed", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		adminOnly(okHandler).ServeHTTP(recorder, requestWithUser(newUser(models.RoleAdmin)))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("super admin passes every gate", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		adminOnly(okHandler).ServeHTTP(recorder, requestWithUser(newUser(models.RoleSuperAdmin)))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("regular user forbidden", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		adminOnly(okHandler).ServeHTTP(recorder, requestWithUser(newUser(models.RoleUser)))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
	t.Run("anonymous unauthorized", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		adminOnly(okHandler).ServeHTTP(recorder, requestWithUser(models.AnonymousUser))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
