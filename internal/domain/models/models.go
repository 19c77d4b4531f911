package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

type Location string

const (
	LocationMSK Location = "MSK"
	LocationSPB Location = "SPB"
)

type Movie struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"` // unique
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Price       int       `json:"price" db:"price"`
	Rating      float64   `json:"rating" db:"rating"` // derived from reviews, never set by clients
	Location    Location  `json:"location" db:"location"`
	Published   bool      `json:"published" db:"published"`
	GenreID     int64     `json:"genreId" db:"genre_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Genre struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"` // unique
}

// Review is keyed by (UserID, MovieID) - one review per user per movie.
type Review struct {
	UserID     uuid.UUID `json:"userId" db:"user_id"`
	MovieID    int64     `json:"movieId" db:"movie_id"`
	Rating     int       `json:"rating" db:"rating"` // integer in [1,5]
	Text       string    `json:"text" db:"text"`
	Hidden     bool      `json:"hidden" db:"hidden"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	AuthorName string    `json:"authorName" db:"author_name"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash []byte    `json:"-"`
	Roles        []Role    `json:"roles"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u == AnonymousUser || u.ID == uuid.Nil
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds ADMIN or SUPER_ADMIN.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin) || u.HasRole(RoleSuperAdmin)
}
