package reviews

import "errors"

var (
	ErrMovieNotFound       = errors.New("movie not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("movie is already reviewed by this user")
	ErrForbidden           = errors.New("review belongs to another user")
)
