package movies

import "errors"

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrMovieAlreadyExists = errors.New("movie with that name already exists")
	ErrUnknownGenre       = errors.New("referenced genre does not exist")
	ErrInvalidPriceRange  = errors.New("minPrice must be less than maxPrice")
)
