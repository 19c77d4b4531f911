package filters

import (
	"strings"

	"cinemahub/proj/internal/domain/models"
)

const (
	AscSort  = "ASC"
	DescSort = "DESC"
)

// MovieFilters narrows and paginates the movie listing.
// Zero values mean "no filter" except the price bounds which are
// defaulted by the query decoder.
type MovieFilters struct {
	Page      int
	PageSize  int
	MinPrice  int
	MaxPrice  int
	Locations []models.Location
	Published *bool
	GenreID   int64
	Sort      string // "asc" or "desc" by creation time
}

func (f *MovieFilters) Limit() int {
	return f.PageSize
}

func (f *MovieFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

func (f *MovieFilters) SortDirection() string {
	if strings.EqualFold(f.Sort, "desc") {
		return DescSort
	}
	return AscSort
}
