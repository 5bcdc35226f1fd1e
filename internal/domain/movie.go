package domain

import "time"

type VideoQuality string

const (
	VideoQualityHD     VideoQuality = "720p"
	VideoQualityFullHD VideoQuality = "1080p"
	VideoQualityUHD    VideoQuality = "4K"
)

// Movie is a catalog entry.
type Movie struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Genre       []string       `json:"genre"`
	Director    string         `json:"director"`
	Cast        []string       `json:"cast"`
	Year        int            `json:"year"`
	Duration    int            `json:"duration"` // minutes
	Rating      float64        `json:"rating"`   // 0-10
	PosterURL   string         `json:"posterUrl"`
	BackdropURL string         `json:"backdropUrl,omitempty"`
	TrailerURL  string         `json:"trailerUrl,omitempty"`
	VideoURL    string         `json:"videoUrl,omitempty"`
	Quality     []VideoQuality `json:"quality"`
	Language    string         `json:"language"`
	Subtitles   []string       `json:"subtitles"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	IsActive    bool           `json:"isActive"`
}

type MovieSortBy string

const (
	MovieSortByTitle     MovieSortBy = "title"
	MovieSortByYear      MovieSortBy = "year"
	MovieSortByRating    MovieSortBy = "rating"
	MovieSortByCreatedAt MovieSortBy = "createdAt"
)

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// MovieFilters narrows a catalog listing. Zero values are ignored.
type MovieFilters struct {
	Genre     []string
	Year      int
	Rating    float64
	Quality   []VideoQuality
	Language  string
	SortBy    MovieSortBy
	SortOrder SortOrder
}

// MovieSearchResult is one page of catalog results.
type MovieSearchResult struct {
	Movies     []Movie `json:"movies"`
	TotalCount int     `json:"totalCount"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// EmptySearchResult is the shape returned when a listing cannot be fetched.
func EmptySearchResult() MovieSearchResult {
	return MovieSearchResult{
		Movies:     []Movie{},
		TotalCount: 0,
		Page:       1,
		PageSize:   20,
		TotalPages: 0,
	}
}
