package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"nina-movie/internal/apiclient"
	"nina-movie/internal/domain"
	"nina-movie/internal/observable"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// MovieService reads and writes the catalog. Reads never fail: errors are
// logged and an empty result of the right shape is returned.
type MovieService struct {
	api      *apiclient.Client
	logger   *logrus.Logger
	featured *observable.Subject[[]domain.Movie]
	popular  *observable.Subject[[]domain.Movie]
}

func NewMovieService(api *apiclient.Client, logger *logrus.Logger) *MovieService {
	if logger == nil {
		logger = logrus.New()
	}
	return &MovieService{
		api:      api,
		logger:   logger,
		featured: observable.NewSubject([]domain.Movie{}),
		popular:  observable.NewSubject([]domain.Movie{}),
	}
}

func (s *MovieService) Movies(ctx context.Context, filters *domain.MovieFilters, page, pageSize int) domain.MovieSearchResult {
	params := pageParams(page, pageSize)
	if filters != nil {
		if len(filters.Genre) > 0 {
			params.Set("genre", strings.Join(filters.Genre, ","))
		}
		if filters.Year != 0 {
			params.Set("year", strconv.Itoa(filters.Year))
		}
		if filters.Rating != 0 {
			params.Set("rating", strconv.FormatFloat(filters.Rating, 'f', -1, 64))
		}
		if len(filters.Quality) > 0 {
			qualities := make([]string, len(filters.Quality))
			for i, q := range filters.Quality {
				qualities[i] = string(q)
			}
			params.Set("quality", strings.Join(qualities, ","))
		}
		if filters.Language != "" {
			params.Set("language", filters.Language)
		}
		if filters.SortBy != "" {
			params.Set("sortBy", string(filters.SortBy))
		}
		if filters.SortOrder != "" {
			params.Set("sortOrder", string(filters.SortOrder))
		}
	}

	var result domain.MovieSearchResult
	if err := s.api.Get(ctx, "/movies", params, &result); err != nil {
		s.logger.WithError(err).Error("failed to fetch movies")
		return domain.EmptySearchResult()
	}
	return normalizeResult(result)
}

// MovieByID returns nil when the movie cannot be fetched.
func (s *MovieService) MovieByID(ctx context.Context, id string) *domain.Movie {
	var movie domain.Movie
	if err := s.api.Get(ctx, "/movies/"+url.PathEscape(id), nil, &movie); err != nil {
		s.logger.WithError(err).WithField("movie_id", id).Error("failed to fetch movie")
		return nil
	}
	return &movie
}

func (s *MovieService) Search(ctx context.Context, query string, page, pageSize int) domain.MovieSearchResult {
	params := pageParams(page, pageSize)
	params.Set("q", query)

	var result domain.MovieSearchResult
	if err := s.api.Get(ctx, "/movies/search", params, &result); err != nil {
		s.logger.WithError(err).Error("failed to search movies")
		return domain.EmptySearchResult()
	}
	return normalizeResult(result)
}

// Featured fetches the featured row and publishes it to subscribers.
func (s *MovieService) Featured(ctx context.Context) []domain.Movie {
	movies, err := s.list(ctx, "/movies/featured")
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch featured movies")
		return []domain.Movie{}
	}
	s.featured.Next(movies)
	return movies
}

// Popular fetches the popular row and publishes it to subscribers.
func (s *MovieService) Popular(ctx context.Context) []domain.Movie {
	movies, err := s.list(ctx, "/movies/popular")
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch popular movies")
		return []domain.Movie{}
	}
	s.popular.Next(movies)
	return movies
}

func (s *MovieService) SubscribeFeatured(fn func([]domain.Movie)) (cancel func()) {
	return s.featured.Subscribe(fn)
}

func (s *MovieService) SubscribePopular(fn func([]domain.Movie)) (cancel func()) {
	return s.popular.Subscribe(fn)
}

func (s *MovieService) ByGenre(ctx context.Context, genre string, page, pageSize int) domain.MovieSearchResult {
	return s.Movies(ctx, &domain.MovieFilters{Genre: []string{genre}}, page, pageSize)
}

func (s *MovieService) Recommended(ctx context.Context, userID string) []domain.Movie {
	movies, err := s.list(ctx, "/movies/recommendations/"+url.PathEscape(userID))
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch recommended movies")
		return []domain.Movie{}
	}
	return movies
}

func (s *MovieService) Genres(ctx context.Context) []string {
	var genres []string
	if err := s.api.Get(ctx, "/movies/genres", nil, &genres); err != nil {
		s.logger.WithError(err).Error("failed to fetch genres")
		return []string{}
	}
	if genres == nil {
		genres = []string{}
	}
	return genres
}

func (s *MovieService) Rate(ctx context.Context, movieID string, rating float64) bool {
	var resp successResponse
	if err := s.api.Post(ctx, "/movies/"+url.PathEscape(movieID)+"/rate", map[string]float64{"rating": rating}, &resp); err != nil {
		s.logger.WithError(err).Error("failed to rate movie")
		return false
	}
	return resp.Success
}

func (s *MovieService) AddToWatchlist(ctx context.Context, movieID string) bool {
	var resp successResponse
	if err := s.api.Post(ctx, "/movies/"+url.PathEscape(movieID)+"/watchlist", struct{}{}, &resp); err != nil {
		s.logger.WithError(err).Error("failed to add to watchlist")
		return false
	}
	return resp.Success
}

func (s *MovieService) RemoveFromWatchlist(ctx context.Context, movieID string) bool {
	var resp successResponse
	if err := s.api.Delete(ctx, "/movies/"+url.PathEscape(movieID)+"/watchlist", &resp); err != nil {
		s.logger.WithError(err).Error("failed to remove from watchlist")
		return false
	}
	return resp.Success
}

type successResponse struct {
	Success bool `json:"success"`
}

func (s *MovieService) list(ctx context.Context, path string) ([]domain.Movie, error) {
	var movies []domain.Movie
	if err := s.api.Get(ctx, path, nil, &movies); err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	return movies, nil
}

func pageParams(page, pageSize int) url.Values {
	if page <= 0 {
		page = defaultPage
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))
	return params
}

func normalizeResult(r domain.MovieSearchResult) domain.MovieSearchResult {
	if r.Movies == nil {
		r.Movies = []domain.Movie{}
	}
	return r
}
