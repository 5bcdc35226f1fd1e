package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nina-movie/internal/domain"
	"nina-movie/internal/presentation"
)

type movieQuery struct {
	Page      int      `form:"page" binding:"omitempty,min=1"`
	PageSize  int      `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Genre     []string `form:"genre"`
	Year      int      `form:"year" binding:"omitempty,min=1888"`
	Rating    float64  `form:"rating" binding:"omitempty,min=0,max=10"`
	Quality   []string `form:"quality" binding:"omitempty,dive,oneof=720p 1080p 4K"`
	Language  string   `form:"language"`
	SortBy    string   `form:"sortBy" binding:"omitempty,oneof=title year rating createdAt"`
	SortOrder string   `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

func (q movieQuery) filters() *domain.MovieFilters {
	f := &domain.MovieFilters{
		Genre:     q.Genre,
		Year:      q.Year,
		Rating:    q.Rating,
		Language:  q.Language,
		SortBy:    domain.MovieSortBy(q.SortBy),
		SortOrder: domain.SortOrder(q.SortOrder),
	}
	for _, quality := range q.Quality {
		f.Quality = append(f.Quality, domain.VideoQuality(quality))
	}
	return f
}

type pageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// ListResponse is one page of movies with its cards.
type ListResponse struct {
	Title string `json:"title"`
	domain.MovieSearchResult
	Cards []presentation.Card `json:"cards"`
}

func (h *Handler) listView(title string, result domain.MovieSearchResult) ListResponse {
	cards := make([]presentation.Card, len(result.Movies))
	for i, m := range result.Movies {
		cards[i] = presentation.NewCard(m, presentation.CardMedium, false)
	}
	return ListResponse{Title: h.title(title), MovieSearchResult: result, Cards: cards}
}

func (h *Handler) listMovies(c *gin.Context) {
	var q movieQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result := h.catalog.Movies(c.Request.Context(), q.filters(), q.Page, q.PageSize)
	c.JSON(http.StatusOK, h.listView("Movies", result))
}

func (h *Handler) searchMovies(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query is required"})
		return
	}
	result := h.catalog.Search(c.Request.Context(), term, q.Page, q.PageSize)
	c.JSON(http.StatusOK, h.listView("Search", result))
}

func (h *Handler) featuredMovies(c *gin.Context) {
	movies := h.catalog.Featured(c.Request.Context())
	c.JSON(http.StatusOK, presentation.NewCarousel("Featured", movies, presentation.CardLarge, true, containerWidth(c)))
}

func (h *Handler) popularMovies(c *gin.Context) {
	movies := h.catalog.Popular(c.Request.Context())
	c.JSON(http.StatusOK, presentation.NewCarousel("Popular on "+h.appName, movies, presentation.CardMedium, false, containerWidth(c)))
}

func (h *Handler) genres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"genres": h.catalog.Genres(c.Request.Context())})
}

func (h *Handler) moviesByGenre(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	genre := c.Param("genre")
	result := h.catalog.ByGenre(c.Request.Context(), genre, q.Page, q.PageSize)
	c.JSON(http.StatusOK, h.listView(genre, result))
}

// DetailResponse is the movie page.
type DetailResponse struct {
	Title         string            `json:"title"`
	Movie         domain.Movie      `json:"movie"`
	Card          presentation.Card `json:"card"`
	RecentlyAdded bool              `json:"recentlyAdded"`
}

func (h *Handler) movieDetail(c *gin.Context) {
	movie := h.catalog.MovieByID(c.Request.Context(), c.Param("id"))
	if movie == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		return
	}
	c.JSON(http.StatusOK, DetailResponse{
		Title:         h.title(movie.Title),
		Movie:         *movie,
		Card:          presentation.NewCard(*movie, presentation.CardLarge, true),
		RecentlyAdded: presentation.IsRecentlyAdded(movie.CreatedAt, h.now()),
	})
}

type rateRequest struct {
	Rating *float64 `json:"rating" binding:"required,min=0,max=10"`
}

func (h *Handler) rateMovie(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.catalog.Rate(c.Request.Context(), c.Param("id"), *req.Rating) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "rating was not accepted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) addToWatchlist(c *gin.Context) {
	if !h.catalog.AddToWatchlist(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "watchlist update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) removeFromWatchlist(c *gin.Context) {
	if !h.catalog.RemoveFromWatchlist(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "watchlist update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
