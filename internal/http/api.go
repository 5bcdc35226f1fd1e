package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"nina-movie/internal/domain"
	"nina-movie/internal/guard"
	"nina-movie/internal/presentation"
	"nina-movie/internal/session"
	"nina-movie/internal/storage"
)

const HomePath = "/home"

// AuthGateway is the login surface of the auth service.
type AuthGateway interface {
	Login(ctx context.Context, credentials domain.LoginCredentials) (*domain.AuthResponse, error)
	Register(ctx context.Context, data domain.RegisterData) (*domain.AuthResponse, error)
	Logout(ctx context.Context)
	Revalidate(ctx context.Context) bool
}

// Catalog reads and annotates movies. Reads degrade to empty values.
type Catalog interface {
	Movies(ctx context.Context, filters *domain.MovieFilters, page, pageSize int) domain.MovieSearchResult
	MovieByID(ctx context.Context, id string) *domain.Movie
	Search(ctx context.Context, query string, page, pageSize int) domain.MovieSearchResult
	Featured(ctx context.Context) []domain.Movie
	Popular(ctx context.Context) []domain.Movie
	ByGenre(ctx context.Context, genre string, page, pageSize int) domain.MovieSearchResult
	Recommended(ctx context.Context, userID string) []domain.Movie
	Genres(ctx context.Context) []string
	Rate(ctx context.Context, movieID string, rating float64) bool
	AddToWatchlist(ctx context.Context, movieID string) bool
	RemoveFromWatchlist(ctx context.Context, movieID string) bool
}

// MediaLibrary resolves playback sources and manages stored renditions.
type MediaLibrary interface {
	Sources(ctx context.Context, movie domain.Movie) ([]domain.VideoSource, []domain.Subtitle)
	Publish(ctx context.Context, movieID, localDir string, progress func(done, total int64)) (string, error)
	Unpublish(ctx context.Context, movieID string) error
	Objects(ctx context.Context, movieID string) ([]storage.Object, error)
}

// Handler serves the application's route table as JSON views.
type Handler struct {
	auth    AuthGateway
	session *session.Store
	catalog Catalog
	media   MediaLibrary
	logger  *logrus.Logger
	appName string
	now     func() time.Time
}

func NewHandler(auth AuthGateway, store *session.Store, catalog Catalog, media MediaLibrary, appName string, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	if appName == "" {
		appName = "NINAMovie"
	}
	return &Handler{
		auth:    auth,
		session: store,
		catalog: catalog,
		media:   media,
		logger:  logger,
		appName: appName,
		now:     time.Now,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/", redirectTo(HomePath))
	router.GET("/home", h.home)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	auth := router.Group("/auth")
	{
		auth.GET("", redirectTo(guard.LoginPath))
		auth.GET("/login", h.page("Login"))
		auth.GET("/register", h.page("Register"))
		auth.POST("/login", h.login)
		auth.POST("/register", h.register)
		auth.POST("/logout", h.logout)
	}

	signedIn := h.requireGuard(guard.AuthGuard{})

	movies := router.Group("/movies", signedIn)
	{
		movies.GET("", h.listMovies)
		movies.GET("/search", h.searchMovies)
		movies.GET("/featured", h.featuredMovies)
		movies.GET("/popular", h.popularMovies)
		movies.GET("/genres", h.genres)
		movies.GET("/genre/:genre", h.moviesByGenre)
		movies.GET("/:id", h.movieDetail)
		movies.POST("/:id/rate", h.rateMovie)
		movies.POST("/:id/watchlist", h.addToWatchlist)
		movies.DELETE("/:id/watchlist", h.removeFromWatchlist)
	}

	router.GET("/player/:id", signedIn, h.playerView)

	profile := router.Group("/profile", signedIn)
	{
		profile.GET("", h.profile)
		profile.GET("/recommendations", h.recommendations)
	}

	admin := router.Group("/admin", h.requireGuard(guard.Chain(guard.AuthGuard{}, guard.AdminGuard{})))
	{
		admin.GET("/media", h.listMedia)
		admin.POST("/media/:id", h.publishMedia)
		admin.DELETE("/media/:id", h.deleteMedia)
	}

	router.NoRoute(redirectTo(HomePath))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireGuard checks g against the current session before the route runs.
// A session that claims to be signed in is first rechecked against the
// stored token, so an access token that expired since login is not honoured.
func (h *Handler) requireGuard(g guard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.session.IsAuthenticated() {
			h.auth.Revalidate(c.Request.Context())
		}
		decision := g.CanEnter(h.session.Snapshot())
		if !decision.Allow {
			h.logger.Debugf("guard redirect %s -> %s", c.Request.URL.Path, decision.RedirectTo)
			c.Redirect(http.StatusSeeOther, decision.RedirectTo)
			c.Abort()
			return
		}
		c.Next()
	}
}

func redirectTo(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, path)
	}
}

func (h *Handler) title(page string) string {
	return page + " - " + h.appName
}

func (h *Handler) page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"title": h.title(name)})
	}
}

func containerWidth(c *gin.Context) int {
	w, err := strconv.Atoi(c.Query("width"))
	if err != nil {
		return 0
	}
	return w
}

type HomeResponse struct {
	Title         string `json:"title"`
	Authenticated bool   `json:"authenticated"`
	presentation.Home
}

// home shows catalog rows, falling back to the sample rows when the
// catalog has nothing to offer.
func (h *Handler) home(c *gin.Context) {
	ctx := c.Request.Context()
	featured := h.catalog.Featured(ctx)
	popular := h.catalog.Popular(ctx)
	action := h.catalog.ByGenre(ctx, "Action", 1, 10).Movies

	if len(featured) == 0 && len(popular) == 0 && len(action) == 0 {
		rows := presentation.SampleMovies(nil, h.now())
		featured, popular, action = rows.Featured, rows.Popular, rows.Action
	}

	c.JSON(http.StatusOK, HomeResponse{
		Title:         h.title("Home"),
		Authenticated: h.session.IsAuthenticated(),
		Home:          presentation.NewHome(featured, popular, action, containerWidth(c)),
	})
}

func (h *Handler) profile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": h.title("Profile"),
		"user":  h.session.CurrentUser(),
	})
}

func (h *Handler) recommendations(c *gin.Context) {
	movies := []domain.Movie{}
	if user := h.session.CurrentUser(); user != nil {
		movies = h.catalog.Recommended(c.Request.Context(), user.ID)
	}
	c.JSON(http.StatusOK, presentation.NewCarousel("Recommended for you", movies, presentation.CardMedium, false, containerWidth(c)))
}

type PlayerResponse struct {
	Title        string               `json:"title"`
	Movie        domain.Movie         `json:"movie"`
	Sources      []domain.VideoSource `json:"sources"`
	Subtitles    []domain.Subtitle    `json:"subtitles"`
	InitialState domain.PlayerState   `json:"initialState"`
}

func (h *Handler) playerView(c *gin.Context) {
	ctx := c.Request.Context()
	movie := h.catalog.MovieByID(ctx, c.Param("id"))
	if movie == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		return
	}

	sources, subtitles := h.media.Sources(ctx, *movie)
	if sources == nil {
		sources = []domain.VideoSource{}
	}
	if subtitles == nil {
		subtitles = []domain.Subtitle{}
	}
	initial := domain.InitialPlayerState()
	if len(sources) > 0 {
		initial.Quality = sources[0].Quality
	}
	c.JSON(http.StatusOK, PlayerResponse{
		Title:        h.title(movie.Title),
		Movie:        *movie,
		Sources:      sources,
		Subtitles:    subtitles,
		InitialState: initial,
	})
}
