package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"nina-movie/internal/apiclient"
	"nina-movie/internal/domain"
	"nina-movie/internal/repository"
	"nina-movie/internal/session"
)

const (
	TokenKey        = "nina_movie_token"
	RefreshTokenKey = "nina_movie_refresh_token"
)

var (
	// ErrNoRefreshToken means there is nothing to refresh with; the caller must treat the session as logged out.
	ErrNoRefreshToken = errors.New("no refresh token available")
	// ErrTokenDecode indicates a stored access token could not be parsed.
	ErrTokenDecode = errors.New("decode access token")
	// ErrInvalidInput wraps validation failures of credentials or registration data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingTokens is returned when the API answers an auth call without a token pair.
	ErrMissingTokens = errors.New("auth response missing tokens")
)

type tokenClaims struct {
	jwt.RegisteredClaims
	User *domain.User `json:"user,omitempty"`
}

// AuthService performs the login/register/refresh calls and owns the token pair.
type AuthService struct {
	api      *apiclient.Client
	tokens   repository.KeyValueRepository
	session  *session.Store
	validate *validator.Validate
	logger   *logrus.Logger
	now      func() time.Time
}

// NewAuthService restores the session from a stored, unexpired access token.
// It makes no network call.
func NewAuthService(ctx context.Context, api *apiclient.Client, tokens repository.KeyValueRepository, store *session.Store, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = logrus.New()
	}
	s := &AuthService{
		api:      api,
		tokens:   tokens,
		session:  store,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
	s.restore(ctx)
	return s
}

func (s *AuthService) restore(ctx context.Context) {
	token := s.Token(ctx)
	if token == "" {
		return
	}
	claims, err := decodeToken(token)
	if err != nil {
		s.logger.WithError(err).Warn("ignoring stored access token")
		return
	}
	if s.expired(claims) {
		s.logger.Info("stored access token expired")
		return
	}
	if claims.User == nil {
		// valid token without an embedded user
		s.session.SetAuthenticated(true)
		return
	}
	s.session.SignIn(claims.User)
}

func (s *AuthService) Login(ctx context.Context, credentials domain.LoginCredentials) (*domain.AuthResponse, error) {
	credentials.Email = strings.TrimSpace(credentials.Email)
	if err := s.validate.Struct(credentials); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var resp domain.AuthResponse
	if err := s.api.Post(ctx, "/auth/login", credentials, &resp); err != nil {
		s.logger.WithError(err).Error("login failed")
		return nil, err
	}
	if err := s.handleAuthSuccess(ctx, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) Register(ctx context.Context, data domain.RegisterData) (*domain.AuthResponse, error) {
	data.Email = strings.TrimSpace(data.Email)
	data.Username = strings.TrimSpace(data.Username)
	if err := s.validate.Struct(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var resp domain.AuthResponse
	if err := s.api.Post(ctx, "/auth/register", data, &resp); err != nil {
		s.logger.WithError(err).Error("registration failed")
		return nil, err
	}
	if err := s.handleAuthSuccess(ctx, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh rotates the token pair. Any failure after the request is sent logs
// the user out.
func (s *AuthService) Refresh(ctx context.Context) error {
	refreshToken, err := s.get(ctx, RefreshTokenKey)
	if err != nil {
		return fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	var resp domain.AuthResponse
	body := map[string]string{"refreshToken": refreshToken}
	if err := s.api.Post(ctx, "/auth/refresh", body, &resp); err != nil {
		s.Logout(ctx)
		return err
	}
	if err := s.handleAuthSuccess(ctx, &resp); err != nil {
		s.Logout(ctx)
		return err
	}
	return nil
}

// Logout clears both stored tokens and resets the session. It always succeeds.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.tokens.Delete(ctx, TokenKey, RefreshTokenKey); err != nil {
		s.logger.WithError(err).Warn("clear stored tokens")
	}
	s.session.Reset()
}

// Token returns the stored access token, or "" when there is none.
func (s *AuthService) Token(ctx context.Context) string {
	token, err := s.get(ctx, TokenKey)
	if err != nil {
		s.logger.WithError(err).Warn("read access token")
		return ""
	}
	return token
}

// Revalidate checks the stored access token again and publishes the result.
func (s *AuthService) Revalidate(ctx context.Context) bool {
	ok := false
	if token := s.Token(ctx); token != "" {
		if claims, err := decodeToken(token); err == nil {
			ok = !s.expired(claims)
		}
	}
	s.session.SetAuthenticated(ok)
	return ok
}

func (s *AuthService) CurrentUser() *domain.User {
	return s.session.CurrentUser()
}

func (s *AuthService) IsAuthenticated() bool {
	return s.session.IsAuthenticated()
}

func (s *AuthService) handleAuthSuccess(ctx context.Context, resp *domain.AuthResponse) error {
	if resp.Token == "" || resp.RefreshToken == "" {
		return ErrMissingTokens
	}
	if err := s.tokens.Set(ctx, TokenKey, resp.Token); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if err := s.tokens.Set(ctx, RefreshTokenKey, resp.RefreshToken); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	s.session.SignIn(resp.User)
	return nil
}

func (s *AuthService) get(ctx context.Context, key string) (string, error) {
	value, ok, err := s.tokens.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return value, nil
}

// expired treats a token without an exp claim as never expiring.
func (s *AuthService) expired(claims *tokenClaims) bool {
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Before(claims.ExpiresAt.Time)
}

// decodeToken reads the claims without verifying the signature; only the
// backend holds the key.
func decodeToken(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenDecode, err)
	}
	return claims, nil
}
