package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nina-movie/internal/apiclient"
	"nina-movie/internal/domain"
	"nina-movie/internal/guard"
	"nina-movie/internal/service"
)

const (
	loginFailedMessage    = "Login failed. Please try again."
	registerFailedMessage = "Registration failed. Please try again."
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type registerRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Username        string `json:"username" binding:"required,min=3"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
}

// AuthResult tells the client where to go once signed in.
type AuthResult struct {
	User       *domain.User `json:"user"`
	ExpiresIn  int64        `json:"expiresIn"`
	RedirectTo string       `json:"redirectTo"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), domain.LoginCredentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.authFailure(c, err, http.StatusUnauthorized, loginFailedMessage)
		return
	}
	c.JSON(http.StatusOK, AuthResult{User: resp.User, ExpiresIn: resp.ExpiresIn, RedirectTo: guard.RootPath})
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), domain.RegisterData{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Username:        req.Username,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		h.authFailure(c, err, http.StatusBadRequest, registerFailedMessage)
		return
	}
	c.JSON(http.StatusOK, AuthResult{User: resp.User, ExpiresIn: resp.ExpiresIn, RedirectTo: guard.RootPath})
}

func (h *Handler) logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"redirectTo": guard.LoginPath})
}

// authFailure reports the server's message when it sent one, else fallback.
func (h *Handler) authFailure(c *gin.Context, err error, status int, fallback string) {
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	message := fallback
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}
	c.JSON(status, gin.H{"error": message})
}
