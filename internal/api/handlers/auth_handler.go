package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"socialhub/internal/api/middleware"
	"socialhub/internal/auth"
	"socialhub/internal/domain"
	"socialhub/pkg/logger"
	"socialhub/pkg/utils"
)

type AuthHandler struct {
	users       domain.UserRepository
	credentials domain.CredentialRepository
	tokens      *auth.Tokens
	log         logger.Logger
}

func NewAuthHandler(users domain.UserRepository, credentials domain.CredentialRepository,
	tokens *auth.Tokens, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		log:         log,
	}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and a password of at least 8 characters are required"})
	}

	if _, err := h.users.GetUserByEmail(c.Request().Context(), req.Email); err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Email already registered"})
	} else if !errors.Is(err, domain.ErrNotFound) {
		h.log.Error("Failed to check email", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to register"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("Failed to hash password", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to register"})
	}

	user := &domain.User{
		ID:        utils.NewID(),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	ctx := c.Request().Context()
	if err := h.users.UpsertUser(ctx, user); err != nil {
		h.log.Error("Failed to create user", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to register"})
	}
	if err := h.credentials.SaveCredentials(ctx, user.ID, string(hash)); err != nil {
		h.log.Error("Failed to save credentials", "user_id", user.ID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to register"})
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error("Failed to issue token", "user_id", user.ID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to register"})
	}

	return c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	ctx := c.Request().Context()
	user, err := h.users.GetUserByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	hash, err := h.credentials.PasswordHash(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error("Failed to issue token", "user_id", user.ID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to login"})
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) CurrentUser(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		h.log.Error("Failed to fetch user", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch user"})
	}
	return c.JSON(http.StatusOK, user)
}
