package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"socialhub/internal/api/middleware"
	"socialhub/internal/domain"
	"socialhub/pkg/logger"
	"socialhub/pkg/utils"
)

type ScreenShareHandler struct {
	sessions domain.ScreenShareRepository
	log      logger.Logger
}

func NewScreenShareHandler(sessions domain.ScreenShareRepository, log logger.Logger) *ScreenShareHandler {
	return &ScreenShareHandler{sessions: sessions, log: log}
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

func (h *ScreenShareHandler) CreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	session := &domain.ScreenShareSession{
		ID:        utils.NewID(),
		HostID:    middleware.UserID(c),
		Title:     req.Title,
		IsActive:  true,
		RoomCode:  utils.NewRoomCode(),
		CreatedAt: time.Now(),
	}

	if err := h.sessions.CreateSession(c.Request().Context(), session); err != nil {
		h.log.Error("Failed to create screen share session", "host_id", session.HostID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create session"})
	}
	return c.JSON(http.StatusCreated, session)
}

func (h *ScreenShareHandler) JoinSession(c echo.Context) error {
	sessionID := c.Param("sessionId")

	err := h.sessions.JoinSession(c.Request().Context(), sessionID, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Session not found"})
		}
		h.log.Error("Failed to join session", "session_id", sessionID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to join session"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "joined"})
}

func (h *ScreenShareHandler) ActiveSessions(c echo.Context) error {
	sessions, err := h.sessions.ActiveSessions(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to fetch sessions", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch sessions"})
	}
	return c.JSON(http.StatusOK, sessions)
}
