package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"socialhub/internal/api/middleware"
	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

type ChatHandler struct {
	chats domain.ChatRepository
	log   logger.Logger
}

func NewChatHandler(chats domain.ChatRepository, log logger.Logger) *ChatHandler {
	return &ChatHandler{chats: chats, log: log}
}

func (h *ChatHandler) MyChats(c echo.Context) error {
	chats, err := h.chats.UserChatRooms(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("Failed to fetch chats", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch chats"})
	}
	return c.JSON(http.StatusOK, chats)
}

type PrivateChatRequest struct {
	OtherUserID string `json:"otherUserId"`
}

func (h *ChatHandler) CreatePrivateChat(c echo.Context) error {
	var req PrivateChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.OtherUserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "otherUserId is required"})
	}

	chatRoomID, err := h.chats.GetOrCreatePrivateChat(c.Request().Context(), middleware.UserID(c), req.OtherUserID)
	if err != nil {
		h.log.Error("Failed to create private chat", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create private chat"})
	}
	return c.JSON(http.StatusOK, map[string]string{"chatRoomId": chatRoomID})
}

func (h *ChatHandler) Messages(c echo.Context) error {
	chatRoomID := c.Param("chatRoomId")

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid limit"})
		}
		limit = parsed
	}

	messages, err := h.chats.RoomMessages(c.Request().Context(), chatRoomID, limit)
	if err != nil {
		h.log.Error("Failed to fetch messages", "chat_room_id", chatRoomID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch messages"})
	}
	return c.JSON(http.StatusOK, messages)
}
