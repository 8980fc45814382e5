package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"socialhub/internal/api/middleware"
	"socialhub/internal/domain"
	"socialhub/pkg/logger"
	"socialhub/pkg/utils"
)

// SocialHandler covers friendships and groups.
type SocialHandler struct {
	friendships domain.FriendshipRepository
	groups      domain.GroupRepository
	log         logger.Logger
}

func NewSocialHandler(friendships domain.FriendshipRepository, groups domain.GroupRepository,
	log logger.Logger) *SocialHandler {
	return &SocialHandler{
		friendships: friendships,
		groups:      groups,
		log:         log,
	}
}

type FriendRequestBody struct {
	ReceiverID string `json:"receiverId"`
}

func (h *SocialHandler) SendFriendRequest(c echo.Context) error {
	userID := middleware.UserID(c)

	var req FriendRequestBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.ReceiverID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "receiverId is required"})
	}
	if req.ReceiverID == userID {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cannot send friend request to yourself"})
	}

	friendship, err := h.friendships.CreateRequest(c.Request().Context(), userID, req.ReceiverID)
	if err != nil {
		h.log.Error("Failed to create friend request", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send friend request"})
	}
	return c.JSON(http.StatusCreated, friendship)
}

func (h *SocialHandler) PendingFriendRequests(c echo.Context) error {
	requests, err := h.friendships.PendingRequests(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("Failed to fetch friend requests", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch friend requests"})
	}
	return c.JSON(http.StatusOK, requests)
}

type RespondFriendRequestBody struct {
	Status domain.FriendshipStatus `json:"status"`
}

func (h *SocialHandler) RespondToFriendRequest(c echo.Context) error {
	friendshipID := c.Param("friendshipId")

	var req RespondFriendRequestBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Status != domain.FriendshipAccepted && req.Status != domain.FriendshipDeclined {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Status must be accepted or declined"})
	}

	if err := h.friendships.Respond(c.Request().Context(), friendshipID, req.Status); err != nil {
		if err == domain.ErrNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "No pending request found"})
		}
		h.log.Error("Failed to respond to friend request", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to respond to friend request"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *SocialHandler) Friends(c echo.Context) error {
	friends, err := h.friendships.Friends(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("Failed to fetch friends", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch friends"})
	}
	return c.JSON(http.StatusOK, friends)
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	IsPrivate   bool   `json:"isPrivate"`
}

func (h *SocialHandler) CreateGroup(c echo.Context) error {
	var req CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	group := &domain.Group{
		ID:          utils.NewID(),
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedByID: middleware.UserID(c),
		IsPrivate:   req.IsPrivate,
		CreatedAt:   time.Now(),
	}

	if err := h.groups.CreateGroup(c.Request().Context(), group); err != nil {
		h.log.Error("Failed to create group", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create group"})
	}
	return c.JSON(http.StatusCreated, group)
}

func (h *SocialHandler) MyGroups(c echo.Context) error {
	groups, err := h.groups.UserGroups(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("Failed to fetch groups", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch groups"})
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *SocialHandler) JoinGroup(c echo.Context) error {
	groupID := c.Param("groupId")
	if err := h.groups.AddMember(c.Request().Context(), groupID, middleware.UserID(c), domain.GroupMember); err != nil {
		h.log.Error("Failed to join group", "group_id", groupID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to join group"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
