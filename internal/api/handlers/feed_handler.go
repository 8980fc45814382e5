package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"socialhub/internal/api/middleware"
	"socialhub/internal/domain"
	"socialhub/pkg/logger"
	"socialhub/pkg/utils"
)

const storyTTL = 24 * time.Hour

// FeedHandler serves the ephemeral content surfaces: stories and polls.
type FeedHandler struct {
	stories domain.StoryRepository
	polls   domain.PollRepository
	log     logger.Logger
}

func NewFeedHandler(stories domain.StoryRepository, polls domain.PollRepository, log logger.Logger) *FeedHandler {
	return &FeedHandler{stories: stories, polls: polls, log: log}
}

type CreateStoryRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

func (h *FeedHandler) CreateStory(c echo.Context) error {
	var req CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Content) == "" && req.ImageURL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Story needs content or an image"})
	}

	now := time.Now()
	story := &domain.Story{
		ID:        utils.NewID(),
		UserID:    middleware.UserID(c),
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		ExpiresAt: now.Add(storyTTL),
		CreatedAt: now,
	}

	if err := h.stories.CreateStory(c.Request().Context(), story); err != nil {
		h.log.Error("Failed to create story", "user_id", story.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create story"})
	}
	return c.JSON(http.StatusCreated, story)
}

func (h *FeedHandler) ActiveStories(c echo.Context) error {
	stories, err := h.stories.ActiveStories(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to fetch stories", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch stories"})
	}
	return c.JSON(http.StatusOK, stories)
}

type CreatePollRequest struct {
	Question    string     `json:"question"`
	Options     []string   `json:"options"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	IsAnonymous bool       `json:"isAnonymous"`
}

func (h *FeedHandler) CreatePoll(c echo.Context) error {
	var req CreatePollRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Question) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Question is required"})
	}
	if len(req.Options) < 2 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Poll needs at least two options"})
	}

	poll := &domain.Poll{
		ID:          utils.NewID(),
		CreatedByID: middleware.UserID(c),
		Question:    req.Question,
		Options:     req.Options,
		ExpiresAt:   req.ExpiresAt,
		IsAnonymous: req.IsAnonymous,
		CreatedAt:   time.Now(),
	}

	if err := h.polls.CreatePoll(c.Request().Context(), poll); err != nil {
		h.log.Error("Failed to create poll", "user_id", poll.CreatedByID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create poll"})
	}
	return c.JSON(http.StatusCreated, poll)
}

func (h *FeedHandler) ListPolls(c echo.Context) error {
	polls, err := h.polls.ListPolls(c.Request().Context(), 0)
	if err != nil {
		h.log.Error("Failed to fetch polls", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch polls"})
	}
	return c.JSON(http.StatusOK, polls)
}

type VoteRequest struct {
	OptionIndex int `json:"optionIndex"`
}

func (h *FeedHandler) Vote(c echo.Context) error {
	pollID := c.Param("pollId")

	var req VoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.OptionIndex < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid option index"})
	}

	err := h.polls.Vote(c.Request().Context(), pollID, middleware.UserID(c), req.OptionIndex)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Poll not found"})
		}
		h.log.Error("Failed to record vote", "poll_id", pollID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record vote"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "recorded"})
}
