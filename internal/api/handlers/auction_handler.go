package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"socialhub/internal/api/middleware"
	"socialhub/internal/domain"
	"socialhub/internal/services"
	"socialhub/pkg/logger"
)

type AuctionHandler struct {
	auctions *services.AuctionService
	log      logger.Logger
}

func NewAuctionHandler(auctions *services.AuctionService, log logger.Logger) *AuctionHandler {
	return &AuctionHandler{auctions: auctions, log: log}
}

type CreateAuctionRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
	StartingPrice int64     `json:"startingPrice"`
	BuyNowPrice   *int64    `json:"buyNowPrice"`
	EndsAt        time.Time `json:"endsAt"`
}

func (h *AuctionHandler) CreateAuction(c echo.Context) error {
	var req CreateAuctionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Title is required"})
	}
	if req.StartingPrice <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Starting price must be positive"})
	}
	if !req.EndsAt.After(time.Now()) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "End time must be in the future"})
	}

	auction, err := h.auctions.CreateAuction(c.Request().Context(), middleware.UserID(c),
		req.Title, req.Description, req.ImageURL, req.StartingPrice, req.BuyNowPrice, req.EndsAt)
	if err != nil {
		h.log.Error("Failed to create auction", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create auction"})
	}
	return c.JSON(http.StatusCreated, auction)
}

func (h *AuctionHandler) ActiveAuctions(c echo.Context) error {
	auctions, err := h.auctions.ActiveAuctions(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to fetch auctions", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch auctions"})
	}
	return c.JSON(http.StatusOK, auctions)
}

type PlaceBidRequest struct {
	Amount int64 `json:"amount"`
}

func (h *AuctionHandler) PlaceBid(c echo.Context) error {
	auctionID := c.Param("auctionId")

	var req PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bid amount must be positive"})
	}

	bid, err := h.auctions.PlaceBid(c.Request().Context(), auctionID, middleware.UserID(c), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Auction not found"})
		case errors.Is(err, domain.ErrInactiveAuction):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Auction is not active"})
		case errors.Is(err, domain.ErrLowBid):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Bid must exceed the current price"})
		default:
			h.log.Error("Failed to place bid", "auction_id", auctionID, "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to place bid"})
		}
	}
	return c.JSON(http.StatusCreated, bid)
}

func (h *AuctionHandler) BidHistory(c echo.Context) error {
	auctionID := c.Param("auctionId")

	bids, err := h.auctions.BidHistory(c.Request().Context(), auctionID)
	if err != nil {
		h.log.Error("Failed to fetch bid history", "auction_id", auctionID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch bid history"})
	}
	return c.JSON(http.StatusOK, bids)
}
