package services

import (
	"context"
	"time"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
	"socialhub/pkg/utils"
)

// AuctionService fronts the bid sequencer: the repository serializes the
// bid append plus price update, and accepted bids go out on the event bus
// so the realtime service can fan them out to watchers.
type AuctionService struct {
	auctions domain.AuctionRepository
	eventPub domain.BidEventPublisher
	log      logger.Logger
}

func NewAuctionService(
	auctions domain.AuctionRepository,
	eventPub domain.BidEventPublisher,
	log logger.Logger,
) *AuctionService {
	return &AuctionService{
		auctions: auctions,
		eventPub: eventPub,
		log:      log,
	}
}

func (s *AuctionService) CreateAuction(ctx context.Context, createdByID, title, description, imageURL string,
	startingPrice int64, buyNowPrice *int64, endsAt time.Time) (*domain.Auction, error) {

	auction := &domain.Auction{
		ID:            utils.NewID(),
		CreatedByID:   createdByID,
		Title:         title,
		Description:   description,
		ImageURL:      imageURL,
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		BuyNowPrice:   buyNowPrice,
		EndsAt:        endsAt,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}

	if err := s.auctions.CreateAuction(ctx, auction); err != nil {
		return nil, err
	}

	s.log.Info("Auction created", "auction_id", auction.ID, "ends_at", auction.EndsAt)
	return auction, nil
}

func (s *AuctionService) ActiveAuctions(ctx context.Context) ([]*domain.Auction, error) {
	return s.auctions.ActiveAuctions(ctx)
}

func (s *AuctionService) BidHistory(ctx context.Context, auctionID string) ([]*domain.AuctionBid, error) {
	return s.auctions.BidHistory(ctx, auctionID)
}

// PlaceBid delegates to the transactional repository; nothing commits
// partially. Publishing is best-effort: a bus failure does not undo an
// accepted bid.
func (s *AuctionService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (*domain.AuctionBid, error) {
	bid, err := s.auctions.PlaceBid(ctx, auctionID, bidderID, amount)
	if err != nil {
		return nil, err
	}

	s.log.Info("Bid accepted", "auction_id", auctionID, "bidder_id", bidderID, "amount", amount)

	if s.eventPub != nil {
		event := &domain.BidEvent{
			AuctionID: bid.AuctionID,
			BidderID:  bid.BidderID,
			Amount:    bid.Amount,
			Timestamp: bid.CreatedAt,
		}
		if err := s.eventPub.PublishBidEvent(ctx, event); err != nil {
			s.log.Error("Failed to publish bid event", "auction_id", auctionID, "error", err)
		}
	}

	return bid, nil
}
