package realtime

import (
	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

// AuctionFeed pushes accepted bids, delivered over the event bus from the
// API service, to connections watching an auction.
type AuctionFeed struct {
	rooms domain.RoomMembership
	log   logger.Logger
}

func NewAuctionFeed(rooms domain.RoomMembership, log logger.Logger) *AuctionFeed {
	return &AuctionFeed{rooms: rooms, log: log}
}

func (f *AuctionFeed) Watch(conn domain.Connection, auctionID string) {
	f.rooms.Join(conn, AuctionChannel(auctionID))
}

func (f *AuctionFeed) Unwatch(conn domain.Connection, auctionID string) {
	f.rooms.Leave(conn, AuctionChannel(auctionID))
}

// HandleBidEvent satisfies domain.BidEventHandler.
func (f *AuctionFeed) HandleBidEvent(event *domain.BidEvent) error {
	for _, sub := range f.rooms.Subscribers(AuctionChannel(event.AuctionID)) {
		if err := sub.Send(domain.EventAuctionBid, event); err != nil {
			f.log.Warn("Failed to deliver bid event",
				"auction_id", event.AuctionID, "conn_id", sub.ID(), "error", err)
		}
	}
	return nil
}
