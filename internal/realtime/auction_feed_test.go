package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/domain"
)

func TestAuctionFeed_HandleBidEvent(t *testing.T) {
	rooms := NewRooms()
	feed := NewAuctionFeed(rooms, nopLogger{})

	watcher1 := newMockConn("c1")
	watcher2 := newMockConn("c2")
	other := newMockConn("c3")

	feed.Watch(watcher1, "au1")
	feed.Watch(watcher2, "au1")
	feed.Watch(other, "au2")

	event := &domain.BidEvent{
		AuctionID: "au1",
		BidderID:  "user1",
		Amount:    1500,
		Timestamp: time.Now(),
	}
	require.NoError(t, feed.HandleBidEvent(event))

	for _, watcher := range []*mockConn{watcher1, watcher2} {
		events := watcher.received(domain.EventAuctionBid)
		require.Len(t, events, 1, watcher.ID())
		assert.Equal(t, event, events[0].payload)
	}
	assert.Zero(t, other.totalSent())
}

func TestAuctionFeed_Unwatch(t *testing.T) {
	rooms := NewRooms()
	feed := NewAuctionFeed(rooms, nopLogger{})

	watcher := newMockConn("c1")
	feed.Watch(watcher, "au1")
	feed.Unwatch(watcher, "au1")

	require.NoError(t, feed.HandleBidEvent(&domain.BidEvent{AuctionID: "au1", Amount: 100}))
	assert.Zero(t, watcher.totalSent())
}

func TestAuctionFeed_NoWatchers(t *testing.T) {
	feed := NewAuctionFeed(NewRooms(), nopLogger{})
	assert.NoError(t, feed.HandleBidEvent(&domain.BidEvent{AuctionID: "ghost"}))
}
