package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRooms_JoinAndSubscribers(t *testing.T) {
	rooms := NewRooms()
	a := newMockConn("a")
	b := newMockConn("b")

	rooms.Join(a, ChatChannel("room1"))
	rooms.Join(b, ChatChannel("room1"))
	rooms.Join(a, ChatChannel("room2"))

	assert.Len(t, rooms.Subscribers(ChatChannel("room1")), 2)
	assert.Len(t, rooms.Subscribers(ChatChannel("room2")), 1)
	assert.Nil(t, rooms.Subscribers(ChatChannel("empty")))
}

func TestRooms_DoubleJoinIsIdempotent(t *testing.T) {
	rooms := NewRooms()
	a := newMockConn("a")

	rooms.Join(a, ChatChannel("room1"))
	rooms.Join(a, ChatChannel("room1"))

	assert.Len(t, rooms.Subscribers(ChatChannel("room1")), 1)
}

func TestRooms_Leave(t *testing.T) {
	rooms := NewRooms()
	a := newMockConn("a")
	b := newMockConn("b")

	rooms.Join(a, ChatChannel("room1"))
	rooms.Join(b, ChatChannel("room1"))
	rooms.Leave(a, ChatChannel("room1"))

	subs := rooms.Subscribers(ChatChannel("room1"))
	assert.Len(t, subs, 1)
	assert.Equal(t, "b", subs[0].ID())

	// Leaving a channel never joined is a no-op.
	rooms.Leave(a, ChatChannel("room1"))
	rooms.Leave(a, ChatChannel("never-joined"))
}

func TestRooms_DropAll(t *testing.T) {
	rooms := NewRooms()
	a := newMockConn("a")
	b := newMockConn("b")

	rooms.Join(a, ChatChannel("room1"))
	rooms.Join(a, ScreenChannel("s1"))
	rooms.Join(a, AuctionChannel("au1"))
	rooms.Join(b, ChatChannel("room1"))

	rooms.DropAll(a)

	assert.Len(t, rooms.Subscribers(ChatChannel("room1")), 1)
	assert.Nil(t, rooms.Subscribers(ScreenChannel("s1")))
	assert.Nil(t, rooms.Subscribers(AuctionChannel("au1")))
}

func TestChannelKeys(t *testing.T) {
	assert.Equal(t, "user:u1", UserChannel("u1"))
	assert.Equal(t, "chat:r1", ChatChannel("r1"))
	assert.Equal(t, "screen:s1", ScreenChannel("s1"))
	assert.Equal(t, "auction:a1", AuctionChannel("a1"))
}
