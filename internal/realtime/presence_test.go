package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/domain"
)

func newPresenceFixture() (*Presence, *Registry, *Rooms, *fakeUserRepo, *fakeFriendshipRepo, *fakePresenceCache) {
	registry := NewRegistry(nopLogger{})
	rooms := NewRooms()
	users := newFakeUserRepo()
	friendships := newFakeFriendshipRepo()
	cache := newFakePresenceCache()
	presence := NewPresence(registry, rooms, users, friendships, cache, nopLogger{})
	return presence, registry, rooms, users, friendships, cache
}

func TestPresence_Connected(t *testing.T) {
	presence, registry, rooms, users, friendships, cache := newPresenceFixture()
	ctx := context.Background()

	onlineFriend := newMockConn("friend-conn")
	registry.Register(onlineFriend, "friend1")
	friendships.friends["user1"] = []*domain.User{
		{ID: "friend1"},
		{ID: "friend2"}, // offline, no connection
	}

	conn := newMockConn("c1")
	presence.Connected(ctx, conn, "user1")

	got, ok := registry.ConnByUser("user1")
	require.True(t, ok)
	assert.Equal(t, "c1", got.ID())

	subs := rooms.Subscribers(UserChannel("user1"))
	require.Len(t, subs, 1)
	assert.Equal(t, "c1", subs[0].ID())

	assert.Equal(t, []bool{true}, users.flags("user1"))

	online, err := cache.IsOnline(ctx, "user1")
	require.NoError(t, err)
	assert.True(t, online)

	events := onlineFriend.received(domain.EventFriendOnline)
	require.Len(t, events, 1)
	assert.Equal(t, domain.PresenceEvent{UserID: "user1", IsOnline: true}, events[0].payload)
}

func TestPresence_ConnectedNoFriendsOnline(t *testing.T) {
	presence, _, _, users, friendships, _ := newPresenceFixture()

	friendships.friends["user1"] = []*domain.User{{ID: "friend1"}}

	conn := newMockConn("c1")
	presence.Connected(context.Background(), conn, "user1")

	// Nothing delivered anywhere, online flag still persisted.
	assert.Zero(t, conn.totalSent())
	assert.Equal(t, []bool{true}, users.flags("user1"))
}

func TestPresence_Disconnected(t *testing.T) {
	presence, registry, _, users, friendships, cache := newPresenceFixture()
	ctx := context.Background()

	onlineFriend := newMockConn("friend-conn")
	registry.Register(onlineFriend, "friend1")
	friendships.friends["user1"] = []*domain.User{{ID: "friend1"}}

	conn := newMockConn("c1")
	presence.Connected(ctx, conn, "user1")
	presence.Disconnected(ctx, conn)

	_, ok := registry.ConnByUser("user1")
	assert.False(t, ok)
	assert.Equal(t, []bool{true, false}, users.flags("user1"))

	online, err := cache.IsOnline(ctx, "user1")
	require.NoError(t, err)
	assert.False(t, online)

	events := onlineFriend.received(domain.EventFriendOnline)
	require.Len(t, events, 2)
	assert.Equal(t, domain.PresenceEvent{UserID: "user1", IsOnline: false}, events[1].payload)
}

func TestPresence_DisconnectedUnauthenticated(t *testing.T) {
	presence, _, _, users, _, _ := newPresenceFixture()

	conn := newMockConn("c1")
	presence.Disconnected(context.Background(), conn)

	// No status writes for a connection that never authenticated.
	assert.Empty(t, users.onlineFlags)
}

func TestPresence_NilCacheTolerated(t *testing.T) {
	registry := NewRegistry(nopLogger{})
	rooms := NewRooms()
	presence := NewPresence(registry, rooms, newFakeUserRepo(), newFakeFriendshipRepo(), nil, nopLogger{})

	conn := newMockConn("c1")
	presence.Connected(context.Background(), conn, "user1")
	presence.Disconnected(context.Background(), conn)
}
