package realtime

import (
	"context"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

// Presence announces online/offline transitions to a user's accepted
// friends. Never a global broadcast: each event targets one friend's
// connection, resolved through the Registry.
type Presence struct {
	registry    domain.Registry
	rooms       domain.RoomMembership
	users       domain.UserRepository
	friendships domain.FriendshipRepository
	cache       domain.PresenceCache
	log         logger.Logger
}

func NewPresence(
	registry domain.Registry,
	rooms domain.RoomMembership,
	users domain.UserRepository,
	friendships domain.FriendshipRepository,
	cache domain.PresenceCache,
	log logger.Logger,
) *Presence {
	return &Presence{
		registry:    registry,
		rooms:       rooms,
		users:       users,
		friendships: friendships,
		cache:       cache,
		log:         log,
	}
}

// Connected registers the connection, joins the user's personal channel,
// persists the online flag, and notifies online friends. Both the flag
// write and the notifications complete before this returns.
func (p *Presence) Connected(ctx context.Context, conn domain.Connection, userID string) {
	p.registry.Register(conn, userID)
	p.rooms.Join(conn, UserChannel(userID))

	if err := p.users.UpdateOnlineStatus(ctx, userID, true); err != nil {
		p.log.Error("Failed to persist online status", "user_id", userID, "error", err)
	}
	if p.cache != nil {
		if err := p.cache.SetOnline(ctx, userID); err != nil {
			p.log.Warn("Failed to cache online status", "user_id", userID, "error", err)
		}
	}

	p.notifyFriends(ctx, userID, true)
}

// Disconnected notifies friends and removes the Registry mapping. Safe to
// call for connections that never authenticated.
func (p *Presence) Disconnected(ctx context.Context, conn domain.Connection) {
	userID, ok := p.registry.UserByConn(conn)
	if !ok {
		return
	}

	if err := p.users.UpdateOnlineStatus(ctx, userID, false); err != nil {
		p.log.Error("Failed to persist offline status", "user_id", userID, "error", err)
	}
	if p.cache != nil {
		if err := p.cache.SetOffline(ctx, userID); err != nil {
			p.log.Warn("Failed to cache offline status", "user_id", userID, "error", err)
		}
	}

	p.notifyFriends(ctx, userID, false)
	p.registry.Unregister(conn)
}

func (p *Presence) notifyFriends(ctx context.Context, userID string, online bool) {
	friends, err := p.friendships.Friends(ctx, userID)
	if err != nil {
		p.log.Error("Failed to load friends for presence", "user_id", userID, "error", err)
		return
	}

	event := domain.PresenceEvent{UserID: userID, IsOnline: online}
	for _, friend := range friends {
		conn, ok := p.registry.ConnByUser(friend.ID)
		if !ok {
			continue
		}
		if err := conn.Send(domain.EventFriendOnline, event); err != nil {
			p.log.Warn("Failed to deliver presence event",
				"user_id", userID, "friend_id", friend.ID, "error", err)
		}
	}
}
