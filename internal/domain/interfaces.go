package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInactiveAuction = errors.New("auction is not active")
	ErrLowBid          = errors.New("bid does not exceed current price")
)

// Connection is a live transport handle. Implementations must make Send
// safe for concurrent use; the coordinator fans out from multiple handlers.
type Connection interface {
	ID() string
	Send(event EventType, payload interface{}) error
	Close() error
}

// Registry is the authoritative connection<->identity mapping. A later
// registration for the same user supersedes the earlier connection.
type Registry interface {
	Register(conn Connection, userID string)
	Unregister(conn Connection)
	UserByConn(conn Connection) (string, bool)
	ConnByUser(userID string) (Connection, bool)
}

// RoomMembership tracks which connections subscribe to which channel.
// Channels come into existence on first join and vanish on last leave.
type RoomMembership interface {
	Join(conn Connection, channel string)
	Leave(conn Connection, channel string)
	Subscribers(channel string) []Connection
	DropAll(conn Connection)
}

// Repository interfaces consumed from storage.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpsertUser(ctx context.Context, user *User) error
	UpdateOnlineStatus(ctx context.Context, id string, online bool) error
}

type FriendshipRepository interface {
	CreateRequest(ctx context.Context, requesterID, receiverID string) (*Friendship, error)
	PendingRequests(ctx context.Context, userID string) ([]*Friendship, error)
	Respond(ctx context.Context, friendshipID string, status FriendshipStatus) error
	Friends(ctx context.Context, userID string) ([]*User, error)
}

type GroupRepository interface {
	CreateGroup(ctx context.Context, group *Group) error
	UserGroups(ctx context.Context, userID string) ([]*Group, error)
	AddMember(ctx context.Context, groupID, userID string, role GroupRole) error
}

type ChatRepository interface {
	GetOrCreatePrivateChat(ctx context.Context, userID1, userID2 string) (string, error)
	RoomMessages(ctx context.Context, chatRoomID string, limit int) ([]*Message, error)
	SaveMessage(ctx context.Context, draft *MessageDraft) (*Message, error)
	UserChatRooms(ctx context.Context, userID string) ([]*ChatRoom, error)
}

type StoryRepository interface {
	CreateStory(ctx context.Context, story *Story) error
	ActiveStories(ctx context.Context) ([]*Story, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type PollRepository interface {
	CreatePoll(ctx context.Context, poll *Poll) error
	ListPolls(ctx context.Context, limit int) ([]*Poll, error)
	Vote(ctx context.Context, pollID, userID string, optionIndex int) error
}

type AuctionRepository interface {
	CreateAuction(ctx context.Context, auction *Auction) error
	GetAuction(ctx context.Context, auctionID string) (*Auction, error)
	ActiveAuctions(ctx context.Context) ([]*Auction, error)
	// PlaceBid appends a bid row and updates the auction's current price
	// as one transaction. No observer may see one change without the other.
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (*AuctionBid, error)
	BidHistory(ctx context.Context, auctionID string) ([]*AuctionBid, error)
	DeactivateEnded(ctx context.Context, now time.Time) (int64, error)
}

type ScreenShareRepository interface {
	CreateSession(ctx context.Context, session *ScreenShareSession) error
	JoinSession(ctx context.Context, sessionID, userID string) error
	ActiveSessions(ctx context.Context) ([]*ScreenShareSession, error)
}

type CredentialRepository interface {
	SaveCredentials(ctx context.Context, userID, passwordHash string) error
	PasswordHash(ctx context.Context, userID string) (string, error)
}

// PresenceCache mirrors the persisted online flag into a fast store so
// other services can read it without hitting MySQL.
type PresenceCache interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string) error
	IsOnline(ctx context.Context, userID string) (bool, error)
}

type BidEventHandler func(event *BidEvent) error

type BidEventPublisher interface {
	PublishBidEvent(ctx context.Context, event *BidEvent) error
}

type BidEventSubscriber interface {
	SubscribeToBidEvents(ctx context.Context, handler BidEventHandler) error
}
