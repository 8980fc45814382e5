package domain

import (
	"time"
)

type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	ProfileImageURL string     `json:"profileImageUrl,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	IsOnline        bool       `json:"isOnline"`
	LastSeen        *time.Time `json:"lastSeen,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipDeclined FriendshipStatus = "declined"
)

type Friendship struct {
	ID          string           `json:"id"`
	RequesterID string           `json:"requesterId"`
	ReceiverID  string           `json:"receiverId"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedByID string    `json:"createdById"`
	IsPrivate   bool      `json:"isPrivate"`
	CreatedAt   time.Time `json:"createdAt"`
}

type GroupRole string

const (
	GroupAdmin     GroupRole = "admin"
	GroupModerator GroupRole = "moderator"
	GroupMember    GroupRole = "member"
)

type GroupMembership struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"groupId"`
	UserID   string    `json:"userId"`
	Role     GroupRole `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type ChatRoomType string

const (
	ChatPrivate ChatRoomType = "private"
	ChatGroup   ChatRoomType = "group"
)

type ChatRoom struct {
	ID        string       `json:"id"`
	Type      ChatRoomType `json:"type"`
	GroupID   string       `json:"groupId,omitempty"`
	Name      string       `json:"name,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageFile  MessageType = "file"
)

// Message is immutable once persisted; there is no edit or delete path.
type Message struct {
	ID          string      `json:"id"`
	ChatRoomID  string      `json:"chatRoomId"`
	SenderID    string      `json:"senderId"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"messageType"`
	FileURL     string      `json:"fileUrl,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// MessageDraft is what a client submits; the server assigns ID and CreatedAt.
type MessageDraft struct {
	ChatRoomID  string      `json:"chatRoomId"`
	SenderID    string      `json:"senderId"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"messageType,omitempty"`
	FileURL     string      `json:"fileUrl,omitempty"`
}

type Story struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type Poll struct {
	ID          string     `json:"id"`
	CreatedByID string     `json:"createdById"`
	Question    string     `json:"question"`
	Options     []string   `json:"options"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	IsAnonymous bool       `json:"isAnonymous"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type PollVote struct {
	ID             string    `json:"id"`
	PollID         string    `json:"pollId"`
	UserID         string    `json:"userId"`
	SelectedOption int       `json:"selectedOption"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Auction.CurrentPrice is a denormalized cache of the latest accepted bid
// (or StartingPrice before the first bid). It must only ever change inside
// the same transaction that inserts the corresponding AuctionBid row.
type Auction struct {
	ID            string    `json:"id"`
	CreatedByID   string    `json:"createdById"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	StartingPrice int64     `json:"startingPrice"`
	CurrentPrice  int64     `json:"currentPrice"`
	BuyNowPrice   *int64    `json:"buyNowPrice,omitempty"`
	EndsAt        time.Time `json:"endsAt"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

type AuctionBid struct {
	ID        string    `json:"id"`
	AuctionID string    `json:"auctionId"`
	BidderID  string    `json:"bidderId"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

type ScreenShareSession struct {
	ID        string    `json:"id"`
	HostID    string    `json:"hostId"`
	Title     string    `json:"title,omitempty"`
	IsActive  bool      `json:"isActive"`
	RoomCode  string    `json:"roomCode"`
	CreatedAt time.Time `json:"createdAt"`
}

// BidEvent is published on the event bus after a bid transaction commits.
type BidEvent struct {
	AuctionID string    `json:"auction_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
