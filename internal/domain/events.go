package domain

import "encoding/json"

// EventType names a frame on the realtime wire. Inbound and outbound
// events share one envelope: {"event": "...", "data": {...}}.
type EventType string

// Inbound events.
const (
	EventAuthenticate     EventType = "authenticate"
	EventJoinChat         EventType = "join_chat"
	EventLeaveChat        EventType = "leave_chat"
	EventSendMessage      EventType = "send_message"
	EventTypingStart      EventType = "typing_start"
	EventTypingStop       EventType = "typing_stop"
	EventJoinScreenShare  EventType = "join_screen_share"
	EventLeaveScreenShare EventType = "leave_screen_share"
	EventScreenSignal     EventType = "screen_share_signal"
	EventCallUser         EventType = "call_user"
	EventAnswerCall       EventType = "answer_call"
	EventIceCandidate     EventType = "ice_candidate"
	EventEndCall          EventType = "end_call"
	EventWatchAuction     EventType = "watch_auction"
	EventUnwatchAuction   EventType = "unwatch_auction"
)

// Outbound events.
const (
	EventNewMessage   EventType = "new_message"
	EventUserTyping   EventType = "user_typing"
	EventFriendOnline EventType = "friend_online"
	EventIncomingCall EventType = "incoming_call"
	EventCallAnswered EventType = "call_answered"
	EventCallEnded    EventType = "call_ended"
	EventAuctionBid   EventType = "auction_bid"
	EventError        EventType = "error"
)

type Envelope struct {
	Event EventType       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type AuthenticatePayload struct {
	UserID string `json:"userId,omitempty"`
	Token  string `json:"token,omitempty"`
}

type ChatRoomPayload struct {
	ChatRoomID string `json:"chatRoomId"`
}

type TypingPayload struct {
	ChatRoomID string `json:"chatRoomId"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName,omitempty"`
}

type SessionPayload struct {
	SessionID string `json:"sessionId"`
}

type AuctionPayload struct {
	AuctionID string `json:"auctionId"`
}

// ScreenSignalPayload carries an opaque signaling blob. TargetID empty
// means broadcast to the session; otherwise point-to-point.
type ScreenSignalPayload struct {
	SessionID string          `json:"sessionId"`
	Signal    json.RawMessage `json:"signal"`
	TargetID  string          `json:"targetId,omitempty"`
}

type CallOfferPayload struct {
	TargetUserID string          `json:"targetUserId"`
	Offer        json.RawMessage `json:"offer"`
}

type CallAnswerPayload struct {
	CallerID string          `json:"callerId"`
	Answer   json.RawMessage `json:"answer"`
}

type IceCandidatePayload struct {
	TargetUserID string          `json:"targetUserId"`
	Candidate    json.RawMessage `json:"candidate"`
}

type EndCallPayload struct {
	TargetUserID string `json:"targetUserId"`
}

type PresenceEvent struct {
	UserID   string `json:"userId"`
	IsOnline bool   `json:"isOnline"`
}

type TypingEvent struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
	IsTyping bool   `json:"isTyping"`
}

type IncomingCallEvent struct {
	CallerID string          `json:"callerId"`
	Offer    json.RawMessage `json:"offer"`
}

type CallAnsweredEvent struct {
	Answer json.RawMessage `json:"answer"`
}

type IceCandidateEvent struct {
	Candidate json.RawMessage `json:"candidate"`
	SenderID  string          `json:"senderId"`
}

type ScreenSignalEvent struct {
	Signal   json.RawMessage `json:"signal"`
	SenderID string          `json:"senderId"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}
