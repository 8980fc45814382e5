package realtime

import (
	"context"
	"strings"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

// ChatRelay persists inbound messages and fans them out to chat room
// subscribers. Typing indicators ride the same membership but are never
// persisted.
type ChatRelay struct {
	registry domain.Registry
	rooms    domain.RoomMembership
	messages domain.ChatRepository
	log      logger.Logger
}

func NewChatRelay(
	registry domain.Registry,
	rooms domain.RoomMembership,
	messages domain.ChatRepository,
	log logger.Logger,
) *ChatRelay {
	return &ChatRelay{
		registry: registry,
		rooms:    rooms,
		messages: messages,
		log:      log,
	}
}

func (c *ChatRelay) Join(conn domain.Connection, chatRoomID string) {
	c.rooms.Join(conn, ChatChannel(chatRoomID))
}

func (c *ChatRelay) Leave(conn domain.Connection, chatRoomID string) {
	c.rooms.Leave(conn, ChatChannel(chatRoomID))
}

// Send persists the draft, then broadcasts the canonical persisted copy to
// every room subscriber, the sender included. The sender id is taken from
// the Registry; the client-supplied value is never trusted for authorization.
// On persistence failure only the sending connection hears about it.
func (c *ChatRelay) Send(ctx context.Context, conn domain.Connection, draft domain.MessageDraft) {
	senderID, ok := c.registry.UserByConn(conn)
	if !ok {
		c.sendError(conn, "authenticate before sending messages")
		return
	}
	draft.SenderID = senderID

	if strings.TrimSpace(draft.Content) == "" {
		c.sendError(conn, "message content is required")
		return
	}
	if draft.MessageType == "" {
		draft.MessageType = domain.MessageText
	}

	message, err := c.messages.SaveMessage(ctx, &draft)
	if err != nil {
		c.log.Error("Failed to persist message",
			"chat_room_id", draft.ChatRoomID, "sender_id", senderID, "error", err)
		c.sendError(conn, "failed to send message")
		return
	}

	for _, sub := range c.rooms.Subscribers(ChatChannel(message.ChatRoomID)) {
		if err := sub.Send(domain.EventNewMessage, message); err != nil {
			c.log.Warn("Failed to deliver message",
				"chat_room_id", message.ChatRoomID, "conn_id", sub.ID(), "error", err)
		}
	}
}

// Typing broadcasts to the room minus the originating connection.
func (c *ChatRelay) Typing(conn domain.Connection, payload domain.TypingPayload, typing bool) {
	userID, ok := c.registry.UserByConn(conn)
	if !ok {
		return
	}

	event := domain.TypingEvent{
		UserID:   userID,
		UserName: payload.UserName,
		IsTyping: typing,
	}

	for _, sub := range c.rooms.Subscribers(ChatChannel(payload.ChatRoomID)) {
		if sub.ID() == conn.ID() {
			continue
		}
		if err := sub.Send(domain.EventUserTyping, event); err != nil {
			c.log.Warn("Failed to deliver typing event",
				"chat_room_id", payload.ChatRoomID, "conn_id", sub.ID(), "error", err)
		}
	}
}

func (c *ChatRelay) sendError(conn domain.Connection, msg string) {
	if err := conn.Send(domain.EventError, domain.ErrorEvent{Message: msg}); err != nil {
		c.log.Warn("Failed to deliver error event", "conn_id", conn.ID(), "error", err)
	}
}
