package realtime

import (
	"context"
	"encoding/json"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

// IdentityResolver turns an authenticate payload into a verified user id.
type IdentityResolver interface {
	Resolve(payload domain.AuthenticatePayload) (string, error)
}

// Dispatcher decodes inbound frames and routes them to the coordinator
// components. One read loop calls HandleFrame per connection, so events
// from a single connection are processed in arrival order; different
// connections dispatch in parallel.
type Dispatcher struct {
	presence  *Presence
	chat      *ChatRelay
	signaling *Signaling
	auctions  *AuctionFeed
	rooms     domain.RoomMembership
	identity  IdentityResolver
	log       logger.Logger
}

func NewDispatcher(
	presence *Presence,
	chat *ChatRelay,
	signaling *Signaling,
	auctions *AuctionFeed,
	rooms domain.RoomMembership,
	identity IdentityResolver,
	log logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		presence:  presence,
		chat:      chat,
		signaling: signaling,
		auctions:  auctions,
		rooms:     rooms,
		identity:  identity,
		log:       log,
	}
}

func (d *Dispatcher) HandleFrame(ctx context.Context, conn domain.Connection, data []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		d.log.Warn("Invalid frame", "conn_id", conn.ID(), "error", err)
		return
	}

	switch env.Event {
	case domain.EventAuthenticate:
		var payload domain.AuthenticatePayload
		if !d.decode(conn, env, &payload) {
			return
		}
		userID, err := d.identity.Resolve(payload)
		if err != nil {
			d.log.Warn("Authentication rejected", "conn_id", conn.ID(), "error", err)
			d.sendError(conn, "authentication failed")
			return
		}
		d.presence.Connected(ctx, conn, userID)

	case domain.EventJoinChat:
		var payload domain.ChatRoomPayload
		if d.decode(conn, env, &payload) {
			d.chat.Join(conn, payload.ChatRoomID)
		}

	case domain.EventLeaveChat:
		var payload domain.ChatRoomPayload
		if d.decode(conn, env, &payload) {
			d.chat.Leave(conn, payload.ChatRoomID)
		}

	case domain.EventSendMessage:
		var draft domain.MessageDraft
		if d.decode(conn, env, &draft) {
			d.chat.Send(ctx, conn, draft)
		}

	case domain.EventTypingStart:
		var payload domain.TypingPayload
		if d.decode(conn, env, &payload) {
			d.chat.Typing(conn, payload, true)
		}

	case domain.EventTypingStop:
		var payload domain.TypingPayload
		if d.decode(conn, env, &payload) {
			d.chat.Typing(conn, payload, false)
		}

	case domain.EventJoinScreenShare:
		var payload domain.SessionPayload
		if d.decode(conn, env, &payload) {
			d.signaling.JoinSession(conn, payload.SessionID)
		}

	case domain.EventLeaveScreenShare:
		var payload domain.SessionPayload
		if d.decode(conn, env, &payload) {
			d.signaling.LeaveSession(conn, payload.SessionID)
		}

	case domain.EventScreenSignal:
		var payload domain.ScreenSignalPayload
		if d.decode(conn, env, &payload) {
			d.signaling.ScreenSignal(conn, payload)
		}

	case domain.EventCallUser:
		var payload domain.CallOfferPayload
		if d.decode(conn, env, &payload) {
			d.signaling.CallUser(conn, payload)
		}

	case domain.EventAnswerCall:
		var payload domain.CallAnswerPayload
		if d.decode(conn, env, &payload) {
			d.signaling.AnswerCall(conn, payload)
		}

	case domain.EventIceCandidate:
		var payload domain.IceCandidatePayload
		if d.decode(conn, env, &payload) {
			d.signaling.IceCandidate(conn, payload)
		}

	case domain.EventEndCall:
		var payload domain.EndCallPayload
		if d.decode(conn, env, &payload) {
			d.signaling.EndCall(conn, payload)
		}

	case domain.EventWatchAuction:
		var payload domain.AuctionPayload
		if d.decode(conn, env, &payload) {
			d.auctions.Watch(conn, payload.AuctionID)
		}

	case domain.EventUnwatchAuction:
		var payload domain.AuctionPayload
		if d.decode(conn, env, &payload) {
			d.auctions.Unwatch(conn, payload.AuctionID)
		}

	default:
		d.log.Debug("Unknown event", "event", env.Event, "conn_id", conn.ID())
	}
}

// Disconnect clears every membership for the connection, then runs the
// offline presence transition.
func (d *Dispatcher) Disconnect(ctx context.Context, conn domain.Connection) {
	d.rooms.DropAll(conn)
	d.presence.Disconnected(ctx, conn)
}

func (d *Dispatcher) decode(conn domain.Connection, env domain.Envelope, out interface{}) bool {
	if err := json.Unmarshal(env.Data, out); err != nil {
		d.log.Warn("Invalid payload", "event", env.Event, "conn_id", conn.ID(), "error", err)
		return false
	}
	return true
}

func (d *Dispatcher) sendError(conn domain.Connection, msg string) {
	if err := conn.Send(domain.EventError, domain.ErrorEvent{Message: msg}); err != nil {
		d.log.Warn("Failed to deliver error event", "conn_id", conn.ID(), "error", err)
	}
}
