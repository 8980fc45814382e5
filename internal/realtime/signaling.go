package realtime

import (
	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

// Signaling is a stateless forwarding layer for peer-connection payloads:
// call offers, answers, ICE candidates, call teardown, screen-share
// signals. Payloads are opaque; nothing is validated, persisted, or
// retried. An unknown target is a normal race (the peer just left) and is
// dropped without telling the sender.
type Signaling struct {
	registry domain.Registry
	rooms    domain.RoomMembership
	log      logger.Logger
}

func NewSignaling(registry domain.Registry, rooms domain.RoomMembership, log logger.Logger) *Signaling {
	return &Signaling{registry: registry, rooms: rooms, log: log}
}

func (s *Signaling) JoinSession(conn domain.Connection, sessionID string) {
	s.rooms.Join(conn, ScreenChannel(sessionID))
}

func (s *Signaling) LeaveSession(conn domain.Connection, sessionID string) {
	s.rooms.Leave(conn, ScreenChannel(sessionID))
}

func (s *Signaling) CallUser(conn domain.Connection, payload domain.CallOfferPayload) {
	callerID, ok := s.registry.UserByConn(conn)
	if !ok {
		return
	}
	s.sendToUser(payload.TargetUserID, domain.EventIncomingCall, domain.IncomingCallEvent{
		CallerID: callerID,
		Offer:    payload.Offer,
	})
}

func (s *Signaling) AnswerCall(conn domain.Connection, payload domain.CallAnswerPayload) {
	if _, ok := s.registry.UserByConn(conn); !ok {
		return
	}
	s.sendToUser(payload.CallerID, domain.EventCallAnswered, domain.CallAnsweredEvent{
		Answer: payload.Answer,
	})
}

func (s *Signaling) IceCandidate(conn domain.Connection, payload domain.IceCandidatePayload) {
	senderID, ok := s.registry.UserByConn(conn)
	if !ok {
		return
	}
	s.sendToUser(payload.TargetUserID, domain.EventIceCandidate, domain.IceCandidateEvent{
		Candidate: payload.Candidate,
		SenderID:  senderID,
	})
}

func (s *Signaling) EndCall(conn domain.Connection, payload domain.EndCallPayload) {
	if _, ok := s.registry.UserByConn(conn); !ok {
		return
	}
	s.sendToUser(payload.TargetUserID, domain.EventCallEnded, nil)
}

// ScreenSignal routes to one target user when TargetID is set, otherwise
// to every other subscriber of the session.
func (s *Signaling) ScreenSignal(conn domain.Connection, payload domain.ScreenSignalPayload) {
	senderID, ok := s.registry.UserByConn(conn)
	if !ok {
		return
	}

	event := domain.ScreenSignalEvent{Signal: payload.Signal, SenderID: senderID}

	if payload.TargetID != "" {
		s.sendToUser(payload.TargetID, domain.EventScreenSignal, event)
		return
	}

	for _, sub := range s.rooms.Subscribers(ScreenChannel(payload.SessionID)) {
		if sub.ID() == conn.ID() {
			continue
		}
		if err := sub.Send(domain.EventScreenSignal, event); err != nil {
			s.log.Warn("Failed to deliver screen signal",
				"session_id", payload.SessionID, "conn_id", sub.ID(), "error", err)
		}
	}
}

func (s *Signaling) sendToUser(userID string, event domain.EventType, payload interface{}) {
	conn, ok := s.registry.ConnByUser(userID)
	if !ok {
		// Target disconnected moments earlier; drop silently.
		return
	}
	if err := conn.Send(event, payload); err != nil {
		s.log.Warn("Failed to deliver signaling payload",
			"target_id", userID, "event", event, "error", err)
	}
}
