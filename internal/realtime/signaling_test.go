package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/domain"
)

func newSignalingFixture() (*Signaling, *Registry, *Rooms) {
	registry := NewRegistry(nopLogger{})
	rooms := NewRooms()
	return NewSignaling(registry, rooms, nopLogger{}), registry, rooms
}

func TestSignaling_CallUser(t *testing.T) {
	sig, registry, _ := newSignalingFixture()

	caller := newMockConn("c-caller")
	callee := newMockConn("c-callee")
	registry.Register(caller, "alice")
	registry.Register(callee, "bob")

	offer := json.RawMessage(`{"sdp":"v=0"}`)
	sig.CallUser(caller, domain.CallOfferPayload{TargetUserID: "bob", Offer: offer})

	events := callee.received(domain.EventIncomingCall)
	require.Len(t, events, 1)
	assert.Equal(t, domain.IncomingCallEvent{CallerID: "alice", Offer: offer}, events[0].payload)
}

func TestSignaling_CallUnknownTargetDroppedSilently(t *testing.T) {
	sig, registry, _ := newSignalingFixture()

	caller := newMockConn("c-caller")
	registry.Register(caller, "alice")

	sig.CallUser(caller, domain.CallOfferPayload{TargetUserID: "ghost"})

	// No error event back; the race is treated as normal.
	assert.Zero(t, caller.totalSent())
}

func TestSignaling_UnauthenticatedSenderIgnored(t *testing.T) {
	sig, registry, _ := newSignalingFixture()

	callee := newMockConn("c-callee")
	registry.Register(callee, "bob")

	sig.CallUser(newMockConn("anon"), domain.CallOfferPayload{TargetUserID: "bob"})
	sig.IceCandidate(newMockConn("anon"), domain.IceCandidatePayload{TargetUserID: "bob"})
	sig.EndCall(newMockConn("anon"), domain.EndCallPayload{TargetUserID: "bob"})

	assert.Zero(t, callee.totalSent())
}

func TestSignaling_AnswerCall(t *testing.T) {
	sig, registry, _ := newSignalingFixture()

	caller := newMockConn("c-caller")
	callee := newMockConn("c-callee")
	registry.Register(caller, "alice")
	registry.Register(callee, "bob")

	answer := json.RawMessage(`{"sdp":"answer"}`)
	sig.AnswerCall(callee, domain.CallAnswerPayload{CallerID: "alice", Answer: answer})

	events := caller.received(domain.EventCallAnswered)
	require.Len(t, events, 1)
	assert.Equal(t, domain.CallAnsweredEvent{Answer: answer}, events[0].payload)
}

func TestSignaling_IceCandidateCarriesSender(t *testing.T) {
	sig, registry, _ := newSignalingFixture()

	caller := newMockConn("c-caller")
	callee := newMockConn("c-callee")
	registry.Register(caller, "alice")
	registry.Register(callee, "bob")

	candidate := json.RawMessage(`{"candidate":"host"}`)
	sig.IceCandidate(caller, domain.IceCandidatePayload{TargetUserID: "bob", Candidate: candidate})

	events := callee.received(domain.EventIceCandidate)
	require.Len(t, events, 1)
	assert.Equal(t, domain.IceCandidateEvent{Candidate: candidate, SenderID: "alice"}, events[0].payload)
}

func TestSignaling_EndCall(t *testing.T) {
	sig, registry, _ := newSignalingFixture()

	caller := newMockConn("c-caller")
	callee := newMockConn("c-callee")
	registry.Register(caller, "alice")
	registry.Register(callee, "bob")

	sig.EndCall(caller, domain.EndCallPayload{TargetUserID: "bob"})

	events := callee.received(domain.EventCallEnded)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].payload)
}

func TestSignaling_ScreenSignalBroadcast(t *testing.T) {
	sig, registry, _ := newSignalingFixture()

	host := newMockConn("c-host")
	viewer1 := newMockConn("c-v1")
	viewer2 := newMockConn("c-v2")
	registry.Register(host, "alice")
	registry.Register(viewer1, "bob")
	registry.Register(viewer2, "carol")

	sig.JoinSession(host, "s1")
	sig.JoinSession(viewer1, "s1")
	sig.JoinSession(viewer2, "s1")

	signal := json.RawMessage(`{"type":"offer"}`)
	sig.ScreenSignal(host, domain.ScreenSignalPayload{SessionID: "s1", Signal: signal})

	// Everyone in the session except the sender.
	assert.Zero(t, host.totalSent())
	for _, viewer := range []*mockConn{viewer1, viewer2} {
		events := viewer.received(domain.EventScreenSignal)
		require.Len(t, events, 1, viewer.ID())
		assert.Equal(t, domain.ScreenSignalEvent{Signal: signal, SenderID: "alice"}, events[0].payload)
	}
}

func TestSignaling_ScreenSignalTargeted(t *testing.T) {
	sig, registry, _ := newSignalingFixture()

	host := newMockConn("c-host")
	viewer1 := newMockConn("c-v1")
	viewer2 := newMockConn("c-v2")
	registry.Register(host, "alice")
	registry.Register(viewer1, "bob")
	registry.Register(viewer2, "carol")

	sig.JoinSession(host, "s1")
	sig.JoinSession(viewer1, "s1")
	sig.JoinSession(viewer2, "s1")

	signal := json.RawMessage(`{"type":"answer"}`)
	sig.ScreenSignal(host, domain.ScreenSignalPayload{SessionID: "s1", Signal: signal, TargetID: "bob"})

	assert.Len(t, viewer1.received(domain.EventScreenSignal), 1)
	assert.Zero(t, viewer2.totalSent())
}

func TestSignaling_LeaveSessionStopsDelivery(t *testing.T) {
	sig, registry, _ := newSignalingFixture()

	host := newMockConn("c-host")
	viewer := newMockConn("c-v1")
	registry.Register(host, "alice")
	registry.Register(viewer, "bob")

	sig.JoinSession(host, "s1")
	sig.JoinSession(viewer, "s1")
	sig.LeaveSession(viewer, "s1")

	sig.ScreenSignal(host, domain.ScreenSignalPayload{SessionID: "s1", Signal: json.RawMessage(`{}`)})

	assert.Zero(t, viewer.totalSent())
}
