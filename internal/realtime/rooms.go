package realtime

import (
	"sync"

	"socialhub/internal/domain"
)

// Channel key helpers. A channel is any string fan-out group; these keep
// the namespaces from colliding.
func UserChannel(userID string) string       { return "user:" + userID }
func ChatChannel(chatRoomID string) string   { return "chat:" + chatRoomID }
func ScreenChannel(sessionID string) string  { return "screen:" + sessionID }
func AuctionChannel(auctionID string) string { return "auction:" + auctionID }

// Rooms tracks channel subscriptions. Channels are created lazily on
// first join and removed when the last subscriber leaves.
type Rooms struct {
	channels map[string]map[string]domain.Connection // channel -> conn id -> conn
	byConn   map[string]map[string]struct{}          // conn id -> set of channels
	mutex    sync.RWMutex
}

func NewRooms() *Rooms {
	return &Rooms{
		channels: make(map[string]map[string]domain.Connection),
		byConn:   make(map[string]map[string]struct{}),
	}
}

func (r *Rooms) Join(conn domain.Connection, channel string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.channels[channel] == nil {
		r.channels[channel] = make(map[string]domain.Connection)
	}
	r.channels[channel][conn.ID()] = conn

	if r.byConn[conn.ID()] == nil {
		r.byConn[conn.ID()] = make(map[string]struct{})
	}
	r.byConn[conn.ID()][channel] = struct{}{}
}

func (r *Rooms) Leave(conn domain.Connection, channel string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.leaveLocked(conn.ID(), channel)
}

func (r *Rooms) leaveLocked(connID, channel string) {
	if subs, exists := r.channels[channel]; exists {
		delete(subs, connID)
		if len(subs) == 0 {
			delete(r.channels, channel)
		}
	}
	if chans, exists := r.byConn[connID]; exists {
		delete(chans, channel)
		if len(chans) == 0 {
			delete(r.byConn, connID)
		}
	}
}

func (r *Rooms) Subscribers(channel string) []domain.Connection {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	subs := r.channels[channel]
	if len(subs) == 0 {
		return nil
	}

	conns := make([]domain.Connection, 0, len(subs))
	for _, conn := range subs {
		conns = append(conns, conn)
	}
	return conns
}

// DropAll removes a connection from every channel it belongs to. Invoked
// once, on disconnect.
func (r *Rooms) DropAll(conn domain.Connection) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for channel := range r.byConn[conn.ID()] {
		r.leaveLocked(conn.ID(), channel)
	}
}
