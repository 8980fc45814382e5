package realtime

import (
	"sync"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

// Registry holds the bidirectional connection<->user mapping. It is the
// single shared structure every inbound event touches, so all access goes
// through one mutex. One live connection per user: a later Register for
// the same user supersedes the earlier connection's mapping.
type Registry struct {
	byUser map[string]domain.Connection
	byConn map[string]string // connection id -> user id
	mutex  sync.RWMutex
	log    logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		byUser: make(map[string]domain.Connection),
		byConn: make(map[string]string),
		log:    log,
	}
}

func (r *Registry) Register(conn domain.Connection, userID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if prev, ok := r.byUser[userID]; ok && prev.ID() != conn.ID() {
		delete(r.byConn, prev.ID())
	}

	r.byUser[userID] = conn
	r.byConn[conn.ID()] = userID

	r.log.Info("Connection registered", "user_id", userID, "conn_id", conn.ID())
}

// Unregister removes both directions. Idempotent; safe to call for a
// connection that was never authenticated.
func (r *Registry) Unregister(conn domain.Connection) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	userID, ok := r.byConn[conn.ID()]
	if !ok {
		return
	}

	delete(r.byConn, conn.ID())

	// Only drop the user mapping if it still points at this connection;
	// a re-authentication may have superseded it already.
	if current, ok := r.byUser[userID]; ok && current.ID() == conn.ID() {
		delete(r.byUser, userID)
	}

	r.log.Info("Connection unregistered", "user_id", userID, "conn_id", conn.ID())
}

func (r *Registry) UserByConn(conn domain.Connection) (string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	userID, ok := r.byConn[conn.ID()]
	return userID, ok
}

func (r *Registry) ConnByUser(userID string) (domain.Connection, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	conn, ok := r.byUser[userID]
	return conn, ok
}
