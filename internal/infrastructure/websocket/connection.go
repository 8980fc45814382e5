package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"socialhub/internal/domain"
	"socialhub/pkg/utils"
)

// Conn wraps a gorilla connection behind domain.Connection. Writes are
// serialized with a mutex because fan-out reaches a connection from other
// connections' handler goroutines.
type Conn struct {
	id           string
	conn         *websocket.Conn
	writeTimeout time.Duration
	writeMutex   sync.Mutex
}

func NewConn(conn *websocket.Conn, writeTimeout time.Duration) *Conn {
	return &Conn{
		id:           utils.NewID(),
		conn:         conn,
		writeTimeout: writeTimeout,
	}
}

func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) Send(event domain.EventType, payload interface{}) error {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()

	if c.writeTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return c.conn.WriteJSON(outboundFrame{Event: event, Data: payload})
}

// Ping sends a protocol ping so the peer's pong extends our read
// deadline. Shares the write mutex with Send.
func (c *Conn) Ping() error {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()

	if c.writeTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

// outboundFrame mirrors domain.Envelope but keeps the payload as a value
// so it is marshaled in one pass.
type outboundFrame struct {
	Event domain.EventType `json:"event"`
	Data  interface{}      `json:"data,omitempty"`
}
