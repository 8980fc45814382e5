package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"socialhub/internal/realtime"
	"socialhub/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

const maxFrameSize = 64 * 1024

// Gateway upgrades HTTP requests and runs one read loop per connection,
// feeding frames to the dispatcher in arrival order.
type Gateway struct {
	dispatcher   *realtime.Dispatcher
	writeTimeout time.Duration
	pongTimeout  time.Duration
	log          logger.Logger
}

func NewGateway(dispatcher *realtime.Dispatcher, writeTimeout, pongTimeout time.Duration, log logger.Logger) *Gateway {
	return &Gateway{
		dispatcher:   dispatcher,
		writeTimeout: writeTimeout,
		pongTimeout:  pongTimeout,
		log:          log,
	}
}

func (g *Gateway) HandleConnection(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConn(wsConn, g.writeTimeout)
	g.log.Info("Client connected", "conn_id", conn.ID(), "remote_addr", r.RemoteAddr)

	done := make(chan struct{})
	if g.pongTimeout > 0 {
		go g.pingLoop(conn, done)
	}
	go g.readLoop(conn, wsConn, done)
}

// pingLoop keeps the read deadline alive. Browsers cannot initiate
// protocol pings, so the server pings and the peer's automatic pong
// resets the deadline; pings go out before the deadline can lapse.
func (g *Gateway) pingLoop(conn *Conn, done <-chan struct{}) {
	ticker := time.NewTicker(g.pongTimeout * 9 / 10)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.Ping(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (g *Gateway) readLoop(conn *Conn, wsConn *websocket.Conn, done chan<- struct{}) {
	ctx := context.Background()

	defer func() {
		close(done)
		g.dispatcher.Disconnect(ctx, conn)
		conn.Close()
		g.log.Info("Client disconnected", "conn_id", conn.ID())
	}()

	wsConn.SetReadLimit(maxFrameSize)
	if g.pongTimeout > 0 {
		wsConn.SetReadDeadline(time.Now().Add(g.pongTimeout))
		wsConn.SetPongHandler(func(string) error {
			return wsConn.SetReadDeadline(time.Now().Add(g.pongTimeout))
		})
	}

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Warn("Read failed", "conn_id", conn.ID(), "error", err)
			}
			return
		}
		g.dispatcher.HandleFrame(ctx, conn, data)
	}
}
