package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// wsObserver delivers envelopes to one websocket connection. Deliver is only
// called from the notifier's goroutine for this observer; pings go through
// WriteControl, which gorilla allows concurrently with it.
type wsObserver struct {
	conn      *websocket.Conn
	closeOnce sync.Once
	closed    chan struct{}
}

func newWSObserver(conn *websocket.Conn) *wsObserver {
	return &wsObserver{conn: conn, closed: make(chan struct{})}
}

func (o *wsObserver) Deliver(ctx context.Context, env domain.Envelope) error {
	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := o.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return o.conn.WriteJSON(env)
}

// Disconnect closes the connection, which also ends the read pump.
func (o *wsObserver) Disconnect() {
	o.closeOnce.Do(func() {
		close(o.closed)
		_ = o.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		_ = o.conn.Close()
	})
}

var (
	_ portssvc.Observer     = (*wsObserver)(nil)
	_ portssvc.Disconnecter = (*wsObserver)(nil)
)

type streamHandler struct {
	notifier portssvc.ChangeNotifierSvc
	upgrader websocket.Upgrader
}

// registerStreamRoutes registers the live update channel.
func registerStreamRoutes(r *gin.Engine, notifier portssvc.ChangeNotifierSvc, allowedOrigins []string) {
	h := &streamHandler{
		notifier: notifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
	r.GET("/ws", h.stream)
}

// originChecker accepts requests without an Origin header and those from allowed.
// A "*" entry allows every origin.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	_, allowAll := set["*"]
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// stream godoc
// @Summary Live ledger updates
// @Description Upgrades to a websocket. The first message is a SNAPSHOT envelope, followed by every change in commit order.
// @Tags stream
// @Success 101 "Switching Protocols"
// @Failure 503 {object} dto.ErrorResponse
// @Router /ws [get]
func (h *streamHandler) stream(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	obs := newWSObserver(conn)
	unsubscribe, err := h.notifier.Subscribe(c.Request.Context(), obs)
	if err != nil {
		logger.Error("Failed to subscribe observer", slog.String("error", err.Error()))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "notifier unavailable"), time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	logger.Info("Observer connected", slog.Int("active_observers", h.notifier.ActiveObservers()))

	go pingLoop(obs)
	readPump(conn)

	unsubscribe()
	obs.Disconnect()
	logger.Info("Observer disconnected")
}

// readPump discards client messages and returns once the peer goes away or
// stops answering pings.
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func pingLoop(obs *wsObserver) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-obs.closed:
			return
		case <-ticker.C:
			if err := obs.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
