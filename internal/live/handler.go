package live

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
)

type Handler struct {
	Hub      *Hub
	Upgrader websocket.Upgrader
}

// Subscribe upgrades the request and streams hub messages until either side
// closes. The handler returns when the subscriber disconnects.
func (h *Handler) Subscribe(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "live.subscribe")

	conn, err := h.Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		l.Warn("ws_upgrade_failed", "error", err)
		return nil
	}

	cl := &client{conn: conn, send: make(chan []byte, clientBufferSize)}
	if !h.Hub.add(cl) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return nil
	}
	l.Info("ws_subscribed", "clients", h.Hub.ClientCount())

	written := make(chan struct{})
	go func() {
		defer close(written)
		writePump(cl)
	}()

	readPump(cl)
	h.Hub.remove(cl)
	<-written
	l.Info("ws_unsubscribed")
	return nil
}

// readPump discards client frames and returns once the peer is gone.
func readPump(cl *client) {
	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SameOrigin is the default origin check; it accepts requests without an
// Origin header and those whose Origin host matches the request host.
func SameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}
