package live

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startServer(t *testing.T, hub *Hub) string {
	t.Helper()
	e := echo.New()
	h := &Handler{Hub: hub, Upgrader: websocket.Upgrader{CheckOrigin: SameOrigin}}
	e.GET("/ws", h.Subscribe)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StreamsSelectedTopics(t *testing.T) {
	hub := NewHub("order_events")
	ctx, cancel := context.WithCancel(context.Background())
	running := make(chan struct{})
	go func() {
		defer close(running)
		hub.Run(ctx)
	}()
	defer func() {
		cancel()
		<-running
	}()

	url := startServer(t, hub)
	conn := dial(t, url)
	defer conn.Close()
	waitClients(t, hub, 1)

	require.NoError(t, hub.PublishEvent(ctx, "cart_events", "c", map[string]any{"type": "cart_cleared"}))
	require.NoError(t, hub.PublishEvent(ctx, "order_events", "o-1", map[string]any{"type": "order_created"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Topic string         `json:"topic"`
		Key   string         `json:"key"`
		Event map[string]any `json:"event"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "order_events", msg.Topic)
	assert.Equal(t, "o-1", msg.Key)
	assert.Equal(t, "order_created", msg.Event["type"])
}

func TestHub_ClientDisconnectUnsubscribes(t *testing.T) {
	hub := NewHub("order_events")
	running := make(chan struct{})
	go func() {
		defer close(running)
		hub.Run(context.Background())
	}()
	defer func() {
		hub.Stop()
		<-running
	}()

	url := startServer(t, hub)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitClients(t, hub, 0)
}

func TestHub_StopDisconnectsClients(t *testing.T) {
	hub := NewHub("order_events")
	running := make(chan struct{})
	go func() {
		defer close(running)
		hub.Run(context.Background())
	}()

	url := startServer(t, hub)
	conn := dial(t, url)
	defer conn.Close()
	waitClients(t, hub, 1)

	hub.Stop()
	<-running

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)

	// subscribers arriving after shutdown are turned away
	late := dial(t, url)
	defer late.Close()
	require.NoError(t, late.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = late.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub("order_events")
	for i := 0; i < broadcastBuffer*2; i++ {
		require.NoError(t, hub.PublishEvent(context.Background(), "order_events", "k", i))
	}
	assert.Len(t, hub.broadcast, broadcastBuffer)
}

func TestSameOrigin(t *testing.T) {
	r := httptest.NewRequest("GET", "http://shop.example/ws", nil)
	assert.True(t, SameOrigin(r))

	r.Header.Set("Origin", "http://shop.example")
	assert.True(t, SameOrigin(r))

	r.Header.Set("Origin", "http://evil.example")
	assert.False(t, SameOrigin(r))
}
