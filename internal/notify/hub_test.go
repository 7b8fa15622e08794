package notify

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func startTestServer(t *testing.T, hub *Hub) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Handle(conn)
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d clients", n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	t.Parallel()

	hub := NewHub(slog.Default())
	url := startTestServer(t, hub)

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()

	waitForClients(t, hub, 2)

	hub.BroadcastPendingCount(3)

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var ev Event
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, int64(3), ev.PendingCount)
	}
}

func TestHub_DisconnectedClientIsRemoved(t *testing.T) {
	t.Parallel()

	hub := NewHub(slog.Default())
	url := startTestServer(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())

	waitForClients(t, hub, 0)

	// broadcasting into an empty hub must not panic
	hub.BroadcastPendingCount(1)
}

func TestHub_BroadcastWithNoClients(t *testing.T) {
	t.Parallel()

	hub := NewHub(slog.Default())
	hub.BroadcastPendingCount(5)
	assert.Equal(t, 0, hub.ClientCount())
}
