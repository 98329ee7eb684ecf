package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub, userID string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.HandleWS(userID, w, r)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// ping/pong garante que o registro no hub já aconteceu
	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "ping"}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var pong map[string]string
	require.NoError(t, conn.ReadJSON(&pong))
	require.Equal(t, "pong", pong["type"])

	return conn
}

func TestBroadcastReachesUserConnection(t *testing.T) {
	hub := NewHub(func(*http.Request) bool { return true })
	conn := dialHub(t, hub, "user-1")

	payload, _ := json.Marshal(map[string]string{"betId": "bet-1"})
	hub.Broadcast(FeedPush{UserID: "user-1", Kind: "bet_created", Payload: payload})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var push FeedPush
	require.NoError(t, conn.ReadJSON(&push))

	assert.Equal(t, "user-1", push.UserID)
	assert.Equal(t, "bet_created", push.Kind)
	assert.JSONEq(t, `{"betId":"bet-1"}`, string(push.Payload))
}

func TestConcurrentBroadcastAndPing(t *testing.T) {
	hub := NewHub(func(*http.Request) bool { return true })
	conn := dialHub(t, hub, "user-1")

	// broadcasts em paralelo com pings na mesma conexão; a escrita
	// precisa ser serializada pra não corromper frames
	const pushes = 20
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < pushes; i++ {
			hub.Broadcast(FeedPush{UserID: "user-1", Kind: "bet_created"})
		}
	}()

	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "ping"}))

	got := 0
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for got < pushes {
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var frame struct {
			Type string `json:"type"`
			Kind string `json:"kind"`
		}
		require.NoError(t, json.Unmarshal(raw, &frame))
		if frame.Kind == "bet_created" {
			got++
		} else {
			assert.Equal(t, "pong", frame.Type)
		}
	}
	wg.Wait()
}

func TestBroadcastToOtherUserIsSilent(t *testing.T) {
	hub := NewHub(func(*http.Request) bool { return true })
	conn := dialHub(t, hub, "user-1")

	hub.Broadcast(FeedPush{UserID: "user-2", Kind: "bet_created"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	var push FeedPush
	err := conn.ReadJSON(&push)
	assert.Error(t, err)
}
