package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// client embrulha a conexão com um mutex de escrita: o pong do read loop
// e o Broadcast do subscriber Redis podem escrever ao mesmo tempo, e o
// gorilla só permite um escritor por conexão
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub gerencia as conexões WebSocket do feed ao vivo
// conns: mapeia userID para o conjunto de conexões do usuário
// (o mesmo usuário pode estar em mais de um dispositivo)
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	// userID -> set of connections
	conns map[string]map[*client]struct{}
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		conns:    make(map[string]map[*client]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão já autenticada.
// A conexão fica registrada pro userID até desconectar; pings são respondidos
func (h *Hub) HandleWS(userID string, w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	c := &client{conn: conn}

	h.mu.Lock()
	if _, ok := h.conns[userID]; !ok {
		h.conns[userID] = make(map[*client]struct{})
	}
	h.conns[userID][c] = struct{}{}
	h.mu.Unlock()

	pong, _ := json.Marshal(map[string]string{"type": "pong"})
	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Type == "ping" {
			_ = c.write(pong)
		}
	}

	// Remove a conexão ao desconectar
	h.mu.Lock()
	if set, ok := h.conns[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
	h.mu.Unlock()
}

// Broadcast envia um push de feed para todas as conexões do usuário
func (h *Hub) Broadcast(push FeedPush) {
	h.mu.RLock()
	set := h.conns[push.UserID]
	clients := make([]*client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	if len(clients) == 0 {
		return
	}

	b, _ := json.Marshal(push)
	for _, c := range clients {
		_ = c.write(b)
	}
}
