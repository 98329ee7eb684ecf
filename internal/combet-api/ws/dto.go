package ws

import "encoding/json"

type ClientMsg struct {
	Type string `json:"type"` // "ping"
}

// FeedPush é o payload recebido do canal Redis e repassado ao cliente
type FeedPush struct {
	UserID  string          `json:"user_id"`
	Kind    string          `json:"kind"` // "bet_created" | "invite_created"
	Payload json.RawMessage `json:"payload"`
}
