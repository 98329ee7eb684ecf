package events

// Tipos de evento publicados no tópico "feed_events"
const (
	KindBetCreated    = "bet_created"
	KindInviteCreated = "invite_created"
)

type BetCreated struct {
	BetID       string  `json:"bet_id"`
	CreatorID   string  `json:"creator_id"`
	Title       string  `json:"title"`
	TargetType  string  `json:"target_type"` // "circle" | "user"
	TargetID    string  `json:"target_id"`
	StakeAmount float64 `json:"stake_amount"`
}

type InviteCreated struct {
	InviteID  string `json:"invite_id"`
	CircleID  string `json:"circle_id"`
	InviterID string `json:"inviter_id"`
	InviteeID string `json:"invitee_id"`
}

// FeedEvent é o envelope publicado no Kafka; Kind define qual campo está preenchido
type FeedEvent struct {
	Kind     string         `json:"kind"`
	Bet      *BetCreated    `json:"bet,omitempty"`
	Invite   *InviteCreated `json:"invite,omitempty"`
	TsUnixMs int64          `json:"ts_unix_ms"`
}
