package dto

import "time"

type UserPayload struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type AuthResponse struct {
	SessionID string      `json:"session_id"`
	User      UserPayload `json:"user"`
}

type CreateCircleResponse struct {
	CircleID string `json:"circle_id"`
}

type Circle struct {
	CircleID    string    `json:"circle_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

type CircleSummary struct {
	CircleID string  `json:"circle_id"`
	Name     string  `json:"name"`
	Icon     *string `json:"icon"`
}

type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// FriendCandidate anota cada amigo com o estado dele em relação ao círculo:
// "accepted" (já é membro), "pending" (convite em aberto) ou null
type FriendCandidate struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Status      *string `json:"status"`
	InvitedByMe bool    `json:"invitedByMe"`
}

type InviteResponse struct {
	Success  bool   `json:"success"`
	InviteID string `json:"inviteId"`
}

type CreateBetResponse struct {
	Success bool   `json:"success"`
	BetID   string `json:"betId"`
}

type SearchResult struct {
	Type     string `json:"type"` // "user" | "circle"
	ID       string `json:"id"`
	Label    string `json:"label"`
	Subtitle string `json:"subtitle"`
	IsFriend *bool  `json:"isFriend"`
}

type Friend struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type InboxItem struct {
	NotificationID string    `json:"notification_id"`
	Type           string    `json:"type"`
	EntityID       string    `json:"entity_id"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
	ActorUsername  *string   `json:"actor_username"`
	CircleName     *string   `json:"circle_name"`
	InviteID       string    `json:"invite_id"`
	Status         string    `json:"status"`
}

type FeedOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

type FeedBet struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	CreatedAt       time.Time    `json:"created_at"`
	StakeAmount     float64      `json:"stake_amount"`
	Status          string       `json:"status"`
	Icon            string       `json:"icon"`
	CreatorUsername *string      `json:"creator_username"`
	TargetType      string       `json:"target_type"`
	TargetName      *string      `json:"target_name"`
	Options         []FeedOption `json:"options"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
