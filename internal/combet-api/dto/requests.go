package dto

import "time"

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

type CreateCircleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type UpdateCircleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type InviteRequest struct {
	InviteeID string `json:"inviteeId"`
}

type CreateBetRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Stake       float64    `json:"stake"`
	ClosesAt    *time.Time `json:"closesAt"`
	Options     []string   `json:"options"`
	TargetType  string     `json:"targetType"` // "circle" | "user"
	TargetID    string     `json:"targetId"`
}

type AcceptBetRequest struct {
	SelectedOptionID string `json:"selectedOptionId"`
}

type FollowRequest struct {
	FollowingID string `json:"followingId"`
}
