package repo

import (
	"database/sql"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateInvite = errors.New("pending invite already exists")
	ErrDuplicateUser   = errors.New("username or email already exists")
)

// User é o modelo persistido na tabela users
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    sql.NullString
	LastName     sql.NullString
	PasswordHash string
}

// NewBet agrupa os campos de criação de uma aposta
type NewBet struct {
	Title       string
	Description string
	Stake       float64
	ClosesAt    *time.Time
	Options     []string
	TargetType  string
	TargetID    string
	CreatorID   string
}

// Invite é o modelo persistido na tabela circle_invites
type Invite struct {
	InviteID  string
	CircleID  string
	InviterID string
	InviteeID string
	Status    string
}

// Postgres implementa a persistência do combet em banco Postgres.
// Os métodos estão espalhados por arquivo de domínio (users, circles,
// invites, bets, feed).
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }
