package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/combet/combet-server/internal/combet-api/dto"
	"github.com/combet/combet-server/internal/combet-api/repo"
	"github.com/combet/combet-server/internal/combet-api/session"
	"github.com/combet/combet-server/internal/combet-api/ws"
	"github.com/combet/combet-server/pkg/contracts/events"
)

// Repo define as operações de persistência usadas pelos handlers
type Repo interface {
	CreateUser(ctx context.Context, username, email string, firstName, lastName *string, passwordHash string) (*repo.User, error)
	GetUserByEmailOrUsername(ctx context.Context, emailOrUsername string) (*repo.User, error)
	GetUserByID(ctx context.Context, userID string) (*repo.User, error)
	SearchUsersAndCircles(ctx context.Context, userID, q string) ([]dto.SearchResult, error)
	Follow(ctx context.Context, followerID, followingID string) error
	Friends(ctx context.Context, userID string) ([]dto.Friend, error)

	CreateCircle(ctx context.Context, name, description, icon, creatorID string) (string, error)
	GetCircle(ctx context.Context, circleID string) (*dto.Circle, error)
	UpdateCircle(ctx context.Context, circleID, name, description, icon string) (*dto.Circle, error)
	MyCircles(ctx context.Context, userID string) ([]dto.CircleSummary, error)
	Members(ctx context.Context, circleID string) ([]dto.Member, error)
	SearchFriends(ctx context.Context, currentUserID, circleID, q string) ([]dto.FriendCandidate, error)
	LeaveCircle(ctx context.Context, circleID, userID string) error

	CreateInvite(ctx context.Context, circleID, inviterID, inviteeID string) (string, error)
	RetractInvite(ctx context.Context, circleID, inviteeID, inviterID string) error
	AcceptInvite(ctx context.Context, inviteID, userID string) (string, error)
	DeclineInvite(ctx context.Context, inviteID, userID string) error
	Inbox(ctx context.Context, userID string) ([]dto.InboxItem, error)

	CreateBet(ctx context.Context, b *repo.NewBet) (string, error)
	AcceptBet(ctx context.Context, betID, userID, selectedOptionID string) error
	DeclineBet(ctx context.Context, betID, userID string) error
	HomeFeed(ctx context.Context, userID string) ([]dto.FeedBet, error)
}

// Publisher publica eventos de feed (best-effort, pós-commit)
type Publisher interface {
	PublishFeedEvent(ctx context.Context, e events.FeedEvent) error
}

type Server struct {
	log  *zap.Logger
	repo Repo
	sess session.Store
	publ Publisher
	hub  *ws.Hub
}

func NewServer(log *zap.Logger, r Repo, sess session.Store, p Publisher, hub *ws.Hub) *Server {
	return &Server{log: log, repo: r, sess: sess, publ: p, hub: hub}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(withCORS)

	// público
	r.Post("/auth/register", s.register)
	r.Post("/auth/login", s.login)
	r.Post("/auth/logout", s.logout)
	r.Get("/circles/{circleId}", s.getCircle)
	r.Put("/circles/{circleId}", s.updateCircle)
	r.Get("/circles/{circleId}/members", s.circleMembers)

	// protegido por sessão
	r.Group(func(pr chi.Router) {
		pr.Use(s.requireSession)

		pr.Get("/auth/me", s.me)

		pr.Post("/circles", s.createCircle)
		pr.Get("/circles/my", s.myCircles)
		pr.Get("/circles/{circleId}/search-friends", s.searchFriends)
		pr.Post("/circles/{circleId}/invite", s.invite)
		pr.Delete("/circles/{circleId}/retract/{inviteeId}", s.retractInvite)
		pr.Delete("/circles/{circleId}/leave", s.leaveCircle)

		pr.Post("/bets", s.createBet)
		pr.Post("/bets/{betId}/accept", s.acceptBet)
		pr.Post("/bets/{betId}/decline", s.declineBet)

		pr.Get("/users/search", s.search)
		pr.Post("/users/follows", s.follow)
		pr.Get("/users/friends", s.friends)

		pr.Get("/inbox", s.inbox)
		pr.Post("/inbox/invites/{inviteId}/accept", s.acceptInvite)
		pr.Post("/inbox/invites/{inviteId}/decline", s.declineInvite)

		pr.Get("/homefeed/home", s.homeFeed)

		pr.Get("/ws", s.handleWS)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

// serverError loga o erro real e devolve uma mensagem genérica
func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Server error")
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, x-session-id, session-id")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
