package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/combet/combet-server/internal/combet-api/dto"
	"github.com/combet/combet-server/internal/combet-api/repo"
	"github.com/combet/combet-server/internal/combet-api/session"
	"github.com/combet/combet-server/internal/combet-api/ws"
	"github.com/combet/combet-server/pkg/contracts/events"
)

// stubRepo implementa Repo com func fields; método sem stub devolve zero
type stubRepo struct {
	createUser               func(ctx context.Context, username, email string, firstName, lastName *string, passwordHash string) (*repo.User, error)
	getUserByEmailOrUsername func(ctx context.Context, emailOrUsername string) (*repo.User, error)
	getUserByID              func(ctx context.Context, userID string) (*repo.User, error)
	searchUsersAndCircles    func(ctx context.Context, userID, q string) ([]dto.SearchResult, error)
	follow                   func(ctx context.Context, followerID, followingID string) error
	friends                  func(ctx context.Context, userID string) ([]dto.Friend, error)

	createCircle  func(ctx context.Context, name, description, icon, creatorID string) (string, error)
	getCircle     func(ctx context.Context, circleID string) (*dto.Circle, error)
	updateCircle  func(ctx context.Context, circleID, name, description, icon string) (*dto.Circle, error)
	myCircles     func(ctx context.Context, userID string) ([]dto.CircleSummary, error)
	members       func(ctx context.Context, circleID string) ([]dto.Member, error)
	searchFriends func(ctx context.Context, currentUserID, circleID, q string) ([]dto.FriendCandidate, error)
	leaveCircle   func(ctx context.Context, circleID, userID string) error

	createInvite  func(ctx context.Context, circleID, inviterID, inviteeID string) (string, error)
	retractInvite func(ctx context.Context, circleID, inviteeID, inviterID string) error
	acceptInvite  func(ctx context.Context, inviteID, userID string) (string, error)
	declineInvite func(ctx context.Context, inviteID, userID string) error
	inbox         func(ctx context.Context, userID string) ([]dto.InboxItem, error)

	createBet  func(ctx context.Context, b *repo.NewBet) (string, error)
	acceptBet  func(ctx context.Context, betID, userID, selectedOptionID string) error
	declineBet func(ctx context.Context, betID, userID string) error
	homeFeed   func(ctx context.Context, userID string) ([]dto.FeedBet, error)
}

func (s *stubRepo) CreateUser(ctx context.Context, username, email string, firstName, lastName *string, passwordHash string) (*repo.User, error) {
	if s.createUser != nil {
		return s.createUser(ctx, username, email, firstName, lastName, passwordHash)
	}
	return &repo.User{}, nil
}

func (s *stubRepo) GetUserByEmailOrUsername(ctx context.Context, emailOrUsername string) (*repo.User, error) {
	if s.getUserByEmailOrUsername != nil {
		return s.getUserByEmailOrUsername(ctx, emailOrUsername)
	}
	return nil, repo.ErrNotFound
}

func (s *stubRepo) GetUserByID(ctx context.Context, userID string) (*repo.User, error) {
	if s.getUserByID != nil {
		return s.getUserByID(ctx, userID)
	}
	return nil, repo.ErrNotFound
}

func (s *stubRepo) SearchUsersAndCircles(ctx context.Context, userID, q string) ([]dto.SearchResult, error) {
	if s.searchUsersAndCircles != nil {
		return s.searchUsersAndCircles(ctx, userID, q)
	}
	return []dto.SearchResult{}, nil
}

func (s *stubRepo) Follow(ctx context.Context, followerID, followingID string) error {
	if s.follow != nil {
		return s.follow(ctx, followerID, followingID)
	}
	return nil
}

func (s *stubRepo) Friends(ctx context.Context, userID string) ([]dto.Friend, error) {
	if s.friends != nil {
		return s.friends(ctx, userID)
	}
	return []dto.Friend{}, nil
}

func (s *stubRepo) CreateCircle(ctx context.Context, name, description, icon, creatorID string) (string, error) {
	if s.createCircle != nil {
		return s.createCircle(ctx, name, description, icon, creatorID)
	}
	return "circle-1", nil
}

func (s *stubRepo) GetCircle(ctx context.Context, circleID string) (*dto.Circle, error) {
	if s.getCircle != nil {
		return s.getCircle(ctx, circleID)
	}
	return nil, repo.ErrNotFound
}

func (s *stubRepo) UpdateCircle(ctx context.Context, circleID, name, description, icon string) (*dto.Circle, error) {
	if s.updateCircle != nil {
		return s.updateCircle(ctx, circleID, name, description, icon)
	}
	return nil, repo.ErrNotFound
}

func (s *stubRepo) MyCircles(ctx context.Context, userID string) ([]dto.CircleSummary, error) {
	if s.myCircles != nil {
		return s.myCircles(ctx, userID)
	}
	return []dto.CircleSummary{}, nil
}

func (s *stubRepo) Members(ctx context.Context, circleID string) ([]dto.Member, error) {
	if s.members != nil {
		return s.members(ctx, circleID)
	}
	return []dto.Member{}, nil
}

func (s *stubRepo) SearchFriends(ctx context.Context, currentUserID, circleID, q string) ([]dto.FriendCandidate, error) {
	if s.searchFriends != nil {
		return s.searchFriends(ctx, currentUserID, circleID, q)
	}
	return []dto.FriendCandidate{}, nil
}

func (s *stubRepo) LeaveCircle(ctx context.Context, circleID, userID string) error {
	if s.leaveCircle != nil {
		return s.leaveCircle(ctx, circleID, userID)
	}
	return nil
}

func (s *stubRepo) CreateInvite(ctx context.Context, circleID, inviterID, inviteeID string) (string, error) {
	if s.createInvite != nil {
		return s.createInvite(ctx, circleID, inviterID, inviteeID)
	}
	return "inv-1", nil
}

func (s *stubRepo) RetractInvite(ctx context.Context, circleID, inviteeID, inviterID string) error {
	if s.retractInvite != nil {
		return s.retractInvite(ctx, circleID, inviteeID, inviterID)
	}
	return nil
}

func (s *stubRepo) AcceptInvite(ctx context.Context, inviteID, userID string) (string, error) {
	if s.acceptInvite != nil {
		return s.acceptInvite(ctx, inviteID, userID)
	}
	return "circle-1", nil
}

func (s *stubRepo) DeclineInvite(ctx context.Context, inviteID, userID string) error {
	if s.declineInvite != nil {
		return s.declineInvite(ctx, inviteID, userID)
	}
	return nil
}

func (s *stubRepo) Inbox(ctx context.Context, userID string) ([]dto.InboxItem, error) {
	if s.inbox != nil {
		return s.inbox(ctx, userID)
	}
	return []dto.InboxItem{}, nil
}

func (s *stubRepo) CreateBet(ctx context.Context, b *repo.NewBet) (string, error) {
	if s.createBet != nil {
		return s.createBet(ctx, b)
	}
	return "bet-1", nil
}

func (s *stubRepo) AcceptBet(ctx context.Context, betID, userID, selectedOptionID string) error {
	if s.acceptBet != nil {
		return s.acceptBet(ctx, betID, userID, selectedOptionID)
	}
	return nil
}

func (s *stubRepo) DeclineBet(ctx context.Context, betID, userID string) error {
	if s.declineBet != nil {
		return s.declineBet(ctx, betID, userID)
	}
	return nil
}

func (s *stubRepo) HomeFeed(ctx context.Context, userID string) ([]dto.FeedBet, error) {
	if s.homeFeed != nil {
		return s.homeFeed(ctx, userID)
	}
	return []dto.FeedBet{}, nil
}

// stubPublisher guarda os eventos publicados
type stubPublisher struct {
	mu     sync.Mutex
	events []events.FeedEvent
}

func (p *stubPublisher) PublishFeedEvent(_ context.Context, e events.FeedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *stubPublisher) published() []events.FeedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.FeedEvent(nil), p.events...)
}

type testEnv struct {
	router http.Handler
	publ   *stubPublisher
	token  string
}

// newTestEnv monta o router com sessão em memória já criada pra "user-1"
func newTestEnv(t *testing.T, r *stubRepo) *testEnv {
	t.Helper()

	sess := session.NewMemoryStore()
	token, err := sess.Create(context.Background(), "user-1")
	require.NoError(t, err)

	publ := &stubPublisher{}
	hub := ws.NewHub(func(*http.Request) bool { return true })
	srv := NewServer(zap.NewNop(), r, sess, publ, hub)

	return &testEnv{router: srv.Router(), publ: publ, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return e.doWithToken(t, method, path, e.token, body)
}

func (e *testEnv) doWithToken(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("x-session-id", token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}
