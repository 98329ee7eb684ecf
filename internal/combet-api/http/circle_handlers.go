package http

import (
	"encoding/json"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/combet/combet-server/internal/combet-api/dto"
	"github.com/combet/combet-server/internal/combet-api/repo"
	"github.com/combet/combet-server/pkg/contracts/events"
)

// limites contam caracteres, não bytes (nomes com acento)
func validCircleName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 5 && n <= 15
}

func validDescription(description string) bool {
	return utf8.RuneCountInString(description) <= 100
}

func (s *Server) createCircle(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCircleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if !validCircleName(req.Name) {
		writeError(w, http.StatusBadRequest, "Name must be 5-15 characters")
		return
	}
	if !validDescription(req.Description) {
		writeError(w, http.StatusBadRequest, "Description max 100 characters")
		return
	}

	circleID, err := s.repo.CreateCircle(r.Context(), req.Name, req.Description, req.Icon, userID(r))
	if err != nil {
		s.serverError(w, "create circle", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateCircleResponse{CircleID: circleID})
}

func (s *Server) myCircles(w http.ResponseWriter, r *http.Request) {
	circles, err := s.repo.MyCircles(r.Context(), userID(r))
	if err != nil {
		s.serverError(w, "my circles", err)
		return
	}
	writeJSON(w, http.StatusOK, circles)
}

func (s *Server) getCircle(w http.ResponseWriter, r *http.Request) {
	circleID := chi.URLParam(r, "circleId")

	c, err := s.repo.GetCircle(r.Context(), circleID)
	if err == repo.ErrNotFound {
		writeError(w, http.StatusNotFound, "Circle not found")
		return
	}
	if err != nil {
		s.serverError(w, "get circle", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) updateCircle(w http.ResponseWriter, r *http.Request) {
	circleID := chi.URLParam(r, "circleId")

	var req dto.UpdateCircleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if !validCircleName(req.Name) {
		writeError(w, http.StatusBadRequest, "Name must be 5-15 characters")
		return
	}
	if !validDescription(req.Description) {
		writeError(w, http.StatusBadRequest, "Description max 100 characters")
		return
	}

	c, err := s.repo.UpdateCircle(r.Context(), circleID, req.Name, req.Description, req.Icon)
	if err == repo.ErrNotFound {
		writeError(w, http.StatusNotFound, "Circle not found")
		return
	}
	if err != nil {
		s.serverError(w, "update circle", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) circleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.repo.Members(r.Context(), chi.URLParam(r, "circleId"))
	if err != nil {
		s.serverError(w, "circle members", err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) searchFriends(w http.ResponseWriter, r *http.Request) {
	circleID := chi.URLParam(r, "circleId")
	q := r.URL.Query().Get("q")

	candidates, err := s.repo.SearchFriends(r.Context(), userID(r), circleID, q)
	if err != nil {
		s.serverError(w, "search friends", err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (s *Server) invite(w http.ResponseWriter, r *http.Request) {
	circleID := chi.URLParam(r, "circleId")
	inviterID := userID(r)

	var req dto.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.InviteeID == "" {
		writeError(w, http.StatusBadRequest, "inviteeId required")
		return
	}

	inviteID, err := s.repo.CreateInvite(r.Context(), circleID, inviterID, req.InviteeID)
	if err == repo.ErrDuplicateInvite {
		writeError(w, http.StatusConflict, "Already invited")
		return
	}
	if err != nil {
		s.serverError(w, "create invite", err)
		return
	}

	// push de inbox em tempo real; o banco é a fonte de verdade
	_ = s.publ.PublishFeedEvent(r.Context(), events.FeedEvent{
		Kind: events.KindInviteCreated,
		Invite: &events.InviteCreated{
			InviteID:  inviteID,
			CircleID:  circleID,
			InviterID: inviterID,
			InviteeID: req.InviteeID,
		},
		TsUnixMs: time.Now().UnixMilli(),
	})

	writeJSON(w, http.StatusOK, dto.InviteResponse{Success: true, InviteID: inviteID})
}

func (s *Server) retractInvite(w http.ResponseWriter, r *http.Request) {
	circleID := chi.URLParam(r, "circleId")
	inviteeID := chi.URLParam(r, "inviteeId")

	err := s.repo.RetractInvite(r.Context(), circleID, inviteeID, userID(r))
	if err == repo.ErrNotFound {
		writeError(w, http.StatusForbidden, "Cannot retract this invite")
		return
	}
	if err != nil {
		s.serverError(w, "retract invite", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (s *Server) leaveCircle(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.LeaveCircle(r.Context(), chi.URLParam(r, "circleId"), userID(r)); err != nil {
		s.serverError(w, "leave circle", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}
