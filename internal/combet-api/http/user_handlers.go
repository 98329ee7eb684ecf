package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/combet/combet-server/internal/combet-api/dto"
)

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusOK, []dto.SearchResult{})
		return
	}

	results, err := s.repo.SearchUsersAndCircles(r.Context(), userID(r), q)
	if err != nil {
		s.serverError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) follow(w http.ResponseWriter, r *http.Request) {
	var req dto.FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	currentUserID := userID(r)
	if req.FollowingID == "" {
		writeError(w, http.StatusBadRequest, "followingId required")
		return
	}
	if req.FollowingID == currentUserID {
		writeError(w, http.StatusBadRequest, "Cannot follow yourself")
		return
	}

	if err := s.repo.Follow(r.Context(), currentUserID, req.FollowingID); err != nil {
		s.serverError(w, "follow", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (s *Server) friends(w http.ResponseWriter, r *http.Request) {
	friends, err := s.repo.Friends(r.Context(), userID(r))
	if err != nil {
		s.serverError(w, "friends", err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}
