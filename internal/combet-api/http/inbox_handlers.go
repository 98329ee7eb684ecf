package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/combet/combet-server/internal/combet-api/dto"
	"github.com/combet/combet-server/internal/combet-api/repo"
)

func (s *Server) inbox(w http.ResponseWriter, r *http.Request) {
	items, err := s.repo.Inbox(r.Context(), userID(r))
	if err != nil {
		s.serverError(w, "inbox", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) acceptInvite(w http.ResponseWriter, r *http.Request) {
	inviteID := chi.URLParam(r, "inviteId")

	_, err := s.repo.AcceptInvite(r.Context(), inviteID, userID(r))
	if err == repo.ErrNotFound {
		writeError(w, http.StatusBadRequest, "Invite not found")
		return
	}
	if err != nil {
		s.serverError(w, "accept invite", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (s *Server) declineInvite(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeclineInvite(r.Context(), chi.URLParam(r, "inviteId"), userID(r)); err != nil {
		s.serverError(w, "decline invite", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}
