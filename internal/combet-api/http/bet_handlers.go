package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/combet/combet-server/internal/combet-api/dto"
	"github.com/combet/combet-server/internal/combet-api/repo"
	"github.com/combet/combet-server/pkg/contracts/events"
)

const (
	minBetOptions = 2
	maxBetOptions = 4 // labels vão só até D
)

func (s *Server) createBet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if req.TargetType == "" || req.TargetID == "" {
		writeError(w, http.StatusBadRequest, "Target required")
		return
	}
	if req.Title == "" || req.Description == "" || req.Stake <= 0 || len(req.Options) < minBetOptions {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if len(req.Options) > maxBetOptions {
		writeError(w, http.StatusBadRequest, "At most 4 options")
		return
	}

	creatorID := userID(r)
	betID, err := s.repo.CreateBet(r.Context(), &repo.NewBet{
		Title:       req.Title,
		Description: req.Description,
		Stake:       req.Stake,
		ClosesAt:    req.ClosesAt,
		Options:     req.Options,
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		CreatorID:   creatorID,
	})
	if err != nil {
		s.serverError(w, "create bet", err)
		return
	}

	_ = s.publ.PublishFeedEvent(r.Context(), events.FeedEvent{
		Kind: events.KindBetCreated,
		Bet: &events.BetCreated{
			BetID:       betID,
			CreatorID:   creatorID,
			Title:       req.Title,
			TargetType:  req.TargetType,
			TargetID:    req.TargetID,
			StakeAmount: req.Stake,
		},
		TsUnixMs: time.Now().UnixMilli(),
	})

	writeJSON(w, http.StatusCreated, dto.CreateBetResponse{Success: true, BetID: betID})
}

func (s *Server) acceptBet(w http.ResponseWriter, r *http.Request) {
	betID := chi.URLParam(r, "betId")

	var req dto.AcceptBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.SelectedOptionID == "" {
		writeError(w, http.StatusBadRequest, "selectedOptionId required")
		return
	}

	if err := s.repo.AcceptBet(r.Context(), betID, userID(r), req.SelectedOptionID); err != nil {
		s.serverError(w, "accept bet", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (s *Server) declineBet(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeclineBet(r.Context(), chi.URLParam(r, "betId"), userID(r)); err != nil {
		s.serverError(w, "decline bet", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (s *Server) homeFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.repo.HomeFeed(r.Context(), userID(r))
	if err != nil {
		s.serverError(w, "home feed", err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}
