package http

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/combet/combet-server/internal/combet-api/dto"
	"github.com/combet/combet-server/internal/combet-api/repo"
)

func userPayload(u *repo.User) dto.UserPayload {
	p := dto.UserPayload{ID: u.ID, Username: u.Username, Email: u.Email}
	if u.FirstName.Valid {
		p.FirstName = &u.FirstName.String
	}
	if u.LastName.Valid {
		p.LastName = &u.LastName.String
	}
	return p
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.serverError(w, "hash password", err)
		return
	}

	var firstName, lastName *string
	if req.FirstName != "" {
		firstName = &req.FirstName
	}
	if req.LastName != "" {
		lastName = &req.LastName
	}

	u, err := s.repo.CreateUser(r.Context(), req.Username, req.Email, firstName, lastName, string(hash))
	if err == repo.ErrDuplicateUser {
		writeError(w, http.StatusConflict, "Username or email already exists")
		return
	}
	if err != nil {
		s.serverError(w, "create user", err)
		return
	}

	token, err := s.sess.Create(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, "create session", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{SessionID: token, User: userPayload(u)})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.EmailOrUsername == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	u, err := s.repo.GetUserByEmailOrUsername(r.Context(), req.EmailOrUsername)
	if err == repo.ErrNotFound {
		writeError(w, http.StatusUnauthorized, "Invalid login")
		return
	}
	if err != nil {
		s.serverError(w, "get user", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid login")
		return
	}

	token, err := s.sess.Create(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, "create session", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{SessionID: token, User: userPayload(u)})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := s.sess.Delete(r.Context(), token); err != nil {
			s.serverError(w, "delete session", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, err := s.repo.GetUserByID(r.Context(), userID(r))
	if err == repo.ErrNotFound {
		writeError(w, http.StatusUnauthorized, "Invalid session")
		return
	}
	if err != nil {
		s.serverError(w, "get me", err)
		return
	}
	writeJSON(w, http.StatusOK, userPayload(u))
}
