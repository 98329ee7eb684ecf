package http

import "net/http"

// handleWS entrega a conexão já autenticada pro hub de feed ao vivo
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.hub.HandleWS(userID(r), w, r)
}
