package http

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.svc.ListClients(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	out := make([]clientDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientDTO(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.svc.CreateClient(r.Context(), req.toDomain())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toClientDTO(created))
}

// Deleting a client leaves its documents in place; the next dashboard
// snapshot resolves them to the fallback name, so the cache is cleared
// here too.
func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	if err := s.svc.DeleteClient(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.statsCache.Clear()
	w.WriteHeader(http.StatusNoContent)
}
