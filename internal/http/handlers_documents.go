package http

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.svc.ListDocuments(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	out := make([]documentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentDTO(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	doc, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.svc.CreateDocument(r.Context(), doc)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.statsCache.Clear()
	writeJSON(w, http.StatusCreated, toDocumentDTO(created))
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	doc, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.svc.UpdateDocument(r.Context(), id, doc); err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.statsCache.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	if err := s.svc.DeleteDocument(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.statsCache.Clear()
	w.WriteHeader(http.StatusNoContent)
}
