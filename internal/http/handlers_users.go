package http

import (
	"net/http"

	"github.com/obrienteixeira/tokyo-manicure/internal/auth"
	"github.com/obrienteixeira/tokyo-manicure/internal/core"
)

// userRequest carries a plaintext password on create/update; only the
// bcrypt hash is stored. PasswordHash never leaves the server (json:"-"
// on core.User).
type userRequest struct {
	core.User
	Password string `json:"password,omitempty"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if users == nil {
		users = []core.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "password is required")
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	user := req.User
	user.ID = 0
	user.PasswordHash = hash
	saved, err := s.store.SaveUser(r.Context(), user)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	existing, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	user := req.User
	user.ID = id
	// Absent password keeps the stored hash.
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		user.PasswordHash = hash
	} else {
		user.PasswordHash = existing.PasswordHash
	}
	saved, err := s.store.SaveUser(r.Context(), user)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
