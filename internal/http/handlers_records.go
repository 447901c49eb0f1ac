package http

import (
	"errors"
	"net/http"

	"github.com/obrienteixeira/tokyo-manicure/internal/auth"
	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"
)

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := s.store.ListAppointments(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if appointments == nil {
		appointments = []core.Appointment{}
	}
	respondJSON(w, http.StatusOK, appointments)
}

func (s *Server) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	appointment, err := s.store.GetAppointment(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, appointment)
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var appointment core.Appointment
	if !decodeBody(w, r, &appointment) {
		return
	}
	appointment.ID = 0
	if appointment.Status == "" {
		appointment.Status = core.StatusScheduled
	}
	saved, err := s.store.SaveAppointment(r.Context(), appointment)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var appointment core.Appointment
	if !decodeBody(w, r, &appointment) {
		return
	}
	appointment.ID = id
	saved, err := s.store.SaveAppointment(r.Context(), appointment)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteAppointment(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.store.ListTransactions(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	transaction, err := s.store.GetTransaction(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, transaction)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var transaction core.Transaction
	if !decodeBody(w, r, &transaction) {
		return
	}
	transaction.ID = 0
	saved, err := s.store.SaveTransaction(r.Context(), transaction)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var transaction core.Transaction
	if !decodeBody(w, r, &transaction) {
		return
	}
	transaction.ID = id
	saved, err := s.store.SaveTransaction(r.Context(), transaction)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := s.store.ListPackages(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if packages == nil {
		packages = []core.Package{}
	}
	respondJSON(w, http.StatusOK, packages)
}

func (s *Server) handleGetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	pkg, err := s.store.GetPackage(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pkg)
}

func (s *Server) handleCreatePackage(w http.ResponseWriter, r *http.Request) {
	var pkg core.Package
	if !decodeBody(w, r, &pkg) {
		return
	}
	pkg.ID = 0
	saved, err := s.store.SavePackage(r.Context(), pkg)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var pkg core.Package
	if !decodeBody(w, r, &pkg) {
		return
	}
	pkg.ID = id
	saved, err := s.store.SavePackage(r.Context(), pkg)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeletePackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeletePackage(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User core.User `json:"user"`
}

// handleLogin verifies credentials against the stored bcrypt hash. The
// same 401 comes back for a missing user and a wrong password.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondStoreError(w, r, err)
		return
	}

	if !user.Active {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{User: user})
}
