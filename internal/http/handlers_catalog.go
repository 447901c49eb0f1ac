package http

import (
	"net/http"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
)

// Writes through the primary store invalidate cached reports: a new
// sale or catalog rename changes the rollups immediately.
func (s *Server) invalidateReports() {
	s.reportCache.Purge()
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.store.ListClients(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if clients == nil {
		clients = []core.Client{}
	}
	respondJSON(w, http.StatusOK, clients)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	client, err := s.store.GetClient(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var client core.Client
	if !decodeBody(w, r, &client) {
		return
	}
	client.ID = 0
	saved, err := s.store.SaveClient(r.Context(), client)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var client core.Client
	if !decodeBody(w, r, &client) {
		return
	}
	client.ID = id
	saved, err := s.store.SaveClient(r.Context(), client)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteClient(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.store.ListEmployees(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if employees == nil {
		employees = []core.Employee{}
	}
	respondJSON(w, http.StatusOK, employees)
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	employee, err := s.store.GetEmployee(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var employee core.Employee
	if !decodeBody(w, r, &employee) {
		return
	}
	employee.ID = 0
	saved, err := s.store.SaveEmployee(r.Context(), employee)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var employee core.Employee
	if !decodeBody(w, r, &employee) {
		return
	}
	employee.ID = id
	saved, err := s.store.SaveEmployee(r.Context(), employee)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteEmployee(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.store.ListServices(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if services == nil {
		services = []core.Service{}
	}
	respondJSON(w, http.StatusOK, services)
}

func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	service, err := s.store.GetService(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, service)
}

func (s *Server) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var service core.Service
	if !decodeBody(w, r, &service) {
		return
	}
	service.ID = 0
	saved, err := s.store.SaveService(r.Context(), service)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var service core.Service
	if !decodeBody(w, r, &service) {
		return
	}
	service.ID = id
	saved, err := s.store.SaveService(r.Context(), service)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteService(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if products == nil {
		products = []core.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	product, err := s.store.GetProduct(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var product core.Product
	if !decodeBody(w, r, &product) {
		return
	}
	product.ID = 0
	saved, err := s.store.SaveProduct(r.Context(), product)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var product core.Product
	if !decodeBody(w, r, &product) {
		return
	}
	product.ID = id
	saved, err := s.store.SaveProduct(r.Context(), product)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteProduct(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.invalidateReports()
	respondJSON(w, http.StatusNoContent, nil)
}
