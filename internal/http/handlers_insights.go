package http

import (
	"net/http"

	"github.com/obrienteixeira/tokyo-manicure/internal/insights"
	"github.com/obrienteixeira/tokyo-manicure/internal/log"
)

type insightsResponse struct {
	Segments []insights.Segment `json:"segments"`
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if s.insights == nil {
		respondError(w, http.StatusServiceUnavailable, "insights are not configured")
		return
	}

	clients, err := s.store.ListClients(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if len(clients) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "no clients to segment")
		return
	}

	segments, err := s.insights.SegmentClients(r.Context(), clients)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Client segmentation failed", log.FieldError, err.Error())
		respondError(w, http.StatusBadGateway, "segmentation failed")
		return
	}

	respondJSON(w, http.StatusOK, insightsResponse{Segments: segments})
}
