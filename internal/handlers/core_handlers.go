package handlers

import (
	"encoding/json"
	"net/http"
)

// HandleHealth reports service liveness and uptime.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "healthy",
			"uptime": s.Metrics.Uptime().String(),
		})
	}
}
