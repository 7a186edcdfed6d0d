package handlers

import (
	"encoding/json"
	"net/http"

	"inkwell/internal/engine/actors"
	"inkwell/internal/middleware"
)

// HandleRegister creates a new account and returns an auth token.
func (s *Server) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req actors.RegisterUserMsg
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		result, ok := s.requestActor(w, s.Engine.GetUserActor(), &req)
		if !ok {
			return
		}

		s.writeResult(w, result)
	}
}

// HandleLogin authenticates a user and returns an auth token.
func (s *Server) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req actors.LoginMsg
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		result, ok := s.requestActor(w, s.Engine.GetUserActor(), &req)
		if !ok {
			return
		}

		s.writeResult(w, result)
	}
}

// HandleGetProfile returns the authenticated user's profile.
func (s *Server) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		result, ok := s.requestActor(w, s.Engine.GetUserActor(), &actors.GetUserProfileMsg{UserID: userID})
		if !ok {
			return
		}

		s.writeResult(w, result)
	}
}
