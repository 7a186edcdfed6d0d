package handlers

import (
	"encoding/json"
	"net/http"

	"inkwell/internal/engine/actors"
	"inkwell/internal/middleware"

	"github.com/google/uuid"
)

// LikeBlogRequest toggles the caller's like on a blog. IsLikedByUser is the
// legacy client-asserted prior state; the server derives the real prior
// state from the like record, so the field is accepted but never trusted.
type LikeBlogRequest struct {
	BlogID        string `json:"_id"`
	IsLikedByUser bool   `json:"isLikedByUser,omitempty"`
}

// IsLikedRequest asks whether the caller currently likes a blog.
type IsLikedRequest struct {
	BlogID string `json:"_id"`
}

// HandleLikeBlog flips the caller's like state on a blog and returns the
// new state.
func (s *Server) HandleLikeBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req LikeBlogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		blogID, err := uuid.Parse(req.BlogID)
		if err != nil {
			http.Error(w, "Invalid blog ID", http.StatusBadRequest)
			return
		}

		result, ok := s.requestActor(w, s.Engine.GetEngagementActor(), &actors.ToggleLikeMsg{
			BlogID: blogID,
			UserID: userID,
		})
		if !ok {
			return
		}

		s.writeResult(w, result)
	}
}

// HandleIsLikedByUser reports whether the caller has liked a blog.
func (s *Server) HandleIsLikedByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req IsLikedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		blogID, err := uuid.Parse(req.BlogID)
		if err != nil {
			http.Error(w, "Invalid blog ID", http.StatusBadRequest)
			return
		}

		result, ok := s.requestActor(w, s.Engine.GetEngagementActor(), &actors.CheckLikedMsg{
			BlogID: blogID,
			UserID: userID,
		})
		if !ok {
			return
		}

		s.writeResult(w, result)
	}
}
