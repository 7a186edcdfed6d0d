package handlers

import (
	"encoding/json"
	"net/http"

	"inkwell/internal/engine/actors"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
)

// CreateBlogRequest carries a new blog post or draft.
type CreateBlogRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"des"`
	Banner      string             `json:"banner"`
	Content     models.BlogContent `json:"content"`
	Tags        []string           `json:"tags"`
	Draft       bool               `json:"draft"`
}

// GetBlogRequest fetches a blog by slug. Mode "edit" returns the blog
// without counting a read; Draft allows fetching unpublished posts.
type GetBlogRequest struct {
	Slug  string `json:"blog_id"`
	Draft bool   `json:"draft,omitempty"`
	Mode  string `json:"mode,omitempty"`
}

// HandleCreateBlog publishes a blog or saves it as a draft.
func (s *Server) HandleCreateBlog() http.HandlerFunc {
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

		var req CreateBlogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		result, ok := s.requestActor(w, s.Engine.GetBlogActor(), &actors.CreateBlogMsg{
			AuthorID:    userID,
			Title:       req.Title,
			Description: req.Description,
			Banner:      req.Banner,
			Content:     req.Content,
			Tags:        req.Tags,
			Draft:       req.Draft,
		})
		if !ok {
			return
		}

		s.writeResult(w, result)
	}
}

// HandleGetBlog returns a blog by slug, counting a read unless the
// client asked for edit mode.
func (s *Server) HandleGetBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req GetBlogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		if req.Slug == "" {
			http.Error(w, "Blog ID is required", http.StatusBadRequest)
			return
		}

		result, ok := s.requestActor(w, s.Engine.GetBlogActor(), &actors.GetBlogMsg{
			Slug:         req.Slug,
			IncludeDraft: req.Draft,
			TrackRead:    req.Mode != "edit",
		})
		if !ok {
			return
		}

		s.writeResult(w, result)
	}
}
