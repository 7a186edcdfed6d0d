package handlers

import (
	"encoding/json"
	"net/http"

	"inkwell/internal/engine/actors"
	"inkwell/internal/middleware"

	"github.com/google/uuid"
)

// AddCommentRequest represents a request to create a comment or reply.
// Field names match the persisted-state layout the clients send.
type AddCommentRequest struct {
	BlogID     string `json:"_id"`
	Comment    string `json:"comment"`
	ReplyingTo string `json:"replying_to,omitempty"` // parent comment id, for replies
}

// DeleteCommentRequest identifies the comment to delete.
type DeleteCommentRequest struct {
	CommentID string `json:"_id"`
}

// GetBlogCommentsRequest pages through a blog's top-level comments.
type GetBlogCommentsRequest struct {
	BlogID string `json:"blog_id"`
	Skip   int    `json:"skip"`
}

// HandleAddComment creates a comment or a reply on a blog.
func (s *Server) HandleAddComment() http.HandlerFunc {
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

		var req AddCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		blogID, err := uuid.Parse(req.BlogID)
		if err != nil {
			http.Error(w, "Invalid blog ID", http.StatusBadRequest)
			return
		}

		var parentID *uuid.UUID
		if req.ReplyingTo != "" {
			parsed, err := uuid.Parse(req.ReplyingTo)
			if err != nil {
				http.Error(w, "Invalid parent comment ID", http.StatusBadRequest)
				return
			}
			parentID = &parsed
		}

		result, ok := s.requestActor(w, s.Engine.GetCommentActor(), &actors.CreateCommentMsg{
			BlogID:   blogID,
			AuthorID: userID,
			Content:  req.Comment,
			ParentID: parentID,
		})
		if !ok {
			return
		}

		s.writeResult(w, result)
	}
}

// HandleDeleteComment deletes a comment. Only the comment's author or the
// blog's author may do so; the actor enforces that.
func (s *Server) HandleDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req DeleteCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		commentID, err := uuid.Parse(req.CommentID)
		if err != nil {
			http.Error(w, "Invalid comment ID", http.StatusBadRequest)
			return
		}

		result, ok := s.requestActor(w, s.Engine.GetCommentActor(), &actors.DeleteCommentMsg{
			CommentID:   commentID,
			RequestedBy: userID,
		})
		if !ok {
			return
		}

		s.writeResult(w, result)
	}
}

// HandleGetBlogComments returns one page of a blog's top-level comments
// together with the current activity counters.
func (s *Server) HandleGetBlogComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req GetBlogCommentsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		blogID, err := uuid.Parse(req.BlogID)
		if err != nil {
			http.Error(w, "Invalid blog ID", http.StatusBadRequest)
			return
		}

		result, ok := s.requestActor(w, s.Engine.GetCommentActor(), &actors.GetBlogCommentsMsg{
			BlogID: blogID,
			Skip:   req.Skip,
		})
		if !ok {
			return
		}

		s.writeResult(w, result)
	}
}
