package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/engine"
	"inkwell/internal/engine/actors"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handlers-test-secret"

// newTestHandler wires a full server against the in-memory store and wraps
// it in the auth middleware, the way main does.
func newTestHandler(t *testing.T) (http.Handler, *database.MemoryStore) {
	t.Helper()

	store := database.NewMemoryStore()
	metrics := utils.NewMetricsCollector()
	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, store, nil, testSecret, metrics)
	server := NewServer(system, eng, metrics, store, nil, testSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", server.HandleHealth())
	mux.HandleFunc("/api/auth/register", server.HandleRegister())
	mux.HandleFunc("/api/auth/login", server.HandleLogin())
	mux.HandleFunc("/api/blogs", server.HandleCreateBlog())
	mux.HandleFunc("/api/blogs/get-blog", server.HandleGetBlog())
	mux.HandleFunc("/api/blogs/like-blog", server.HandleLikeBlog())
	mux.HandleFunc("/api/blogs/isliked-by-user", server.HandleIsLikedByUser())
	mux.HandleFunc("/api/blogs/add-comment", server.HandleAddComment())
	mux.HandleFunc("/api/blogs/get-blog-comments", server.HandleGetBlogComments())
	mux.HandleFunc("/api/blogs/delete-comment", server.HandleDeleteComment())

	return middleware.AuthMiddleware(testSecret, mux), store
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, handler http.Handler, username string) *actors.AuthResponse {
	t.Helper()
	w := doJSON(t, handler, "POST", "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var auth actors.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	return &auth
}

func TestEngagementFlow(t *testing.T) {
	handler, store := newTestHandler(t)

	author := registerUser(t, handler, "author")
	reader := registerUser(t, handler, "reader")

	// Author publishes a blog.
	w := doJSON(t, handler, "POST", "/api/blogs", author.Token, map[string]interface{}{
		"title":  "Integration Test Post",
		"des":    "A post created through the HTTP layer",
		"banner": "https://example.com/banner.png",
		"content": map[string]interface{}{
			"blocks": []map[string]interface{}{
				{"type": "paragraph", "data": map[string]string{"text": "body"}},
			},
		},
		"tags": []string{"testing"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var blog models.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &blog))
	t.Logf("Blog created with slug %s", blog.Slug)

	// Publishing without a token is rejected.
	w = doJSON(t, handler, "POST", "/api/blogs", "", map[string]string{"title": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Reader fetches the blog by slug; the read is counted.
	w = doJSON(t, handler, "POST", "/api/blogs/get-blog", "", map[string]string{
		"blog_id": blog.Slug,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var fetched models.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, 1, fetched.Activity.TotalReads)

	// Reader likes the blog.
	w = doJSON(t, handler, "POST", "/api/blogs/like-blog", reader.Token, map[string]interface{}{
		"_id": blog.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var likeStatus actors.LikeStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likeStatus))
	assert.True(t, likeStatus.LikedByUser)

	w = doJSON(t, handler, "POST", "/api/blogs/isliked-by-user", reader.Token, map[string]string{
		"_id": blog.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likeStatus))
	assert.True(t, likeStatus.LikedByUser)

	// Reader comments, author replies.
	w = doJSON(t, handler, "POST", "/api/blogs/add-comment", reader.Token, map[string]string{
		"_id":     blog.ID.String(),
		"comment": "well written",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var comment models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	w = doJSON(t, handler, "POST", "/api/blogs/add-comment", author.Token, map[string]string{
		"_id":         blog.ID.String(),
		"comment":     "thank you",
		"replying_to": comment.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reply models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.True(t, reply.IsReply)

	// The comment listing carries the activity counters.
	w = doJSON(t, handler, "POST", "/api/blogs/get-blog-comments", "", map[string]interface{}{
		"blog_id": blog.ID.String(),
		"skip":    0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page models.CommentPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Results, 1)
	assert.Equal(t, 1, page.Activity.TotalLikes)
	assert.Equal(t, 2, page.Activity.TotalComments)
	assert.Equal(t, 1, page.Activity.TotalParentComments)

	// A stranger cannot delete the reader's comment.
	stranger := registerUser(t, handler, "stranger")
	w = doJSON(t, handler, "POST", "/api/blogs/delete-comment", stranger.Token, map[string]string{
		"_id": comment.ID.String(),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The reader deletes their own comment; the reply is orphaned.
	w = doJSON(t, handler, "POST", "/api/blogs/delete-comment", reader.Token, map[string]string{
		"_id": comment.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var status models.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Success)

	w = doJSON(t, handler, "POST", "/api/blogs/get-blog-comments", "", map[string]interface{}{
		"blog_id": blog.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Results)
	assert.Equal(t, 1, page.Activity.TotalComments)
	assert.Equal(t, 0, page.Activity.TotalParentComments)

	// The orphaned reply is still stored, reachable by id.
	orphan, err := store.GetComment(context.Background(), reply.ID)
	require.NoError(t, err)
	assert.Equal(t, "thank you", orphan.Content)

	// The reader unlikes; the like record and the counter both reset.
	w = doJSON(t, handler, "POST", "/api/blogs/like-blog", reader.Token, map[string]interface{}{
		"_id":           blog.ID.String(),
		"isLikedByUser": true, // legacy field, ignored by the server
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likeStatus))
	assert.False(t, likeStatus.LikedByUser)
}

func TestHealthEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}
