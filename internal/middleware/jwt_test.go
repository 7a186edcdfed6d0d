package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	// A token signed with another secret is rejected.
	_, err = ValidateToken(token, "different-secret")
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(userID, testSecret)
	require.NoError(t, err)

	var gotUserID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(testSecret, next)

	// No header on a protected route
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/api/blogs/like-blog", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Bad token
	w = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/blogs/like-blog", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token makes the user id available downstream.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/blogs/like-blog", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotOK)
	assert.Equal(t, userID, gotUserID)

	// Unprotected routes pass through without a token.
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/api/auth/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
