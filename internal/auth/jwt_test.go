package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateAccessToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestJWTManagerRejectsBadTokens(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		token, err := other.GenerateAccessToken("user-123")
		require.NoError(t, err)

		_, err = m.ParseAndValidate(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived := NewJWTManager("test-secret", -time.Minute)
		token, err := shortLived.GenerateAccessToken("user-123")
		require.NoError(t, err)

		_, err = m.ParseAndValidate(token)
		require.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := m.ParseAndValidate("not-a-token")
		require.Error(t, err)
	})
}

func TestAuthRequiredMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewJWTManager("test-secret", time.Hour)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/whoami", AuthRequired(m), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
		})
		return r
	}

	t.Run("valid bearer token passes and exposes the user", func(t *testing.T) {
		token, err := m.GenerateAccessToken("user-123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "user-123")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBcryptHasherClampsCost(t *testing.T) {
	// An out-of-range cost must not make every Hash call fail.
	h := NewBcryptPasswordHasher(99)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	require.NoError(t, h.Compare(hash, "s3cret"))
	require.Error(t, h.Compare(hash, "wrong"))
}
