package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathonspt/attendee-hq/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func setupAuthenticatedRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAuthenticator(testSigningKey).VerifyJWT())
	r.GET("/protected", func(ctx *gin.Context) {
		userID, _ := ctx.Get(ContextKeyUserID)
		ctx.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return r
}

func doGet(t *testing.T, r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestVerifyJWT(t *testing.T) {
	r := setupAuthenticatedRouter(t)

	t.Run("a valid token passes and sets the user id", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 42, "agent/1.0")
		require.NoError(t, err)

		w := doGet(t, r, map[string]string{
			"Authorization": "Bearer " + token,
			"User-Agent":    "agent/1.0",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "42")
	})

	t.Run("no header is a 401", func(t *testing.T) {
		w := doGet(t, r, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("a non bearer header is a 401", func(t *testing.T) {
		w := doGet(t, r, map[string]string{"Authorization": "Basic abc"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("a token signed with another key is a 401", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte("other-key"), 42, "agent/1.0")
		require.NoError(t, err)

		w := doGet(t, r, map[string]string{
			"Authorization": "Bearer " + token,
			"User-Agent":    "agent/1.0",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("a token replayed from another user agent is a 401", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 42, "agent/1.0")
		require.NoError(t, err)

		w := doGet(t, r, map[string]string{
			"Authorization": "Bearer " + token,
			"User-Agent":    "someone-else/2.0",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
