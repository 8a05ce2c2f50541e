package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/store-scheduler/internal/httperr"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

const testSecret = "test-secret"

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    UserID(c),
			"email": c.GetString(ContextEmail),
			"owner": c.GetBool(ContextIsStoreOwner),
		})
	})
	r.GET("/owner", RequireStoreOwner(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func do(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tok, err := IssueToken(testSecret, time.Hour, models.User{ID: 7, Email: "a@b.test", IsStoreOwner: true}, time.Now())
	require.NoError(t, err)

	w := do(authRouter(), "/me", "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"email":"a@b.test","owner":true}`, w.Body.String())
}

func TestAuthMiddleware_ClaimNames(t *testing.T) {
	tok, err := IssueToken(testSecret, time.Hour, models.User{ID: 3, Email: "x@y.test"}, time.Now())
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.EqualValues(t, 3, claims["userId"])
	assert.Equal(t, "x@y.test", claims["email"])
	assert.Equal(t, false, claims["isStoreOwner"])
	assert.Contains(t, claims, "exp")
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired, err := IssueToken(testSecret, time.Hour, models.User{ID: 1}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	foreign, err := IssueToken("other-secret", time.Hour, models.User{ID: 1}, time.Now())
	require.NoError(t, err)
	noUser, err := IssueToken(testSecret, time.Hour, models.User{}, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name string
		auth string
		code string
	}{
		{"missing", "", "missing_authorization_header"},
		{"not bearer", "Basic abc", "invalid_authorization_header"},
		{"garbage", "Bearer abc.def.ghi", "invalid_token"},
		{"expired", "Bearer " + expired, "invalid_token"},
		{"wrong secret", "Bearer " + foreign, "invalid_token"},
		{"no user id", "Bearer " + noUser, "invalid_token"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(authRouter(), "/me", tc.auth)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tc.code, errorCode(t, w))
		})
	}
}

func TestRequireStoreOwner(t *testing.T) {
	owner, _ := IssueToken(testSecret, time.Hour, models.User{ID: 1, IsStoreOwner: true}, time.Now())
	customer, _ := IssueToken(testSecret, time.Hour, models.User{ID: 2}, time.Now())

	assert.Equal(t, http.StatusNoContent, do(authRouter(), "/owner", "Bearer "+owner).Code)

	w := do(authRouter(), "/owner", "Bearer "+customer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "store_owner_required", errorCode(t, w))
}
