package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ingest", Auth(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ingest"})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err, "sign token")
	return signed
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r := newAuthRouter()

	require.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	require.Equal(t, http.StatusUnauthorized, doRequest(r, "Basic abc").Code)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	r := newAuthRouter()

	require.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer not-a-token").Code)
	require.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer "+signToken(t, "wrong-secret")).Code)
}

func TestAuthAcceptsSignedToken(t *testing.T) {
	r := newAuthRouter()

	require.Equal(t, http.StatusOK, doRequest(r, "Bearer "+signToken(t, testSecret)).Code)
}
