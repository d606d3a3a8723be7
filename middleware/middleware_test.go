package middleware

import (
	"Storefront/apperr"
	"Storefront/jwt"
	"Storefront/logging"
	"Storefront/models"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsers map[uint]*models.User

func (s stubUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := s[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

func newSigner(t *testing.T, ttl time.Duration) *jwt.Signer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	return jwt.NewSigner(key, &key.PublicKey, ttl)
}

func newUser(id uint, role models.Role) *models.User {
	user := &models.User{Email: "a@x.com", Role: role}
	user.ID = id
	return user
}

func newRouter(signer *jwt.Signer, users stubUsers, capability models.Capability) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(logging.Discard()))
	group := router.Group("/", Authenticate(signer, users, logging.Discard()))
	handler := func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	}
	if capability != "" {
		group.GET("/guarded", RequireCapability(capability), handler)
	}
	group.GET("/open", handler)
	return router
}

func doGet(router http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Status int    `json:"status"`
		Code   string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, w.Code, body.Status)
	return body.Code
}

func TestAuthenticate(t *testing.T) {
	signer := newSigner(t, time.Hour)
	users := stubUsers{1: newUser(1, models.RoleStandard)}
	router := newRouter(signer, users, "")

	token, _, err := signer.GenerateToken(1)
	require.NoError(t, err)
	orphanToken, _, err := signer.GenerateToken(2)
	require.NoError(t, err)
	expiredToken, _, err := newSigner(t, -time.Minute).GenerateToken(1)
	require.NoError(t, err)
	foreignToken, _, err := newSigner(t, time.Hour).GenerateToken(1)
	require.NoError(t, err)

	w := doGet(router, "/open", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	rejected := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"empty bearer":   "Bearer ",
		"garbage":        "Bearer not-a-token",
		"expired":        "Bearer " + expiredToken,
		"foreign key":    "Bearer " + foreignToken,
		"deleted user":   "Bearer " + orphanToken,
	}
	for name, header := range rejected {
		t.Run(name, func(t *testing.T) {
			w := doGet(router, "/open", header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
		})
	}
}

func TestRequireCapability(t *testing.T) {
	signer := newSigner(t, time.Hour)
	users := stubUsers{
		1: newUser(1, models.RoleStandard),
		2: newUser(2, models.RolePrivileged),
		3: newUser(3, models.Role("ghost")),
	}
	router := newRouter(signer, users, models.CapabilityCartRead)

	tokenFor := func(id uint) string {
		token, _, err := signer.GenerateToken(id)
		require.NoError(t, err)
		return "Bearer " + token
	}

	w := doGet(router, "/guarded", tokenFor(1))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))

	w = doGet(router, "/guarded", tokenFor(3))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doGet(router, "/guarded", tokenFor(2))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(router, "/guarded", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(logging.Discard()))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("RequestID"))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.PUT("/carts/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/carts/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
