package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testActorID   = "00000000-0000-0000-0000-000000000001"
)

// buildProtectedRouter wires a dummy admin route the way the category
// mutation routes are wired: token validation first, then the role gate.
func buildProtectedRouter(manager *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(manager), AdminMiddleware(), func(c *gin.Context) {
		actorID, _ := GetActorID(c)
		role, _ := c.Get(ContextKeyRole)
		c.JSON(http.StatusOK, gin.H{
			"actor_id": actorID.String(),
			"role":     role,
		})
	})
	return r
}

func tokenForRole(t *testing.T, manager *jwt.Manager, actorID, role string) string {
	t.Helper()
	token, err := manager.Generate(actorID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doAuthRequest(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_AdminPasses(t *testing.T) {
	manager := jwt.NewManager(testJWTSecret, time.Hour)
	r := buildProtectedRouter(manager)

	w := doAuthRequest(t, r, tokenForRole(t, manager, testActorID, "admin"))

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, testActorID, body["actor_id"])
	assert.Equal(t, "admin", body["role"])
}

func TestAuthMiddleware_Unauthorized(t *testing.T) {
	manager := jwt.NewManager(testJWTSecret, time.Hour)
	other := jwt.NewManager("a-completely-different-secret", time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer header", header: "Token abc123"},
		{name: "bearer with extra parts", header: "Bearer one two"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "wrong secret", header: tokenForRole(t, other, testActorID, "admin")},
		{name: "non uuid actor", header: tokenForRole(t, manager, "not-a-uuid", "admin")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildProtectedRouter(manager)

			w := doAuthRequest(t, r, tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestAdminMiddleware_ForbidsOtherRoles(t *testing.T) {
	manager := jwt.NewManager(testJWTSecret, time.Hour)

	tests := []struct {
		name string
		role string
	}{
		{name: "viewer role", role: "viewer"},
		{name: "empty role", role: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildProtectedRouter(manager)

			w := doAuthRequest(t, r, tokenForRole(t, manager, testActorID, tt.role))

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "FORBIDDEN")
		})
	}
}

func TestAdminMiddleware_WithoutAuthContext(t *testing.T) {
	// AdminMiddleware on its own must refuse requests that never went
	// through AuthMiddleware.
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetActorID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("set by auth middleware", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		want := uuid.MustParse(testActorID)
		c.Set(ContextKeyActorID, want)

		got, ok := GetActorID(c)
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("absent on unauthenticated routes", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		got, ok := GetActorID(c)
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, got)
	})

	t.Run("wrong type stored", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(ContextKeyActorID, "not-a-uuid-value")

		_, ok := GetActorID(c)
		assert.False(t, ok)
	})
}
