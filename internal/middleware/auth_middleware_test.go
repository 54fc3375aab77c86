package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "middleware-test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "schoolhub.test",
	})
}

func tokenFor(t *testing.T, service *auth.JWTService, role models.Role) string {
	t.Helper()
	user := &models.User{ID: 7, Email: "user@school.test", RoleID: role.ID()}
	access, _, _, _, err := service.GenerateTokenPair(user, role)
	require.NoError(t, err)
	return access
}

func newGatedRouter(service *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authenticated := router.Group("/", JWTAuth(service))
	authenticated.GET("/dashboard", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	teacher := authenticated.Group("/teacher", RequireRole(models.RoleTeacher))
	teacher.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	student := authenticated.Group("/student", RequireRole(models.RoleStudent))
	student.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func TestStudentOnTeacherRouteRedirectsToDashboard(t *testing.T) {
	service := newTestJWTService(time.Hour)
	router := newGatedRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/teacher", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, service, models.RoleStudent))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, PathDashboard, w.Header().Get("Location"))
}

func TestTeacherOnStudentRouteRedirectsToTeacherIndex(t *testing.T) {
	service := newTestJWTService(time.Hour)
	router := newGatedRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/student", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, service, models.RoleTeacher))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, PathTeacherIndex, w.Header().Get("Location"))
}

func TestMatchingRolePassesGate(t *testing.T) {
	service := newTestJWTService(time.Hour)
	router := newGatedRouter(service)

	cases := []struct {
		role models.Role
		path string
	}{
		{models.RoleTeacher, "/teacher"},
		{models.RoleStudent, "/student"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, service, tc.role))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "%s on %s", tc.role, tc.path)
	}
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	service := newTestJWTService(time.Hour)
	router := newGatedRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExpiredTokenIsUnauthorized(t *testing.T) {
	service := newTestJWTService(-time.Minute)
	router := newGatedRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, service, models.RoleStudent))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCookieTokenAuthenticates(t *testing.T) {
	service := newTestJWTService(time.Hour)
	router := newGatedRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: tokenFor(t, service, models.RoleStudent)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGarbageTokenIsUnauthorized(t *testing.T) {
	service := newTestJWTService(time.Hour)
	router := newGatedRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
