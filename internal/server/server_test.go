package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bouncearound.com/daycare/internal/config"
	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/server"
	"bouncearound.com/daycare/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "server-secret"

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                 "test",
		AllowedOrigins:         []string{"http://localhost:3000"},
		JWTSecret:              secret,
		JWTTTL:                 time.Hour,
		LoginRateLimit:         5,
		LoginRateWindow:        15 * time.Minute,
		ReportGenerateCooldown: time.Minute,
		MaxUploadBytes:         1 << 20,
		AllowedFileExtensions:  []string{".jpg", ".png"},
		Attendance:             config.DefaultAttendancePolicy(),
	}
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	srv := server.NewServer(server.Deps{Config: testConfig(), DB: db})
	router := srv.Handler()

	do := func(method, target string, body any, token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, testutil.JSONRequest(t, method, target, body, token))
		return w
	}

	staffToken := testutil.Token(t, secret, testutil.CreateUser(t, db, entity.RoleStaff))
	adminToken := testutil.Token(t, secret, testutil.CreateUser(t, db, entity.RoleAdmin))

	t.Run("probes are public", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/health", nil, "").Code)
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/", nil, "").Code)
	})

	t.Run("api requires a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/api/v1/children", nil, "").Code)
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/api/v1/dashboard/summary", nil, "bogus").Code)
	})

	t.Run("register then login", func(t *testing.T) {
		w := do(http.MethodPost, "/api/v1/auth/register", map[string]any{
			"email":      "jane@example.com",
			"password":   "password123",
			"first_name": "Jane",
			"last_name":  "Doe",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = do(http.MethodPost, "/api/v1/auth/login", map[string]any{
			"email":    "jane@example.com",
			"password": "password123",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "bearer", res.TokenType)

		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/auth/me", nil, res.AccessToken).Code)
	})

	t.Run("admin routes check capability", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(http.MethodGet, "/api/v1/admin/users", nil, staffToken).Code)
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/admin/users", nil, adminToken).Code)

		assert.Equal(t, http.StatusForbidden, do(http.MethodPost, "/api/v1/compliance/alerts/scan", nil, staffToken).Code)
		assert.Equal(t, http.StatusOK, do(http.MethodPost, "/api/v1/compliance/alerts/scan", nil, adminToken).Code)
	})

	t.Run("dashboard reflects new children", func(t *testing.T) {
		w := do(http.MethodPost, "/api/v1/children", map[string]any{
			"first_name":      "Emma",
			"last_name":       "Johnson",
			"date_of_birth":   "2021-03-20",
			"enrollment_date": "2024-01-15",
		}, staffToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = do(http.MethodGet, "/api/v1/dashboard/summary", nil, staffToken)
		require.Equal(t, http.StatusOK, w.Code)
		var summary map[string]int64
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, int64(1), summary["active_children"])
	})

	t.Run("optional integrations degrade", func(t *testing.T) {
		w := do(http.MethodGet, "/api/v1/search?q=emma", nil, staffToken)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		w = do(http.MethodGet, "/api/v1/announcements/active", nil, staffToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
