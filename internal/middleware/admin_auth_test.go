package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
)

func newAdminRouter(t *testing.T, apiKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	router := gin.New()
	auth := NewAdminAuthMiddleware(log, apiKey)
	admin := router.Group("/api/admin", auth.RequireAdmin())
	admin.GET("/prompts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name       string
		configured string
		header     string
		value      string
		wantStatus int
	}{
		{
			name:       "missing_credential",
			configured: "secret-key",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong_header_key",
			configured: "secret-key",
			header:     "X-Admin-Api-Key",
			value:      "other-key",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "correct_header_key",
			configured: "secret-key",
			header:     "X-Admin-Api-Key",
			value:      "secret-key",
			wantStatus: http.StatusOK,
		},
		{
			name:       "correct_bearer_token",
			configured: "secret-key",
			header:     "Authorization",
			value:      "Bearer secret-key",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong_bearer_token",
			configured: "secret-key",
			header:     "Authorization",
			value:      "Bearer other-key",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer_scheme_required",
			configured: "secret-key",
			header:     "Authorization",
			value:      "secret-key",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unconfigured_key_rejects_everything",
			configured: "",
			header:     "X-Admin-Api-Key",
			value:      "anything",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty_credential_never_matches_empty_config",
			configured: "",
			header:     "X-Admin-Api-Key",
			value:      "",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newAdminRouter(t, tc.configured)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/prompts", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status=%d, want %d (body=%s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantStatus == http.StatusUnauthorized {
				if !strings.Contains(rec.Body.String(), `"error":"Unauthorized"`) {
					t.Fatalf("unauthorized body=%s", rec.Body.String())
				}
			}
		})
	}
}
