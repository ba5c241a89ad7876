package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memodb-io/rentspot/internal/config"
)

func csrfConfig() *config.Config {
	cfg := &config.Config{}
	cfg.CSRF.Pepper = "pepper"
	return cfg
}

func setupCSRFRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CSRF(cfg))
	r.GET("/api/csrf/restore", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"XSRF-Token": IssueCSRFToken(c, cfg)})
	})
	r.POST("/api/spots", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func cookieValue(cookies []*http.Cookie, name string) string {
	for _, c := range cookies {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func TestCSRF_SafeMethodIssuesCookies(t *testing.T) {
	r := setupCSRFRouter(csrfConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/csrf/restore", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	secret := cookieValue(cookies, CSRFSecretCookie)
	token := cookieValue(cookies, CSRFTokenCookie)
	assert.NotEmpty(t, secret)
	assert.Equal(t, csrfToken(csrfConfig(), secret), token)
	assert.Contains(t, w.Body.String(), token)
}

func TestCSRF_MutatingRequests(t *testing.T) {
	cfg := csrfConfig()
	secret := "11111111-2222-3333-4444-555555555555"
	good := csrfToken(cfg, secret)

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
	}{
		{name: "valid token", secret: secret, header: good, wantStatus: http.StatusCreated},
		{name: "missing header", secret: secret, wantStatus: http.StatusForbidden},
		{name: "missing secret cookie", header: good, wantStatus: http.StatusForbidden},
		{name: "token for another secret", secret: "other", header: good, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupCSRFRouter(cfg)
			req := httptest.NewRequest(http.MethodPost, "/api/spots", nil)
			if tt.secret != "" {
				req.AddCookie(&http.Cookie{Name: CSRFSecretCookie, Value: tt.secret})
			}
			if tt.header != "" {
				req.Header.Set(CSRFTokenHeader, tt.header)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.JSONEq(t, `{"message":"invalid csrf token"}`, w.Body.String())
			}
		})
	}
}
