package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/memodb-io/rentspot/internal/config"
	"github.com/memodb-io/rentspot/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFHandler_Restore(t *testing.T) {
	cfg := &config.Config{}
	cfg.CSRF.Pepper = "pepper"
	router := setupRouter()
	router.GET("/api/csrf/restore", NewCSRFHandler(cfg).Restore)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/csrf/restore", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &body))
	token := body[middleware.CSRFTokenHeader]
	assert.NotEmpty(t, token)

	var cookieToken string
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.CSRFTokenCookie {
			cookieToken = ck.Value
		}
	}
	assert.Equal(t, token, cookieToken)
}
