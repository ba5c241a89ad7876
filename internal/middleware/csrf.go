package middleware

import (
	"crypto/hmac"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/memodb-io/rentspot/internal/config"
	"github.com/memodb-io/rentspot/internal/modules/serializer"
	"github.com/memodb-io/rentspot/internal/pkg/utils/tokens"
)

const (
	// CSRFSecretCookie holds the per-browser secret; never readable by scripts.
	CSRFSecretCookie = "_csrf"
	// CSRFTokenCookie is readable by the client, which echoes it in CSRFTokenHeader.
	CSRFTokenCookie = "XSRF-TOKEN"
	CSRFTokenHeader = "XSRF-Token"
)

func csrfToken(cfg *config.Config, secret string) string {
	return tokens.HMAC256Hex(cfg.CSRF.Pepper, secret)
}

const csrfSecretKey = "csrf_secret"

// csrfSecret prefers a secret minted earlier in this request over the cookie.
func csrfSecret(c *gin.Context) (string, bool) {
	if v := c.GetString(csrfSecretKey); v != "" {
		return v, true
	}
	s, err := c.Cookie(CSRFSecretCookie)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

// IssueCSRFToken makes sure the caller holds a secret cookie and sets the
// matching token cookie. It returns the token.
func IssueCSRFToken(c *gin.Context, cfg *config.Config) string {
	secret, ok := csrfSecret(c)
	if !ok {
		secret = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CSRFSecretCookie, secret, 0, "/", "", cfg.CSRF.CookieSecure, true)
	}
	c.Set(csrfSecretKey, secret)
	token := csrfToken(cfg, secret)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CSRFTokenCookie, token, 0, "/", "", cfg.CSRF.CookieSecure, false)
	return token
}

func safeMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
}

// CSRF returns a double-submit middleware: safe methods get cookies issued when
// missing, every other method must echo the token in the XSRF-Token header.
func CSRF(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if safeMethod(c.Request.Method) {
			if _, ok := csrfSecret(c); !ok {
				IssueCSRFToken(c, cfg)
			}
			c.Next()
			return
		}

		_, span := otel.Tracer("middleware").Start(c.Request.Context(), "csrf_check",
			trace.WithAttributes(attribute.String("middleware", "csrf")))
		defer span.End()

		secret, err := c.Cookie(CSRFSecretCookie)
		header := c.GetHeader(CSRFTokenHeader)
		if err != nil || secret == "" || header == "" ||
			!hmac.Equal([]byte(header), []byte(csrfToken(cfg, secret))) {
			span.SetAttributes(attribute.Bool("csrf.valid", false))
			c.AbortWithStatusJSON(http.StatusForbidden, serializer.ForbiddenErr("invalid csrf token"))
			return
		}

		span.SetAttributes(attribute.Bool("csrf.valid", true))
		c.Next()
	}
}
