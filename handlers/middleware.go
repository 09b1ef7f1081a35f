package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Gautam3767/product-catalog-backend/services"
)

const (
	// adminCookie holds the admin token for the server-rendered admin shell.
	adminCookie = "admin_token"
	// claimsKey is where RequireAdmin stores the verified claims.
	claimsKey = "adminClaims"
)

// RequestLogger writes one structured line per request.
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := h.Log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"latency":  time.Since(start).String(),
			"clientIP": c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("Request handled")
		case status >= http.StatusBadRequest:
			entry.Warn("Request handled")
		default:
			entry.Debug("Request handled")
		}
	}
}

// Recovery turns a panic into a logged 500.
func (h *Handler) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.Log.WithField("panic", recovered).WithField("path", c.Request.URL.Path).Error("Handler panicked")
		fail(c, http.StatusInternalServerError, "internal server error")
	})
}

// RequireAdmin lets a request through only with a valid admin token, taken
// from the Authorization header or, failing that, the admin cookie.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := h.Auth.Verify(requestToken(c))
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func requestToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if token, err := c.Cookie(adminCookie); err == nil {
		return token
	}
	return ""
}

func adminClaims(c *gin.Context) *services.AdminClaims {
	if v, found := c.Get(claimsKey); found {
		if claims, isClaims := v.(*services.AdminClaims); isClaims {
			return claims
		}
	}
	return nil
}
