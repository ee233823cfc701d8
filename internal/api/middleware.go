package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/service"
	"github.com/Nishantvidhuri/storebackend/internal/util"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// TokenParser validates a bearer token into a caller identity
type TokenParser interface {
	ParseToken(token string) (*service.Identity, error)
}

// requireAuth extracts and validates the bearer token, storing the caller
// identity in the gin context
func (h *Handler) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		return
	}
	token := strings.TrimPrefix(header, "Bearer ")

	ident, err := h.tokens.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	c.Set(identityKey, ident)
	c.Next()
}

// requireAdmin rejects non-admin callers; requireAuth must run first
func (h *Handler) requireAdmin(c *gin.Context) {
	ident := identityFrom(c)
	if ident == nil || !ident.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authorized as an admin"})
		return
	}
	c.Next()
}

func identityFrom(c *gin.Context) *service.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*service.Identity)
	return ident
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
