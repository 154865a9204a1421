package httppresentation

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/observability"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/pkg/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	headerUserID   = "X-User-Id"
	headerDemoMode = "X-Demo-Mode"
	headerDemoUser = "X-Demo-User"
	headerAuth     = "Authorization"
	bearerPrefix   = "Bearer "
)

// RequestLogger injects a request-scoped logger into the context and writes a
// single access log line after the handler completes.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		logger := base.With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		ctx := logging.ContextWithLogger(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		logger.Info("http_access",
			zap.String("route", routeTemplate(c)),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
		)
	}
}

// HTTPMetrics records request counts and durations using injected vectors.
func HTTPMetrics(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := routeTemplate(c)
		metrics.HTTPRequests.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

// routeTemplate returns the stable route pattern for low-cardinality labels.
func routeTemplate(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}

// Identity resolves the request's actor before any business logic runs and
// stores it as an explicit context value. Resolution failures (malformed id
// header, invalid or expired token, unknown subject) short-circuit here and
// never reach a handler.
func Identity(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		md := identity.Metadata{
			UserID:   c.GetHeader(headerUserID),
			DemoMode: c.GetHeader(headerDemoMode),
			DemoUser: c.GetHeader(headerDemoUser),
			Bearer:   bearerToken(c.GetHeader(headerAuth)),
		}

		actor, err := resolver.Resolve(c.Request.Context(), md)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		if actor != nil {
			ctx := identity.ContextWithActor(c.Request.Context(), actor)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}
	return ""
}

// RequireAuthenticated gates the authenticated tier: any resolved actor,
// demo actors included, may pass.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity.ActorFromContext(c.Request.Context()) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates the privileged tier.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := identity.ActorFromContext(c.Request.Context())
		if actor == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !actor.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}
