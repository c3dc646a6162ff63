// Package gin wraps the gin-gonic engine, so other adapters (e.g., the
// config package) may instantiate and configure it without depending
// on the gin-gonic module directly. Resources are implemented by the
// sub-packages, like usersrs, and are registered by the routes package.
package gin

import (
	"fmt"
	"log/slog"

	ginslog "github.com/FabienMht/ginslog/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/clean-crud/pkg/core/log"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// RequestIDHeader is the HTTP header which carries the request id.
const RequestIDHeader = "X-Request-ID"

// New instantiates a gin-gonic engine with the given middlewares.
// The context fallback is enabled, so a *gin.Context which is passed
// to the use cases exposes the values of its request context, such as
// the logging attributes.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.ContextWithFallback = true
	e.Use(middlewares...)
	return e
}

// SetMode switches the gin-gonic global mode. Only the debug, release,
// and test modes are accepted.
func SetMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
		return nil
	}
	return fmt.Errorf("unknown gin mode: %q", mode)
}

// Logger writes an access log entry per request using l.
func Logger(l *slog.Logger) HandlerFunc {
	return ginslog.New(l)
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestID takes the request id from the X-Request-ID header or
// generates a random one, echoes it in the response, and adds it to
// the logging attributes of the request context.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		ctx := log.WithAttrs(
			c.Request.Context(), slog.String("request_id", id),
		)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
