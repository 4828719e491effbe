package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	traceHeader   = "X-Trace-Id"
	traceCtxKey   = "trace_id"
	routeUnmapped = "unmatched"
)

// traceMiddleware attaches a trace ID to every request, honoring one
// supplied by the caller.
func (s *Server) traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Set(traceCtxKey, traceID)
		c.Header(traceHeader, traceID)
		c.Next()
	}
}

// loggingMiddleware emits one summary line per request and records the
// request metrics.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = routeUnmapped
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		evt := s.logger.Info()
		if status >= 500 {
			evt = s.logger.Error()
		}
		evt.
			Str("trace_id", c.GetString(traceCtxKey)).
			Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Int64("duration_ms", elapsed.Milliseconds()).
			Msg("request handled")
	}
}
