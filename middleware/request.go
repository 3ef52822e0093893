package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"blog-api/helper"
	"blog-api/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	maxCapturedBody = 4 << 10
)

// RequestContext gives every request an id, a request-scoped logger and a
// deadline. JSON bodies are kept so failures can be logged with their input.
func RequestContext(log *slog.Logger, timeout time.Duration, h *helper.HTTPHelper) gin.HandlerFunc {
	log = logger.Resolve(log)

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		reqLog := log.With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		ctx := logger.WithContext(c.Request.Context(), reqLog)
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		c.Request = c.Request.WithContext(ctx)

		captureBody(c)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			h.SendError(c, "Request timed out", h.EmptyJsonMap(), http.StatusServiceUnavailable)
		}

		logger.FromContext(c.Request.Context()).Info("request",
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

func captureBody(c *gin.Context) {
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return
	}

	if len(body) > maxCapturedBody {
		body = body[:maxCapturedBody]
	}
	c.Set(helper.ContextBody, redactPassword(body))
}

const redacted = "[redacted]"

// redactPassword masks password fields and keeps the rest of the body.
// Bodies that do not decode as an object are dropped when they mention a
// password.
func redactPassword(body []byte) string {
	if !bytes.Contains(bytes.ToLower(body), []byte(`"password"`)) {
		return string(body)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return redacted
	}

	mask, _ := json.Marshal(redacted)
	for key := range fields {
		// encoding/json binds keys case-insensitively
		if strings.EqualFold(key, "password") {
			fields[key] = mask
		}
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return redacted
	}
	return string(out)
}
