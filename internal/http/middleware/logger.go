package middleware

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger emits one JSON object per request to stdout, matching the log shape
// used by the rest of the process (ts, level, then request fields).
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout, time.UTC)
}

// LoggerWithWriter is Logger with an explicit destination and timezone.
// The request_id field comes from context locals set by RequestID, the
// profile field from the Content-Profile header on negotiated responses.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		entry := map[string]any{
			"ts":         time.Now().In(loc).Format(time.RFC3339Nano),
			"level":      "info",
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency":    float64(time.Since(start).Microseconds()) / 1000.0,
			"bytes_out":  len(c.Response().Body()),
		}
		if p := c.GetRespHeader("Content-Profile"); p != "" {
			entry["profile"] = p
		}

		_ = enc.Encode(entry)

		return err
	}
}
