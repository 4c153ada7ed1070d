package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID on requests and responses.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey stores the request ID in Fiber's context locals.
	RequestIDLocalKey = "request_id"
)

// RequestID propagates the incoming X-Request-ID or mints a fresh UUID when
// the client sent none. The value is stored in context locals for handlers
// and the logger, and echoed on the response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
