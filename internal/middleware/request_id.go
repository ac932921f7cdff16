package middleware

import (
	"crypto/rand"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
)

// RequestIDKey is the header and locals key for the request ID.
const RequestIDKey = "X-Request-ID"

// NewRequestIDMiddleware assigns every request a ULID unless the client
// already supplied one.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		if requestID == "" {
			ms := ulid.Timestamp(time.Now())
			entropy := ulid.Monotonic(rand.Reader, 0)
			if id, err := ulid.New(ms, entropy); err == nil {
				requestID = id.String()
			}
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
