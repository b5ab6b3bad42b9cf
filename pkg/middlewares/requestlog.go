// pkg/middlewares/requestlog.go
package middleware

import (
	"time"

	"bluepriori-dashboard/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader correlates a dashboard request with the inventory calls it triggers
const RequestIDHeader = "X-Request-ID"

// RequestIDLocal is the fiber local holding the request id
const RequestIDLocal = "requestId"

type RequestLogger struct {
	log *utils.Logger
}

func NewRequestLogger(log *utils.Logger) *RequestLogger {
	return &RequestLogger{log: log}
}

// Handle tags every request with an id and logs it once handled
func (m *RequestLogger) Handle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if utils.ValidateUUID(id) != nil {
			id = uuid.NewString()
		}
		c.Locals(RequestIDLocal, id)
		c.Set(RequestIDHeader, id)

		start := time.Now()
		err := c.Next()

		// Health check en debug pour éviter le spam
		if c.Path() == "/health" {
			m.log.Debug("Health check")
			return err
		}

		entry := m.log.WithFields(logrus.Fields{
			"path":      c.Path(),
			"method":    c.Method(),
			"route":     c.Route().Path,
			"status":    c.Response().StatusCode(),
			"duration":  time.Since(start).String(),
			"requestId": id,
		})
		if err != nil {
			entry.WithError(err).Warn("Request failed")
		} else {
			entry.Info("Incoming request")
		}
		return err
	}
}

// RequestID returns the id assigned by Handle, or "" outside of it
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDLocal).(string)
	return id
}
