package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tutorbook-app/backend/internal/auth"
	"github.com/tutorbook-app/backend/internal/model"
	"go.uber.org/zap"
)

const (
	localsUserID = "user_id"
	localsRole   = "role"
)

// RequestLogger tags every request with an id and logs method, path,
// status and duration.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)

		start := time.Now()
		err := c.Next()

		logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)

		return err
	}
}

// Auth verifies the Bearer token and stores the caller's id and role.
func Auth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return Error(c, fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
		if err != nil {
			return Error(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(localsUserID, claims.UserID)
		c.Locals(localsRole, claims.Role)

		return c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after Auth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, ok := c.Locals(localsRole).(model.Role); !ok || role != model.RoleAdmin {
			return Error(c, fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

func callerID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(localsUserID).(int64)
	return id
}

func callerIsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals(localsRole).(model.Role)
	return role == model.RoleAdmin
}
