package httpapi

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorbook-app/backend/internal/apperr"
	"go.uber.org/zap"
)

func TestServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.Validation("bad input"), fiber.StatusBadRequest},
		{apperr.Conflict("slot is already booked"), fiber.StatusConflict},
		{apperr.NotFound("slot 7"), fiber.StatusNotFound},
		{apperr.Forbidden("nope"), fiber.StatusForbidden},
		{apperr.ErrUnauthorized, fiber.StatusUnauthorized},
		{errors.New("database exploded"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.want), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return ServiceError(c, zap.NewNop(), tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
