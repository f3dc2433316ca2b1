package services

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", ErrNotFound, 404},
		{"already registered", ErrAlreadyRegistered, 409},
		{"capacity exceeded", ErrCapacityExceeded, 403},
		{"event closed", ErrEventClosed, 403},
		{"invalid input", ErrInvalidInput, 400},
		{"unavailable", ErrUnavailable, 503},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/r", func(c *fiber.Ctx) error {
				return registrationError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest("POST", "/r", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
