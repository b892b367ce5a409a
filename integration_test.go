package concert_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	concert "github.com/MorningMores/concert-backend"
	"github.com/MorningMores/concert-backend/middleware/identityware"
)

// TestTokenToOwnershipFlow walks the full request path: mint a token,
// resolve it through the middleware, then apply the ownership guard to a
// loaded resource. The error handler keeps the two denial kinds on
// distinct HTTP statuses.
func TestTokenToOwnershipFlow(t *testing.T) {
	tokens, err := concert.NewTokenService(testSigningKey, time.Hour, "test-issuer", nil)
	require.NoError(t, err)

	bookingsByID := map[string]*concert.Booking{
		"11111111-1111-1111-1111-111111111111": {
			ID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			User: &concert.User{Username: "alice"},
		},
		"22222222-2222-2222-2222-222222222222": {
			ID:   uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			User: &concert.User{Username: "carol"},
		},
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: concert.NewErrorHandler(nil),
	})
	app.Use(identityware.New(identityware.Config{
		TokenValidator: concert.NewMultiTokenValidator(
			concert.TokenValidatorFunc(tokens.Validate),
		),
	}))
	app.Get("/bookings/:id", func(c *fiber.Ctx) error {
		principal, ok := concert.RequestPrincipal(c)
		if !ok {
			return concert.ErrAuthenticationRequired
		}

		booking := bookingsByID[c.Params("id")]
		if err := concert.AuthorizeOwnership("booking", booking, principal); err != nil {
			return err
		}

		return c.JSON(booking)
	})

	get := func(path, token string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	aliceToken, err := tokens.Generate("alice")
	require.NoError(t, err)

	t.Run("owner reads their booking", func(t *testing.T) {
		resp := get("/bookings/11111111-1111-1111-1111-111111111111", aliceToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("someone else's booking answers 403", func(t *testing.T) {
		resp := get("/bookings/22222222-2222-2222-2222-222222222222", aliceToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("a missing booking answers 404", func(t *testing.T) {
		resp := get("/bookings/33333333-3333-3333-3333-333333333333", aliceToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("no credential answers 401", func(t *testing.T) {
		resp := get("/bookings/11111111-1111-1111-1111-111111111111", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("an expired credential stays anonymous and answers 401", func(t *testing.T) {
		expired, err := concert.NewTokenService(testSigningKey, -time.Hour, "test-issuer", nil)
		require.NoError(t, err)

		staleToken, err := expired.Generate("alice")
		require.NoError(t, err)

		resp := get("/bookings/11111111-1111-1111-1111-111111111111", staleToken)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestHTTPStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found error", concert.NewNotFoundError("booking"), http.StatusNotFound},
		{"unauthorized access error", concert.NewUnauthorizedAccessError("booking"), http.StatusForbidden},
		{"expired token error", concert.ErrTokenExpired, http.StatusUnauthorized},
		{"authentication required", concert.ErrAuthenticationRequired, http.StatusUnauthorized},
		{"plain error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, concert.HTTPStatusFor(tc.err))
		})
	}
}
