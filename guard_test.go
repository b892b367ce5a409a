package concert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	concert "github.com/MorningMores/concert-backend"
)

func TestAuthorize(t *testing.T) {
	booking := &concert.Booking{
		User: &concert.User{Username: "alice"},
	}

	t.Run("allows the owner", func(t *testing.T) {
		assert.Equal(t, concert.DecisionAllowed, concert.Authorize(booking, "alice"))
	})

	t.Run("denies another user as unauthorized", func(t *testing.T) {
		assert.Equal(t, concert.DecisionDeniedUnauthorized, concert.Authorize(booking, "carol"))
	})

	t.Run("denies an anonymous caller as unauthorized", func(t *testing.T) {
		assert.Equal(t, concert.DecisionDeniedUnauthorized, concert.Authorize(booking, ""))
	})

	t.Run("reports a nil resource as not found", func(t *testing.T) {
		assert.Equal(t, concert.DecisionDeniedNotFound, concert.Authorize(nil, "alice"))
	})

	t.Run("reports a typed nil resource as not found", func(t *testing.T) {
		var missing *concert.Booking
		assert.Equal(t, concert.DecisionDeniedNotFound, concert.Authorize(missing, "alice"))
	})

	t.Run("reports a resource without a loaded owner as not found", func(t *testing.T) {
		orphan := &concert.Booking{}
		assert.Equal(t, concert.DecisionDeniedNotFound, concert.Authorize(orphan, "alice"))
	})
}

func TestAuthorizeOwnership(t *testing.T) {
	event := &concert.Event{
		Organizer: &concert.User{Username: "alice"},
	}

	t.Run("returns nil for the owner", func(t *testing.T) {
		assert.NoError(t, concert.AuthorizeOwnership("event", event, "alice"))
	})

	t.Run("maps foreign ownership to an unauthorized error", func(t *testing.T) {
		err := concert.AuthorizeOwnership("event", event, "carol")

		assert.Error(t, err)
		assert.True(t, concert.IsUnauthorizedAccessError(err))
		assert.False(t, concert.IsNotFoundError(err))
		assert.Contains(t, err.Error(), "event")
	})

	t.Run("maps a missing resource to a not found error", func(t *testing.T) {
		err := concert.AuthorizeOwnership("booking", nil, "alice")

		assert.Error(t, err)
		assert.True(t, concert.IsNotFoundError(err))
		assert.False(t, concert.IsUnauthorizedAccessError(err))
		assert.Contains(t, err.Error(), "booking")
	})
}
