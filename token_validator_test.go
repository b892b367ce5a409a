package concert_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	concert "github.com/MorningMores/concert-backend"
)

type staticClaims struct {
	subject string
}

func (c staticClaims) Subject() string     { return c.subject }
func (c staticClaims) Expires() time.Time  { return time.Now().Add(time.Hour) }
func (c staticClaims) IssuedAt() time.Time { return time.Now() }

func acceptAs(subject string) concert.TokenValidator {
	return concert.TokenValidatorFunc(func(string) (concert.AuthClaims, error) {
		return staticClaims{subject: subject}, nil
	})
}

func rejectWith(err error) concert.TokenValidator {
	return concert.TokenValidatorFunc(func(string) (concert.AuthClaims, error) {
		return nil, err
	})
}

func TestMultiTokenValidator(t *testing.T) {
	t.Run("first success wins", func(t *testing.T) {
		validator := concert.NewMultiTokenValidator(
			acceptAs("local"),
			acceptAs("remote"),
		)

		claims, err := validator.Validate("token")

		assert.NoError(t, err)
		assert.Equal(t, "local", claims.Subject())
	})

	t.Run("falls through an expired local token to the next validator", func(t *testing.T) {
		validator := concert.NewMultiTokenValidator(
			rejectWith(concert.ErrTokenExpired),
			acceptAs("remote"),
		)

		claims, err := validator.Validate("token")

		assert.NoError(t, err)
		assert.Equal(t, "remote", claims.Subject())
	})

	t.Run("falls through a bad signature to the next validator", func(t *testing.T) {
		validator := concert.NewMultiTokenValidator(
			rejectWith(concert.ErrTokenBadSignature),
			acceptAs("remote"),
		)

		claims, err := validator.Validate("token")

		assert.NoError(t, err)
		assert.Equal(t, "remote", claims.Subject())
	})

	t.Run("returns the last failure when every validator rejects", func(t *testing.T) {
		validator := concert.NewMultiTokenValidator(
			rejectWith(concert.ErrTokenExpired),
			rejectWith(concert.ErrTokenBadSignature),
		)

		claims, err := validator.Validate("token")

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, concert.ErrTokenBadSignature)
	})

	t.Run("skips nil validators", func(t *testing.T) {
		validator := concert.NewMultiTokenValidator(nil, acceptAs("only"))

		claims, err := validator.Validate("token")

		assert.NoError(t, err)
		assert.Equal(t, "only", claims.Subject())
	})

	t.Run("empty chain rejects", func(t *testing.T) {
		validator := concert.NewMultiTokenValidator()

		claims, err := validator.Validate("token")

		assert.Nil(t, claims)
		assert.Error(t, err)
	})
}
