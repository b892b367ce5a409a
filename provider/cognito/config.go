package cognito

import (
	"fmt"
	"time"

	"github.com/goliatone/go-errors"
)

// Config holds Cognito configuration for token validation.
type Config struct {
	// Region is the AWS region hosting the user pool (e.g. "us-east-1").
	Region string

	// UserPoolID is the Cognito user pool identifier (e.g. "us-east-1_AbCdEfGhI").
	UserPoolID string

	// RefreshInterval is how often cached JWKS keys are refreshed in the
	// background. Default: 1 hour.
	RefreshInterval time.Duration

	// RefreshRateLimit bounds refreshes triggered by unknown key ids.
	// Default: 5 minutes.
	RefreshRateLimit time.Duration

	// RequestTimeout bounds every JWKS fetch so an unreachable identity
	// provider cannot stall a request indefinitely. Default: 10 seconds.
	RequestTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(region, userPoolID string) Config {
	return Config{
		Region:           region,
		UserPoolID:       userPoolID,
		RefreshInterval:  time.Hour,
		RefreshRateLimit: 5 * time.Minute,
		RequestTimeout:   10 * time.Second,
	}
}

// Validate checks the required fields.
func (c Config) Validate() error {
	if c.Region == "" {
		return errors.New("cognito region is required", errors.CategoryBadInput)
	}
	if c.UserPoolID == "" {
		return errors.New("cognito user pool id is required", errors.CategoryBadInput)
	}
	return nil
}

// IssuerURL returns the user pool's token issuer.
func (c Config) IssuerURL() string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", c.Region, c.UserPoolID)
}

// JWKSURL returns the well-known location of the pool's verification keys.
func (c Config) JWKSURL() string {
	return c.IssuerURL() + "/.well-known/jwks.json"
}

func (c Config) refreshInterval() time.Duration {
	if c.RefreshInterval > 0 {
		return c.RefreshInterval
	}
	return time.Hour
}

func (c Config) refreshRateLimit() time.Duration {
	if c.RefreshRateLimit > 0 {
		return c.RefreshRateLimit
	}
	return 5 * time.Minute
}

func (c Config) requestTimeout() time.Duration {
	if c.RequestTimeout > 0 {
		return c.RequestTimeout
	}
	return 10 * time.Second
}
