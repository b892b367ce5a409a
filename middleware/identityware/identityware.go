// Package identityware resolves the request identity from a bearer
// credential. It mirrors the shape of a JWT middleware but never rejects a
// request: a missing or unverifiable credential means the request proceeds
// anonymous, and route handlers decide whether that is acceptable.
package identityware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	concert "github.com/MorningMores/concert-backend"
)

// bearerScheme is matched case-sensitively, single trailing space included.
const bearerScheme = "Bearer "

// DefaultContextKey is where the resolved principal is stored in locals.
const DefaultContextKey = "principal"

type Config struct {
	// TokenValidator resolves a raw token to claims. Compose the local and
	// remote validators with concert.NewMultiTokenValidator so the cheap
	// in-process check always runs before the network-bound one.
	TokenValidator concert.TokenValidator

	// ContextKey overrides where the principal is stored in request locals.
	ContextKey string

	// Logger receives debug output for rejected credentials.
	Logger concert.Logger

	// Filter skips resolution entirely when it returns true.
	Filter func(*fiber.Ctx) bool
}

// New builds the resolver middleware. It runs once per request: extract the
// bearer credential, validate it, and install the principal at most once.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, ok := FromAuthHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			cfg.Logger.Debug("bearer credential rejected, proceeding anonymous", "error", err)
			return c.Next()
		}

		principal := claims.Subject()
		if principal == "" {
			return c.Next()
		}

		// An identity installed by an earlier stage is never overwritten.
		if c.Locals(cfg.ContextKey) == nil {
			c.Locals(cfg.ContextKey, principal)
			c.SetUserContext(concert.WithPrincipal(c.UserContext(), principal))
		}

		return c.Next()
	}
}

// FromAuthHeader extracts the raw token from an Authorization header value.
// Only the exact `Bearer ` scheme qualifies; anything else means no
// credential was supplied.
func FromAuthHeader(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerScheme) {
		return "", false
	}
	token := header[len(bearerScheme):]
	if token == "" {
		return "", false
	}
	return token, true
}

// Principal returns the resolved principal for the request, if any.
func Principal(c *fiber.Ctx) (string, bool) {
	return PrincipalFromKey(c, DefaultContextKey)
}

// PrincipalFromKey reads the principal stored under a custom context key.
func PrincipalFromKey(c *fiber.Ctx, key string) (string, bool) {
	raw, ok := c.Locals(key).(string)
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenValidator == nil {
		panic("IDENTITY: middleware configuration: TokenValidator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}

	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}

	return cfg
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
