package cognito

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"

	concert "github.com/MorningMores/concert-backend"
)

// expectedAlg pins the verification algorithm. Anything other than RS256,
// including a downgraded HS256 token signed with public key material, is
// rejected before signature verification.
const expectedAlg = "RS256"

// Cognito claim names used during principal resolution.
const (
	claimTokenUse = "token_use"
	claimUsername = "cognito:username"
	claimEmail    = "email"
)

// TextCodeInvalidRemoteToken marks any Cognito verification failure.
const TextCodeInvalidRemoteToken = "COGNITO_TOKEN_INVALID"

// ErrInvalidRemoteToken is the collapsed failure for the remote path: bad
// signature, wrong algorithm, unresolvable key id, or an invalid token_use
// claim. The underlying cause is preserved by wrapping.
var ErrInvalidRemoteToken = errors.New("Invalid Cognito token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidRemoteToken).
	WithCode(errors.CodeUnauthorized)

// TokenValidator verifies Cognito-issued tokens against the cached key set.
type TokenValidator struct {
	keys   *KeySet
	logger concert.Logger
}

var _ concert.TokenValidator = (*TokenValidator)(nil)

func NewTokenValidator(keys *KeySet, logger concert.Logger) *TokenValidator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &TokenValidator{
		keys:   keys,
		logger: logger,
	}
}

// Verify checks the token signature against the key set and validates the
// token_use claim. It returns the full claim set on success.
func (v *TokenValidator) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(
		tokenString,
		v.keys.Keyfunc,
		jwt.WithValidMethods([]string{expectedAlg}),
	)
	if err != nil {
		return nil, invalidRemoteToken(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidRemoteToken
	}

	tokenUse, _ := claims[claimTokenUse].(string)
	if tokenUse != "id" && tokenUse != "access" {
		return nil, errors.New("invalid token_use claim: "+tokenUse, errors.CategoryAuth).
			WithTextCode(TextCodeInvalidRemoteToken).
			WithCode(errors.CodeUnauthorized)
	}

	v.logger.Debug("validated cognito token", "sub", claims["sub"])
	return claims, nil
}

// Principal resolves the username for a verified token: the pool username
// claim first, then email, then the subject identifier. Each step runs only
// when the previous one yields nothing; the subject always resolves for a
// token that parsed.
func (v *TokenValidator) Principal(tokenString string) (string, error) {
	claims, err := v.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return principalFromClaims(claims), nil
}

// Validate satisfies concert.TokenValidator so the identity resolver can
// chain the remote path after the local one.
func (v *TokenValidator) Validate(tokenString string) (concert.AuthClaims, error) {
	claims, err := v.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	vc := validatedClaims{principal: principalFromClaims(claims)}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		vc.expires = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		vc.issuedAt = iat.Time
	}

	return vc, nil
}

// principalExtractors is the ordered fallback chain, applied until one
// returns a non-empty name.
var principalExtractors = []func(jwt.MapClaims) string{
	func(c jwt.MapClaims) string {
		name, _ := c[claimUsername].(string)
		return name
	},
	func(c jwt.MapClaims) string {
		email, _ := c[claimEmail].(string)
		return email
	},
	func(c jwt.MapClaims) string {
		sub, _ := c["sub"].(string)
		return sub
	},
}

func principalFromClaims(claims jwt.MapClaims) string {
	for _, extract := range principalExtractors {
		if name := extract(claims); name != "" {
			return name
		}
	}
	return ""
}

func invalidRemoteToken(cause error) error {
	return errors.Wrap(cause, ErrInvalidRemoteToken.Category, ErrInvalidRemoteToken.Message).
		WithTextCode(TextCodeInvalidRemoteToken).
		WithCode(errors.CodeUnauthorized)
}

type validatedClaims struct {
	principal string
	expires   time.Time
	issuedAt  time.Time
}

func (c validatedClaims) Subject() string     { return c.principal }
func (c validatedClaims) Expires() time.Time  { return c.expires }
func (c validatedClaims) IssuedAt() time.Time { return c.issuedAt }
