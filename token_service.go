package concert

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// DefaultTokenLifetime matches the legacy deployment default of 7 days.
const DefaultTokenLifetime = 7 * 24 * time.Hour

// minSigningKeyLen is the HS256 minimum: secrets shorter than the hash size
// weaken the MAC, so we refuse them up front instead of failing per token.
const minSigningKeyLen = 32

// TokenService mints and verifies the backend's own bearer tokens.
type TokenService interface {
	Generate(principal string) (string, error)
	Validate(tokenString string) (AuthClaims, error)
	IsExpired(tokenString string) bool
	ValidateForSubject(tokenString, principal string) bool
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey    []byte
	tokenLifetime time.Duration
	issuer        string
	logger        Logger
}

// NewTokenService creates a new TokenService instance. An undersized signing
// secret is rejected here so a misconfigured deployment fails at startup,
// not on the first login.
func NewTokenService(signingKey []byte, tokenLifetime time.Duration, issuer string, logger Logger) (TokenService, error) {
	if len(signingKey) < minSigningKeyLen {
		return nil, errors.New(
			fmt.Sprintf("signing key must be at least %d bytes, got %d", minSigningKeyLen, len(signingKey)),
			errors.CategoryInternal,
		)
	}

	if tokenLifetime <= 0 {
		tokenLifetime = DefaultTokenLifetime
	}

	if logger == nil {
		logger = defLogger{}
	}

	return &TokenServiceImpl{
		signingKey:    signingKey,
		tokenLifetime: tokenLifetime,
		issuer:        issuer,
		logger:        logger,
	}, nil
}

// NewTokenServiceFromConfig builds the token service straight from the
// loaded application config.
func NewTokenServiceFromConfig(cfg Config, logger Logger) (TokenService, error) {
	return NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenLifetime(),
		cfg.GetIssuer(),
		logger,
	)
}

// Generate creates a signed token for the given principal
func (ts *TokenServiceImpl) Generate(principal string) (string, error) {
	if principal == "" {
		return "", errors.New("principal must not be empty", errors.CategoryBadInput)
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   principal,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and verifies a token string, returning structured claims.
// Expiry is evaluated here with a dedicated check so a parseable but stale
// token always fails with ErrTokenExpired.
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	claims, err := ts.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if exp := claims.Expires(); exp.IsZero() || !time.Now().Before(exp) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// IsExpired reports whether the token's expiry has passed. A token we cannot
// parse or verify counts as expired.
func (ts *TokenServiceImpl) IsExpired(tokenString string) bool {
	claims, err := ts.parse(tokenString)
	if err != nil {
		return true
	}

	exp := claims.Expires()
	return exp.IsZero() || !time.Now().Before(exp)
}

// ValidateForSubject reports whether the token verifies, is not expired, and
// names the expected principal. It never propagates parse failures.
func (ts *TokenServiceImpl) ValidateForSubject(tokenString, principal string) bool {
	claims, err := ts.Validate(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject() == principal
}

func (ts *TokenServiceImpl) parse(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenBadSignature
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		ts.logger.Error("TokenService could not decode claims")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
