package concert

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes attached to auth errors so API clients can branch without
// string-matching messages.
const (
	TextCodeTokenMalformed    = "TOKEN_MALFORMED"
	TextCodeTokenBadSignature = "TOKEN_BAD_SIGNATURE"
	TextCodeTokenExpired      = "TOKEN_EXPIRED"
)

// ErrTokenMalformed means the token could not be split into its structural
// parts or its claims could not be decoded.
var ErrTokenMalformed = errors.New("Malformed authentication token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenBadSignature means the token parsed but its signature did not
// verify against the shared secret.
var ErrTokenBadSignature = errors.New("Invalid token signature", errors.CategoryAuth).
	WithTextCode(TextCodeTokenBadSignature).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired means the token parsed and verified but its expiry is in
// the past.
var ErrTokenExpired = errors.New("Authentication token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// NewNotFoundError reports a missing resource of the given kind. Kept
// distinct from unauthorized access so callers never conflate the two.
func NewNotFoundError(kind string) *errors.Error {
	return errors.New(kind+" not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound)
}

// NewUnauthorizedAccessError reports an ownership mismatch on a resource of
// the given kind.
func NewUnauthorizedAccessError(kind string) *errors.Error {
	return errors.New("Unauthorized access to "+kind, errors.CategoryAuthz).
		WithCode(errors.CodeForbidden)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsUnauthorizedAccessError reports whether err is an ownership denial.
func IsUnauthorizedAccessError(err error) bool {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.Category == errors.CategoryAuthz
}

// IsNotFoundError reports whether err marks a missing resource.
func IsNotFoundError(err error) bool {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.Category == errors.CategoryNotFound
}
