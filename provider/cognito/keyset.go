package cognito

import (
	"net/http"
	"sync"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"

	concert "github.com/MorningMores/concert-backend"
)

// KeySet lazily fetches and caches the user pool's verification keys.
// Initialization is guarded so concurrent first uses build exactly one
// JWKS client; a failed fetch is not memoized, the next request retries.
type KeySet struct {
	cfg     Config
	jwksURL string
	logger  concert.Logger

	mu   sync.Mutex
	jwks *keyfunc.JWKS
}

type KeySetOption func(*KeySet)

// WithJWKSURL overrides the discovery URL derived from region and pool id.
func WithJWKSURL(url string) KeySetOption {
	return func(k *KeySet) {
		if url != "" {
			k.jwksURL = url
		}
	}
}

// NewKeySet returns an unpopulated key set. No network traffic happens
// until the first verification needs a key.
func NewKeySet(cfg Config, logger concert.Logger, opts ...KeySetOption) *KeySet {
	if logger == nil {
		logger = NopLogger{}
	}

	k := &KeySet{
		cfg:     cfg,
		jwksURL: cfg.JWKSURL(),
		logger:  logger,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(k)
		}
	}

	return k
}

// Keyfunc resolves the public key for a token header, populating the cache
// on first use. It satisfies jwt.Keyfunc.
func (k *KeySet) Keyfunc(token *jwt.Token) (any, error) {
	jwks, err := k.get()
	if err != nil {
		return nil, err
	}
	return jwks.Keyfunc(token)
}

// Close stops the background refresh goroutine.
func (k *KeySet) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.jwks != nil {
		k.jwks.EndBackground()
		k.jwks = nil
	}
}

func (k *KeySet) get() (*keyfunc.JWKS, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.jwks != nil {
		return k.jwks, nil
	}

	jwks, err := keyfunc.Get(k.jwksURL, keyfunc.Options{
		Client: &http.Client{
			Timeout: k.cfg.requestTimeout(),
		},
		RefreshInterval:   k.cfg.refreshInterval(),
		RefreshRateLimit:  k.cfg.refreshRateLimit(),
		RefreshTimeout:    k.cfg.requestTimeout(),
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			k.logger.Error("cognito key set background refresh failed", "error", err)
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to fetch cognito JWK set")
	}

	k.logger.Info("cognito key set initialized", "url", k.jwksURL)
	k.jwks = jwks
	return jwks, nil
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
