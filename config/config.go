// Package config holds the application configuration tree loaded through
// go-config. Sections map one to one to JSON keys and environment
// overrides.
package config

import (
	"fmt"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"

	concert "github.com/MorningMores/concert-backend"
)

// BaseConfig satisfies the root auth config contract so the token service
// and the Cognito key set can be built straight from the loaded tree; the
// persistence section satisfies the bun client's config contract.
var (
	_ concert.Config     = (*BaseConfig)(nil)
	_ persistence.Config = (*Persistence)(nil)
)

type BaseConfig struct {
	Env         string       `json:"env" env:"APP_ENV"`
	Server      *Server      `json:"server"`
	Auth        *Auth        `json:"auth"`
	Cognito     *Cognito     `json:"cognito"`
	Persistence *Persistence `json:"persistence"`
}

type Server struct {
	Address string `json:"address" env:"SERVER_ADDRESS"`
}

type Auth struct {
	SigningKey              string `json:"signing_key" env:"AUTH_SIGNING_KEY"`
	Issuer                  string `json:"issuer" env:"AUTH_ISSUER"`
	TokenLifetimeExpression string `json:"token_lifetime" env:"AUTH_TOKEN_LIFETIME"`
}

type Cognito struct {
	Region     string `json:"region" env:"COGNITO_REGION"`
	UserPoolID string `json:"user_pool_id" env:"COGNITO_USER_POOL_ID"`
}

type Persistence struct {
	Debug                 bool   `json:"debug" env:"PERSISTENCE_DEBUG"`
	Driver                string `json:"driver" env:"PERSISTENCE_DRIVER"`
	DSN                   string `json:"dsn" env:"PERSISTENCE_DSN"`
	Server                string `json:"server" env:"PERSISTENCE_SERVER"`
	Database              string `json:"database" env:"PERSISTENCE_DATABASE"`
	OtelIdentifier        string `json:"otel_identifier"`
	PingTimeoutExpression string `json:"ping_timeout"`
}

// Validate satisfies the go-config container contract. Only hard
// requirements are enforced here; optional sections default at read time.
func (a *BaseConfig) Validate() error {
	if a.GetAuth().SigningKey == "" {
		return fmt.Errorf("config: auth.signing_key is required")
	}
	return nil
}

func (a *BaseConfig) GetEnv() string {
	if a.Env == "" {
		return "development"
	}
	return a.Env
}

func (a *BaseConfig) GetServer() *Server {
	if a.Server == nil {
		a.Server = &Server{}
	}
	return a.Server
}

func (a *BaseConfig) GetAuth() *Auth {
	if a.Auth == nil {
		a.Auth = &Auth{}
	}
	return a.Auth
}

func (a *BaseConfig) GetCognito() *Cognito {
	if a.Cognito == nil {
		a.Cognito = &Cognito{}
	}
	return a.Cognito
}

func (a *BaseConfig) GetPersistence() *Persistence {
	if a.Persistence == nil {
		a.Persistence = &Persistence{}
	}
	return a.Persistence
}

// Flattened getters for the root auth config contract.

func (a *BaseConfig) GetSigningKey() string {
	return a.GetAuth().GetSigningKey()
}

func (a *BaseConfig) GetTokenLifetime() time.Duration {
	return a.GetAuth().GetTokenLifetime()
}

func (a *BaseConfig) GetIssuer() string {
	return a.GetAuth().GetIssuer()
}

func (a *BaseConfig) GetCognitoRegion() string {
	return a.GetCognito().GetRegion()
}

func (a *BaseConfig) GetCognitoUserPoolID() string {
	return a.GetCognito().GetUserPoolID()
}

func (s *Server) GetAddress() string {
	if s.Address == "" {
		return ":9090"
	}
	return s.Address
}

func (a *Auth) GetSigningKey() string {
	return a.SigningKey
}

func (a *Auth) GetIssuer() string {
	if a.Issuer == "" {
		return "concert-backend"
	}
	return a.Issuer
}

// GetTokenLifetime parses the configured lifetime expression. An empty or
// invalid expression yields zero so the token service applies its default.
func (a *Auth) GetTokenLifetime() time.Duration {
	if a.TokenLifetimeExpression == "" {
		return 0
	}
	dur, err := time.ParseDuration(a.TokenLifetimeExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", a.TokenLifetimeExpression),
		)
	}
	return dur
}

func (c *Cognito) GetRegion() string {
	return c.Region
}

func (c *Cognito) GetUserPoolID() string {
	return c.UserPoolID
}

// Enabled reports whether the remote verification path is configured.
func (c *Cognito) Enabled() bool {
	return c.Region != "" && c.UserPoolID != ""
}

func (p *Persistence) GetDriver() string {
	if p.Driver == "" {
		return "sqlite"
	}
	return p.Driver
}

func (p *Persistence) GetDSN() string {
	if p.DSN == "" {
		return "file::memory:?cache=shared"
	}
	return p.DSN
}

func (p *Persistence) GetDebug() bool {
	return p.Debug
}

func (p *Persistence) GetServer() string {
	return p.Server
}

// GetDatabase defaults to the DSN, which is the database for file-backed
// drivers.
func (p *Persistence) GetDatabase() string {
	if p.Database == "" {
		return p.GetDSN()
	}
	return p.Database
}

func (p *Persistence) GetOtelIdentifier() string {
	if p.OtelIdentifier == "" {
		return "concert-backend"
	}
	return p.OtelIdentifier
}

func (p *Persistence) GetPingTimeout() time.Duration {
	if p.PingTimeoutExpression == "" {
		return 5 * time.Second
	}
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}
