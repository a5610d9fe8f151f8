package config

import "time"

const (
	defaultHTTPAddress          = "localhost:8080"
	defaultTokenIssuer          = "go-bank-ledger"
	defaultRequestTimeout       = 30 * time.Second
	defaultSessionSweepInterval = time.Hour
)

// applyDefaults fills configuration fields no source provided.
func (c *StructuredConfig) applyDefaults() {
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = defaultHTTPAddress
	}
	if c.Auth.TokenIssuer == "" {
		c.Auth.TokenIssuer = defaultTokenIssuer
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.Workers.SessionSweepInterval == 0 {
		c.Workers.SessionSweepInterval = defaultSessionSweepInterval
	}
}

// validate checks that all required configuration fields are present.
func (c *StructuredConfig) validate() error {
	if c.Auth.TokenSignKey == "" {
		return ErrNoTokenSignKey
	}
	if c.Pii.Secret == "" {
		return ErrNoPiiSecret
	}
	if c.Pii.Salt == "" {
		return ErrNoPiiSalt
	}
	if c.Storage.DB.DSN == "" {
		return ErrNoDatabaseDSN
	}

	return nil
}
