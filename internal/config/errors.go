package config

import "errors"

var (
	// ErrReadingJSONFile is returned when the JSON config file cannot be read.
	ErrReadingJSONFile = errors.New("error reading json config file")
	// ErrUnmarshallingJSON is returned when the JSON config file cannot be parsed.
	ErrUnmarshallingJSON = errors.New("error unmarshalling json config")
	// ErrMergingConfigs is returned when configuration sources cannot be merged.
	ErrMergingConfigs = errors.New("error merging configs")

	// ErrNoTokenSignKey is returned when no token signing key was configured.
	ErrNoTokenSignKey = errors.New("token sign key is required")
	// ErrNoPiiSecret is returned when no PII encryption secret was configured.
	ErrNoPiiSecret = errors.New("pii secret is required")
	// ErrNoPiiSalt is returned when no PII key-derivation salt was configured.
	ErrNoPiiSalt = errors.New("pii salt is required")
	// ErrNoDatabaseDSN is returned when no database DSN was configured.
	ErrNoDatabaseDSN = errors.New("database dsn is required")
)
