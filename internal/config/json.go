package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from a JSON string
// in Go duration syntax, e.g. "30s" or "1h".
type Duration struct {
	time.Duration
}

// UnmarshalJSON implements json.Unmarshaler for duration strings.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshallingJSON, err)
	}
	if raw == "" {
		d.Duration = 0
		return nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshallingJSON, err)
	}

	d.Duration = parsed
	return nil
}

// StructuredJSONConfig mirrors StructuredConfig for file-based configuration.
// Durations are strings in Go duration syntax.
type StructuredJSONConfig struct {
	Auth struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
	} `json:"auth"`
	Pii struct {
		Secret string `json:"secret"`
		Salt   string `json:"salt"`
	} `json:"pii"`
	Storage struct {
		DatabaseDSN string `json:"database_dsn"`
	} `json:"storage"`
	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`
	Workers struct {
		SessionSweepInterval Duration `json:"session_sweep_interval"`
	} `json:"workers"`
}

// parseJSON reads the JSON config file at the given path and maps it
// onto a StructuredConfig. An empty path yields an empty config.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	if jsonFilePath == "" {
		return &StructuredConfig{}, nil
	}

	data, err := os.ReadFile(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingJSONFile, err)
	}

	var jsonConfig StructuredJSONConfig
	if err = json.Unmarshal(data, &jsonConfig); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshallingJSON, err)
	}

	return &StructuredConfig{
		Auth: Auth{
			TokenSignKey: jsonConfig.Auth.TokenSignKey,
			TokenIssuer:  jsonConfig.Auth.TokenIssuer,
		},
		Pii: Pii{
			Secret: jsonConfig.Pii.Secret,
			Salt:   jsonConfig.Pii.Salt,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonConfig.Storage.DatabaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonConfig.Server.HTTPAddress,
			RequestTimeout: jsonConfig.Server.RequestTimeout.Duration,
		},
		Workers: Workers{
			SessionSweepInterval: jsonConfig.Workers.SessionSweepInterval.Duration,
		},
	}, nil
}
