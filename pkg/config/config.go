// Package config resolves the server configuration from the command line, the
// environment and .env files.
package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvAPIKey is consulted when no API key argument is given.
const EnvAPIKey = "NFTGO_API_KEY"

// Viper keys, shared with the command line flags of the same name.
const (
	KeyAPIKey    = "api-key"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyHTTPAddr  = "http"
)

// ErrAPIKeyRequired is returned when no usable API key was supplied.
var ErrAPIKeyRequired = errors.New("Please provide a valid NFTGo API key as a command-line argument")

// Config is the process-wide configuration, built once at startup and passed
// to the components that need it.
type Config struct {
	APIKey    string
	LogLevel  string
	LogFormat string

	// HTTPAddr switches the MCP transport from stdio to streamable HTTP.
	HTTPAddr string
}

// NewViper returns a viper instance with environment bindings and defaults.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv(KeyAPIKey, EnvAPIKey)
	_ = v.BindEnv(KeyLogLevel, "LOG_LEVEL")
	_ = v.BindEnv(KeyLogFormat, "LOG_FORMAT")
	_ = v.BindEnv(KeyHTTPAddr, "NFTGO_MCP_HTTP")

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	return v
}

// LoadEnvFiles loads .env style files into the process environment. Missing
// files are skipped and variables already set are not overridden.
func LoadEnvFiles(files ...string) {
	if len(files) == 0 {
		files = []string{".env.local", ".env"}
	}
	for _, file := range files {
		_ = godotenv.Load(file)
	}
}

// Load builds a Config. A positional API key argument wins over the
// environment; an explicitly empty one is rejected. Any other value is
// taken as is.
func Load(v *viper.Viper, args []string) (Config, error) {
	cfg := Config{
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		HTTPAddr:  v.GetString(KeyHTTPAddr),
	}

	if len(args) > 0 {
		cfg.APIKey = args[0]
	} else {
		cfg.APIKey = v.GetString(KeyAPIKey)
	}

	if cfg.APIKey == "" {
		return cfg, ErrAPIKeyRequired
	}

	return cfg, nil
}
