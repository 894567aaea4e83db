package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultParamPrefix namespaces the built-in bank profile when no SSM prefix
// is configured.
const DefaultParamPrefix = "/bank-assistant"

type Config struct {
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	ChatLogLevel     string `envconfig:"CHAT_LOG_LEVEL" default:"warn"`
	ServerPort       int    `envconfig:"SERVER_PORT" default:"8080"`
	AllowedOrigin    string `envconfig:"ALLOWED_ORIGIN" default:"*"`
	ChatURL          string `envconfig:"CHAT_URL" default:"http://localhost:8080"`
	AccountsTable    string `envconfig:"ACCOUNTS_TABLE"`
	ParamPrefix      string `envconfig:"PARAM_PREFIX"`
	MaxMessageLength int    `envconfig:"MAX_MESSAGE_LENGTH" default:"500"`
}

// Load reads the environment, after merging a .env file from the working
// directory if one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ParamPrefix = strings.TrimRight(strings.TrimSpace(cfg.ParamPrefix), "/")
	return &cfg, nil
}

// UseDynamoDB reports whether accounts are read from a DynamoDB table
// instead of the in-memory demo fixtures.
func (c *Config) UseDynamoDB() bool {
	return strings.TrimSpace(c.AccountsTable) != ""
}

// UseSSM reports whether the bank profile comes from SSM Parameter Store.
func (c *Config) UseSSM() bool {
	return c.ParamPrefix != ""
}

// ProfilePrefix is the prefix the assistant reads bank profile parameters under.
func (c *Config) ProfilePrefix() string {
	if c.UseSSM() {
		return c.ParamPrefix
	}
	return DefaultParamPrefix
}

// RequireAWS validates the settings the Lambda deployment cannot run without.
func (c *Config) RequireAWS() error {
	var missing []string
	if !c.UseDynamoDB() {
		missing = append(missing, "ACCOUNTS_TABLE")
	}
	if !c.UseSSM() {
		missing = append(missing, "PARAM_PREFIX")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return nil
}
