package exchange

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/quantbench/futures-trader/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when credentials are not supplied
// explicitly.
const (
	EnvAPIKey    = "BINANCE_API_KEY"
	EnvSecretKey = "BINANCE_API_SECRET"
)

// Config contains credentials and environment selection for the Binance
// futures client.
type Config struct {
	APIKey    string `yaml:"api_key" json:"apiKey" validate:"required"`
	SecretKey string `yaml:"secret_key" json:"secretKey" validate:"required"`
	// Testnet selects the Binance Futures testnet environment.
	Testnet bool `yaml:"testnet" json:"testnet"`
	// BaseURL overrides the API endpoint; takes precedence over Testnet.
	BaseURL string `yaml:"base_url" json:"baseUrl"`
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid binance config", err)
	}

	return nil
}

// LoadConfigFile parses a YAML configuration file into a Config.
func LoadConfigFile(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return ParseConfig(contents)
}

// ParseConfig parses YAML configuration bytes into a Config.
func ParseConfig(contents []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse binance config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// ResolveConfig builds a Config from explicit values with environment
// fallback. Explicit (flag) values win over environment variables.
func ResolveConfig(apiKey, secretKey string, testnet bool) (*Config, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}

	if secretKey == "" {
		secretKey = os.Getenv(EnvSecretKey)
	}

	config := &Config{
		APIKey:    apiKey,
		SecretKey: secretKey,
		Testnet:   testnet,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
