package app

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (LAREK_ prefix), flags, or YAML config files.
type Config struct {
	APIBaseURL     string        `default:"https://larek-api.nomoreparties.co/api/weblarek" usage:"Base URL of the remote commerce API" flag:"api-base-url"`
	CDNBaseURL     string        `default:"https://larek-api.nomoreparties.co/content/weblarek" usage:"Base URL prefixed to product image paths" flag:"cdn-base-url"`
	RequestTimeout time.Duration `default:"0s" usage:"Per-request timeout, 0 disables" flag:"request-timeout"`
}

// LoadConfig loads configuration from environment variables, flags, and YAML
// config files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "LAREK",
		Files:     []string{"config.yaml", "/etc/larek/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("API base URL is required: set LAREK_API_BASE_URL")
	}

	return &cfg, nil
}
