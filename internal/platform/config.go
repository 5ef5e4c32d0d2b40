package platform

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// Environment variables recognized by the config loader.
const (
	EnvHost   = "CHRONOS_HOST"
	EnvConfig = "CHRONOS_CONFIG"
)

// Config is the YAML session configuration. Every field is optional;
// unset fields fall back to the option defaults.
type Config struct {
	Host         string        `yaml:"host"`
	DatamodelURL string        `yaml:"datamodel_url"`
	TSDBURL      string        `yaml:"tsdb_url"`
	CatalogURL   string        `yaml:"catalog_url"`
	Timeout      time.Duration `yaml:"timeout"`
	RetryMax     int           `yaml:"retry_max"`
}

// LoadConfig reads a YAML config file. An empty path falls back to
// CHRONOS_CONFIG; when that is unset too, an empty Config is returned.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, core.NotFoundf("config file %s not found", path)
		}
		return Config{}, core.Validationf("reading config %s: %v", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, core.Validationf("parsing config %s: %v", path, err)
	}
	return cfg, nil
}

// Options converts a loaded Config into functional options, to be
// applied before any explicit option.
func (c Config) Options() []Option {
	var opts []Option
	if c.Host != "" {
		opts = append(opts, WithHost(c.Host))
	}
	if c.DatamodelURL != "" {
		opts = append(opts, WithDatamodelURL(c.DatamodelURL))
	}
	if c.TSDBURL != "" {
		opts = append(opts, WithTSDBURL(c.TSDBURL))
	}
	if c.CatalogURL != "" {
		opts = append(opts, WithCatalogURL(c.CatalogURL))
	}
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	if c.RetryMax > 0 {
		opts = append(opts, WithRetryMax(c.RetryMax))
	}
	return opts
}
