// Package config resolves the server's runtime configuration from built-in
// defaults, an optional YAML file and command-line flag overrides, in that
// order of precedence.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the server's runtime configuration.
type Config struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Dict      string `yaml:"dict"`      // ipa, uni, or a path to a compiled dictionary
	UserDict  string `yaml:"user_dict"` // optional user dictionary CSV
	Mode      string `yaml:"mode"`      // normal, search, decompose or extended
	CacheSize int    `yaml:"cache_size"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Host:      "0.0.0.0",
		Port:      8080,
		Dict:      "ipa",
		Mode:      "normal",
		CacheSize: 4096,
	}
}

// LoadFile reads a YAML configuration file on top of the defaults.
func LoadFile(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, errors.Wrapf(err, "parse config %q", path)
	}
	return c, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	if c.Dict == "" {
		return errors.New("dict must not be empty")
	}
	switch c.Mode {
	case "normal", "search", "decompose", "extended":
		return nil
	}
	return errors.Errorf("unsupported mode %q", c.Mode)
}
