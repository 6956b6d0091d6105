package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PNGSTASH"

// binding ties a config key to its environment variable and command-line flag
type binding struct {
	key   string
	env   string
	flag  string
	apply func(c *Config, v *viper.Viper, key string)
}

var bindings = []binding{
	{"logging.level", "LOG_LEVEL", "log-level", func(c *Config, v *viper.Viper, k string) { c.Logging.Level = v.GetString(k) }},
	{"server.port", "PORT", "port", func(c *Config, v *viper.Viper, k string) { c.Server.Port = v.GetInt(k) }},
	{"server.bind", "BIND", "bind", func(c *Config, v *viper.Viper, k string) { c.Server.Bind = v.GetString(k) }},
	{"server.max_body_bytes", "MAX_BODY_BYTES", "max-body-bytes", func(c *Config, v *viper.Viper, k string) { c.Server.MaxBodyBytes = v.GetInt64(k) }},
	{"security.api_key", "API_KEY", "api-key", func(c *Config, v *viper.Viper, k string) { c.Security.APIKey = v.GetString(k) }},
	{"output.default_file", "OUTPUT", "", func(c *Config, v *viper.Viper, k string) { c.Output.DefaultFile = v.GetString(k) }},
	{"output.format", "FORMAT", "format", func(c *Config, v *viper.Viper, k string) { c.Output.Format = v.GetString(k) }},
	{"output.fsync", "FSYNC", "", func(c *Config, v *viper.Viper, k string) { c.Output.Fsync = v.GetBool(k) }},
	{"codec.strict_types", "STRICT_TYPES", "strict", func(c *Config, v *viper.Viper, k string) { c.Codec.StrictTypes = v.GetBool(k) }},
}

// Resolve builds the effective configuration.
// Precedence: changed flags, then PNGSTASH_* environment, then the config file, then defaults.
// An empty configPath falls back to the default path when a file exists there.
func Resolve(configPath string, flags *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()

	switch {
	case configPath != "":
		loaded, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case ConfigExists(GetDefaultConfigPath()):
		loaded, err := LoadConfig(GetDefaultConfigPath())
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	v := viper.New()
	for _, b := range bindings {
		if err := v.BindEnv(b.key, EnvPrefix+"_"+b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", b.key, err)
		}
		if b.flag == "" || flags == nil {
			continue
		}
		if f := flags.Lookup(b.flag); f != nil {
			if err := v.BindPFlag(b.key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", b.flag, err)
			}
		}
	}

	for _, b := range bindings {
		if v.IsSet(b.key) {
			b.apply(cfg, v, b.key)
		}
	}

	return cfg, nil
}
