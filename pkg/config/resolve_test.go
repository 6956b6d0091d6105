package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.Int("port", 8080, "")
	flags.String("bind", "127.0.0.1", "")
	flags.String("api-key", "", "")
	flags.String("format", "text", "")
	flags.Bool("strict", false, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func writeConfig(t *testing.T, cfg *Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveConfig(cfg, path))
	return path
}

func TestResolve_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Resolve("", testFlags(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestResolve_ExplicitMissingFile(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestResolve_DefaultPathIsUsed(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	fileCfg := DefaultConfig()
	fileCfg.Server.Port = 9400
	require.NoError(t, SaveConfig(fileCfg, GetDefaultConfigPath()))

	cfg, err := Resolve("", nil)
	require.NoError(t, err)
	assert.Equal(t, 9400, cfg.Server.Port)
}

func TestResolve_Precedence(t *testing.T) {
	fileCfg := DefaultConfig()
	fileCfg.Server.Port = 9000
	fileCfg.Server.Bind = "0.0.0.0"
	fileCfg.Logging.Level = "warn"
	fileCfg.Output.Format = "table"
	path := writeConfig(t, fileCfg)

	t.Setenv("PNGSTASH_PORT", "7000")
	t.Setenv("PNGSTASH_LOG_LEVEL", "debug")
	t.Setenv("PNGSTASH_STRICT_TYPES", "true")

	cfg, err := Resolve(path, testFlags(t, "--port=9100"))
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "changed flag beats env")
	assert.Equal(t, "debug", cfg.Logging.Level, "env beats file")
	assert.True(t, cfg.Codec.StrictTypes, "env beats default")
	assert.Equal(t, "0.0.0.0", cfg.Server.Bind, "file beats unchanged flag default")
	assert.Equal(t, "table", cfg.Output.Format)
}

func TestResolve_EnvOnlyKeys(t *testing.T) {
	path := writeConfig(t, DefaultConfig())

	t.Setenv("PNGSTASH_OUTPUT", "elsewhere.png")
	t.Setenv("PNGSTASH_API_KEY", "from-env")
	t.Setenv("PNGSTASH_MAX_BODY_BYTES", "2048")

	cfg, err := Resolve(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere.png", cfg.Output.DefaultFile)
	assert.Equal(t, "from-env", cfg.Security.APIKey)
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
}

func TestResolve_EmptyEnvIgnored(t *testing.T) {
	fileCfg := DefaultConfig()
	fileCfg.Security.APIKey = "file-key"
	path := writeConfig(t, fileCfg)

	t.Setenv("PNGSTASH_API_KEY", "")

	cfg, err := Resolve(path, testFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Security.APIKey)
}
