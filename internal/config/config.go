package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// Config is the application-level wiring: where data and state live, how the
// pipeline and engine are seeded, and the server/logging setup. The mutable
// reward settings are a separate document (see settings.go); this object is
// loaded once at startup and passed explicitly into constructors.
type Config struct {
	DataDir        string `mapstructure:"data_dir"`
	StateDir       string `mapstructure:"state_dir"`
	SampleCapacity int    `mapstructure:"sample_capacity"`
	EngineSeed     int64  `mapstructure:"engine_seed"`

	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file plus WAREHOUSE_* environment
// overrides. An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WAREHOUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, eris.Wrapf(err, "config: read %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "./data")
	v.SetDefault("state_dir", defaultStateDir())
	v.SetDefault("sample_capacity", 10_000)
	v.SetDefault("engine_seed", 42)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func (c *Config) Validate() error {
	if c.SampleCapacity <= 0 {
		return eris.New("config: sample_capacity must be > 0")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return eris.Errorf("config: invalid server port %d", c.Server.Port)
	}
	return nil
}

// CacheDir is where snapshot cache entries live.
func (c *Config) CacheDir() string { return c.StateDir }

// SettingsPath is the persisted reward settings document.
func (c *Config) SettingsPath() string { return filepath.Join(c.StateDir, "settings.yaml") }

// HistoryPath is the simulation history database.
func (c *Config) HistoryPath() string { return filepath.Join(c.StateDir, "history.db") }

// defaultStateDir mirrors the conventional per-user state location, falling
// back to the working directory when no home is resolvable.
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".warehouse"
	}
	return filepath.Join(home, ".warehouse")
}
