// Package config loads learntrail settings: built-in defaults, then an
// optional YAML file, then LEARNTRAIL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/alexanderramin/learntrail/internal/remote"
)

const envPrefix = "LEARNTRAIL"

type Config struct {
	DB     string       `mapstructure:"db"`
	User   string       `mapstructure:"user"`
	API    APIConfig    `mapstructure:"api"`
	Route  RouteConfig  `mapstructure:"route"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// APIConfig points the CLI at a remote learning API. An empty URL keeps
// everything local.
type APIConfig struct {
	URL        string `mapstructure:"url"`
	Org        string `mapstructure:"org"`
	Token      string `mapstructure:"token"`
	TimeoutMs  int    `mapstructure:"timeout_ms"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type RouteConfig struct {
	Base string `mapstructure:"base"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Mode     string `mapstructure:"mode"`
	UseCases bool   `mapstructure:"use_cases"`
}

// Dir returns ~/.learntrail, or .learntrail when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".learntrail"
	}
	return filepath.Join(home, ".learntrail")
}

func DefaultConfig() Config {
	return Config{
		DB: filepath.Join(Dir(), "learntrail.db"),
		API: APIConfig{
			Org:        "default",
			TimeoutMs:  10000,
			MaxRetries: 2,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Log: LogConfig{Mode: "dev"},
	}
}

// Load reads configuration. path names a config file that must exist; an
// empty path looks for ~/.learntrail/config.yaml and tolerates its absence.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.DB = expandHome(cfg.DB)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("db", d.DB)
	v.SetDefault("user", d.User)
	v.SetDefault("api.url", d.API.URL)
	v.SetDefault("api.org", d.API.Org)
	v.SetDefault("api.token", d.API.Token)
	v.SetDefault("api.timeout_ms", d.API.TimeoutMs)
	v.SetDefault("api.max_retries", d.API.MaxRetries)
	v.SetDefault("route.base", d.Route.Base)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("log.mode", d.Log.Mode)
	v.SetDefault("log.use_cases", d.Log.UseCases)
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DB) == "" {
		errs = append(errs, errors.New("db path is empty"))
	}
	if c.API.TimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout_ms must be positive, got %d", c.API.TimeoutMs))
	}
	if c.API.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("api.max_retries must not be negative, got %d", c.API.MaxRetries))
	}
	switch strings.ToLower(c.Log.Mode) {
	case "dev", "development", "prod", "production":
	default:
		errs = append(errs, fmt.Errorf("log.mode %q must be dev or prod", c.Log.Mode))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Remote reports whether snapshots come from the learning API.
func (c Config) Remote() bool {
	return strings.TrimSpace(c.API.URL) != ""
}

// RemoteConfig builds client settings for the given learner.
func (c Config) RemoteConfig(userID int64) remote.Config {
	rc := remote.DefaultConfig()
	rc.BaseURL = c.API.URL
	rc.Org = c.API.Org
	rc.Token = c.API.Token
	rc.Timeout = time.Duration(c.API.TimeoutMs) * time.Millisecond
	rc.MaxRetries = c.API.MaxRetries
	rc.UserID = userID
	return rc
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
