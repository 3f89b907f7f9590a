package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appName   = "eliterealty"
	envPrefix = "ELITEREALTY"
)

// Config holds application configuration.
type Config struct {
	UI    UIConfig    `mapstructure:"ui"`
	Leads LeadsConfig `mapstructure:"leads"`
	Log   LogConfig   `mapstructure:"log"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Locale         string `mapstructure:"locale"`
	Mouse          bool   `mapstructure:"mouse"`
	Animations     bool   `mapstructure:"animations"`
	Breakpoint     int    `mapstructure:"breakpoint"`
}

// LeadsConfig selects where submitted leads go.
type LeadsConfig struct {
	Sink        string        `mapstructure:"sink"`
	CRMEndpoint string        `mapstructure:"crm_endpoint"`
	CRMTokenEnv string        `mapstructure:"crm_token_env"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Token reads the CRM bearer token from the configured env var.
func (l LeadsConfig) Token() string {
	if l.CRMTokenEnv == "" {
		return ""
	}
	return os.Getenv(l.CRMTokenEnv)
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
	Color bool   `mapstructure:"color"`
}

// Load reads configuration from file and env. Env var overrides use prefix ELITEREALTY_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv(envPrefix + "_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.currency_symbol", "₦")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("ui.mouse", true)
	v.SetDefault("ui.animations", true)
	v.SetDefault("ui.breakpoint", 90)
	v.SetDefault("leads.sink", "log")
	v.SetDefault("leads.crm_endpoint", "")
	v.SetDefault("leads.crm_token_env", envPrefix+"_CRM_TOKEN")
	v.SetDefault("leads.timeout", 8*time.Second)
	v.SetDefault("log.path", filepath.Join(cacheDir(), appName+".log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.color", false)
}

func (c Config) validate() error {
	switch c.Leads.Sink {
	case "log":
	case "crm":
		if strings.TrimSpace(c.Leads.CRMEndpoint) == "" {
			return errors.New("config: leads.sink is crm but leads.crm_endpoint is empty")
		}
	default:
		return fmt.Errorf("config: unknown leads.sink %q", c.Leads.Sink)
	}
	if c.UI.Breakpoint < 40 {
		return fmt.Errorf("config: ui.breakpoint %d is below 40 columns", c.UI.Breakpoint)
	}
	return nil
}

// Save writes cfg as TOML, creating the config directory if needed. The CRM
// token itself is never written; only the name of its env var is.
func Save(cfg Config) (string, error) {
	path := os.Getenv(envPrefix + "_CONFIG")
	if path == "" {
		path = filepath.Join(configDir(), "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("ui.mouse", cfg.UI.Mouse)
	v.Set("ui.animations", cfg.UI.Animations)
	v.Set("ui.breakpoint", cfg.UI.Breakpoint)
	v.Set("leads.sink", cfg.Leads.Sink)
	v.Set("leads.crm_endpoint", cfg.Leads.CRMEndpoint)
	v.Set("leads.crm_token_env", cfg.Leads.CRMTokenEnv)
	v.Set("leads.timeout", cfg.Leads.Timeout.String())
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.color", cfg.Log.Color)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(os.Getenv("HOME"), ".config", appName)
}

func cacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(os.TempDir(), appName)
}
