package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the settings marquee needs at startup.
type Config struct {
	APIKey       string        `mapstructure:"api_key"`
	AccessToken  string        `mapstructure:"access_token"`
	BaseURL      string        `mapstructure:"base_url" validate:"required,url"`
	ImageBaseURL string        `mapstructure:"image_base_url" validate:"required,url"`
	Language     string        `mapstructure:"language" validate:"required,bcp47_language_tag"`
	Page         int           `mapstructure:"page" validate:"min=1"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	LogDir       string        `mapstructure:"log_dir" validate:"required"`
	PrefsPath    string        `mapstructure:"prefs_path" validate:"required"`
}

const (
	defaultConfigPath   = "~/.config/marquee/config.toml"
	defaultPrefsPath    = "~/.config/marquee/prefs.toml"
	defaultLogDir       = "~/.local/state/marquee/logs"
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	defaultLanguage     = "en-US"
	defaultTimeout      = 10 * time.Second

	envPrefix = "MARQUEE"
	logFile   = "marquee.log"
)

var validate = newValidator()

// Load reads the config file at path, or the default location when path is
// blank. A missing file is not an error: defaults and environment apply.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Upstream credentials are usually exported under their own names.
	if err := v.BindEnv("api_key", envPrefix+"_API_KEY", "TMDB_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv("access_token", envPrefix+"_ACCESS_TOKEN", "TMDB_ACCESS_TOKEN"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if _, err := os.Stat(resolved); err == nil {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every failing key.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+": "+fieldMessage(fe))
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// HasCredential reports whether any upstream credential is configured.
func (c Config) HasCredential() bool {
	return c.APIKey != "" || c.AccessToken != ""
}

// LogPath returns the path of the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/" + logFile)
	}
	return filepath.Join(c.LogDir, logFile)
}

func (c *Config) normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.AccessToken = strings.TrimSpace(c.AccessToken)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.ImageBaseURL), "/")
	c.Language = strings.TrimSpace(c.Language)

	c.LogDir = strings.TrimSpace(c.LogDir)
	if c.LogDir == "" {
		c.LogDir = defaultLogDir
	}
	c.LogDir = mustExpand(c.LogDir)

	c.PrefsPath = strings.TrimSpace(c.PrefsPath)
	if c.PrefsPath == "" {
		c.PrefsPath = defaultPrefsPath
	}
	c.PrefsPath = mustExpand(c.PrefsPath)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("access_token", "")
	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("image_base_url", defaultImageBaseURL)
	v.SetDefault("language", defaultLanguage)
	v.SetDefault("page", 1)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("log_dir", defaultLogDir)
	v.SetDefault("prefs_path", defaultPrefsPath)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be an absolute URL"
	case "bcp47_language_tag":
		return "must be a language tag such as en-US"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
