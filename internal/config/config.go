// Package config loads notas settings from defaults, an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvAPIURL   = "NOTAS_API_URL"
	EnvLang     = "NOTAS_LANG"
	EnvLogFile  = "NOTAS_LOG_FILE"
	EnvLogLevel = "NOTAS_LOG_LEVEL"
	EnvTimeout  = "NOTAS_TIMEOUT"
)

const (
	DefaultAPIURL   = "http://localhost:8000"
	DefaultLang     = "pt"
	DefaultLogLevel = "info"
	DefaultTimeout  = 30 * time.Second
)

// Config holds the client settings.
type Config struct {
	APIURL   string
	Lang     string
	LogFile  string
	LogLevel string
	Timeout  time.Duration
}

// Dir returns ~/.notas.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".notas"), nil
}

// DefaultPath returns ~/.notas/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the built-in settings.
func Default() Config {
	logFile := ""
	if dir, err := Dir(); err == nil {
		logFile = filepath.Join(dir, "notas.log")
	}
	return Config{
		APIURL:   DefaultAPIURL,
		Lang:     DefaultLang,
		LogFile:  logFile,
		LogLevel: DefaultLogLevel,
		Timeout:  DefaultTimeout,
	}
}

// Load builds a Config. path names a YAML file; when empty the default
// location is tried and silently skipped if absent. A .env file in the
// working directory is loaded without overriding variables already set.
// Load does not validate: callers layer their own overrides on top and
// call Validate on the result.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	var file struct {
		APIURL   string `yaml:"api_url"`
		Lang     string `yaml:"lang"`
		LogFile  string `yaml:"log_file"`
		LogLevel string `yaml:"log_level"`
		Timeout  string `yaml:"timeout"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config.Load: parse %s: %w", path, err)
	}
	c.set(file.APIURL, file.Lang, file.LogFile, file.LogLevel)
	if file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return fmt.Errorf("config.Load: timeout %q: %w", file.Timeout, err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.set(os.Getenv(EnvAPIURL), os.Getenv(EnvLang), os.Getenv(EnvLogFile), os.Getenv(EnvLogLevel))
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config.Load: %s=%q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) set(apiURL, lang, logFile, logLevel string) {
	if apiURL != "" {
		c.APIURL = strings.TrimRight(apiURL, "/")
	}
	if lang != "" {
		c.Lang = strings.ToLower(lang)
	}
	if logFile != "" {
		c.LogFile = logFile
	}
	if logLevel != "" {
		c.LogLevel = strings.ToLower(logLevel)
	}
}

// Normalize applies the same clean-up Load does to values set directly,
// such as command-line flags.
func (c *Config) Normalize() {
	c.set(c.APIURL, c.Lang, c.LogFile, c.LogLevel)
}

// Validate checks the settings for values the client cannot use.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("config: invalid api_url %q", c.APIURL)
	}
	switch c.Lang {
	case "pt", "en":
	default:
		return fmt.Errorf("config: unsupported lang %q (want pt or en)", c.Lang)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: negative timeout %s", c.Timeout)
	}
	return nil
}

// Marshal renders the config as YAML in the file format Load reads.
func (c Config) Marshal() ([]byte, error) {
	out := struct {
		APIURL   string `yaml:"api_url"`
		Lang     string `yaml:"lang"`
		LogFile  string `yaml:"log_file,omitempty"`
		LogLevel string `yaml:"log_level"`
		Timeout  string `yaml:"timeout"`
	}{c.APIURL, c.Lang, c.LogFile, c.LogLevel, c.Timeout.String()}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("config.Marshal: %w", err)
	}
	return data, nil
}

// Save writes the config as YAML, creating the parent directory.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config.Save: create dir: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}
