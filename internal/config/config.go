package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL     = "http://127.0.0.1:7334"
	DefaultDBFileName = ".eniki.db"
	DefaultLogLevel   = "info"

	configFileName  = ".eniki.toml"
	configDirEnvKey = "ENIKI_CONFIG_DIR"

	apiURLEnvKey       = "ENIKI_API_URL"
	dbPathEnvKey       = "ENIKI_DB"
	uploadDirEnvKey    = "ENIKI_UPLOAD_DIR"
	generatorURLEnvKey = "ENIKI_GENERATOR_URL"
)

// Config defines runtime configuration for eniki.
type Config struct {
	APIURL       string `toml:"api_url"`
	DBPath       string `toml:"db_path"`
	UploadDir    string `toml:"upload_dir"`
	GeneratorURL string `toml:"generator_url"`
	LogLevel     string `toml:"log_level"`
}

// Default returns default configuration values. DBPath and UploadDir
// are resolved relative to the working directory during Load.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		LogLevel: DefaultLogLevel,
	}
}

var allowedKeys = []string{
	"api_url",
	"db_path",
	"upload_dir",
	"generator_url",
	"log_level",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "upload_dir":
		return c.UploadDir, nil
	case "generator_url":
		return c.GeneratorURL, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// Path returns the path to the config file: the ENIKI_CONFIG_DIR
// override when set, otherwise the user's home directory.
func Path() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(configDirEnvKey)); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	data[key] = strings.TrimSpace(value)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads the config file and applies env overrides and defaults.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if loadErr := loadFileIfExists(path, &cfg); loadErr != nil {
			return nil, loadErr
		}
	}

	if apiURL := os.Getenv(apiURLEnvKey); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv(dbPathEnvKey); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if uploadDir := os.Getenv(uploadDirEnvKey); uploadDir != "" {
		cfg.UploadDir = uploadDir
	}
	if generatorURL := os.Getenv(generatorURLEnvKey); generatorURL != "" {
		cfg.GeneratorURL = generatorURL
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}
	if cfg.UploadDir == "" && cfg.DBPath != "" {
		cfg.UploadDir = filepath.Join(filepath.Dir(cfg.DBPath), ".eniki", "uploads", "avatars")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return &cfg, nil
}

func loadFileIfExists(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}
