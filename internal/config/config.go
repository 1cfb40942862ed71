package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Aliases     map[string]string `yaml:"aliases,omitempty"`
	HistorySize int               `yaml:"history_size"`
	MediaDir    string            `yaml:"media_dir"`
	Signal      string            `yaml:"signal"`
	OwnerEmail  string            `yaml:"owner_email"`
	LogLevel    string            `yaml:"log_level"`
}

const DefaultOwnerEmail = "hello@folio.example"

func Default() *Config {
	return &Config{
		HistorySize: 1000,
		Signal:      "auto",
		OwnerEmail:  DefaultOwnerEmail,
		LogLevel:    "info",
		Aliases:     make(map[string]string),
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".folio-shell"), nil
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func ConfigPath() (string, error)      { return inConfigDir("config.yaml") }
func PreferencesPath() (string, error) { return inConfigDir("preferences.yaml") }
func HistoryPath() (string, error)     { return inConfigDir("history") }
func LogPath() (string, error)         { return inConfigDir("folio.log") }

// Load reads ~/.folio-shell/config.yaml. A missing file yields defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		applyEnv(cfg)
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path on top of the defaults, then applies
// environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// 1. Load from file
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	if cfg.Aliases == nil {
		cfg.Aliases = make(map[string]string)
	}

	// 2. Override from Env
	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if dir := os.Getenv("FOLIO_MEDIA_DIR"); dir != "" {
		cfg.MediaDir = dir
	}
	if sig := os.Getenv("FOLIO_SIGNAL"); sig != "" {
		cfg.Signal = sig
	}
}

// Save writes the config to ~/.folio-shell/config.yaml
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

func SaveTo(path string, cfg *Config) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
