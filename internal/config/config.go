// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the adminctl configuration from file, environment
// and command-line flags, in ascending order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/recruitd/adminctl/internal/mail"
)

// Config is the full adminctl configuration tree.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	SMTP     mail.Config    `mapstructure:"smtp" yaml:"smtp"`
	Language string         `mapstructure:"language" yaml:"language"`
	Debug    bool           `mapstructure:"debug" yaml:"debug"`
}

// DatabaseConfig selects the backing store. Type is one of sqlite,
// postgres or mysql.
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	DSN  string `mapstructure:"dsn" yaml:"dsn"`
}

// Defaults returns the default settings map applied before any config
// source is read.
func Defaults() map[string]any {
	return map[string]any{
		"database.type": "sqlite",
		"database.dsn":  "file:adminctl.db",
		"smtp.port":     587,
		"smtp.use_tls":  true,
		"language":      "en",
		"debug":         false,
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Adminctl")
		default:
			configDir = "/etc/adminctl"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "adminctl")
	}

	return filepath.Join(configDir, "adminctl.yaml"), nil
}

// LoadConfig resolves the configuration for one command invocation.
// Precedence, lowest to highest: defaults, adminctl.yaml (explicit path,
// user dir, system dir, current dir), ADMINCTL_* environment variables,
// command flags.
func LoadConfig(cmd *cobra.Command, configFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("adminctl")
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("adminctl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}
	// The user-facing flag names differ from the config keys.
	flagKeys := map[string]string{
		"database.type": "db-type",
		"database.dsn":  "db-dsn",
		"language":      "lang",
	}
	for key, name := range flagKeys {
		f := cmd.PersistentFlags().Lookup(name)
		if f == nil {
			f = cmd.Flags().Lookup(name)
		}
		if f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return c, err
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile persists the configuration as YAML. Mode 0600: the SMTP
// section may carry credentials.
func WriteConfigFile(c *Config, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0600)
}
