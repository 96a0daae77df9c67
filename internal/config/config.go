/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

// Package config loads sqlmx-tibero CLI settings from a YAML config file,
// .env files and SQLMX_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs file system used to look up .env and properties files
var AppFs = afero.NewOsFs()

const (
	ConfigName = ".sqlmx-tibero"
	EnvPrefix  = "SQLMX"
)

// Config CLI configuration
type Config struct {
	Dialect string
	DSN     string
	// PropertiesFile YAML file with dialect property overrides
	PropertiesFile string
	Properties     dialect.Properties
	LogLevel       string
	LogFormat      string
}

// Load reads configuration. configFile may be empty to search the current
// directory and the home directory.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "sqlmx-tibero"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("dialect", "tibero")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	loadDotEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Dialect:        v.GetString("dialect"),
		DSN:            v.GetString("dsn"),
		PropertiesFile: v.GetString("properties_file"),
		Properties:     dialect.Properties{},
		LogLevel:       v.GetString("log.level"),
		LogFormat:      v.GetString("log.format"),
	}
	if cfg.DSN == "" {
		cfg.DSN = os.Getenv("DATABASE_URL")
	}
	cfg.Properties.Merge(dialect.PropertiesFromMap(v.GetStringMap("properties")))
	if cfg.PropertiesFile != "" {
		f, err := AppFs.Open(cfg.PropertiesFile)
		if err != nil {
			return nil, fmt.Errorf("open properties: %w", err)
		}
		defer f.Close()
		props, err := dialect.LoadProperties(f)
		if err != nil {
			return nil, err
		}
		cfg.Properties.Merge(props)
	}
	return cfg, nil
}

// loadDotEnv .env.local overrides .env, neither is required. Variables
// already set in the environment win over .env but not over .env.local.
func loadDotEnv() {
	applyDotEnv(".env", false)
	applyDotEnv(".env.local", true)
}

func applyDotEnv(name string, override bool) {
	b, err := afero.ReadFile(AppFs, name)
	if err != nil {
		return
	}
	env, err := godotenv.Parse(bytes.NewReader(b))
	if err != nil {
		logrus.WithError(err).Warnf("load %s", name)
		return
	}
	for k, v := range env {
		if _, ok := os.LookupEnv(k); ok && !override {
			continue
		}
		if err = os.Setenv(k, v); err != nil {
			logrus.WithError(err).Warnf("set %s from %s", k, name)
		}
	}
}

// ConfigureLogging applies the log level and format to the standard logrus logger.
func (c *Config) ConfigureLogging(verbose bool) error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	if verbose && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	switch c.LogFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Resolve the configured dialect with property overrides applied.
func (c *Config) Resolve(lookup func(string) (*dialect.Dialect, error)) (*dialect.Dialect, error) {
	d, err := lookup(c.Dialect)
	if err != nil {
		return nil, err
	}
	if len(c.Properties) == 0 {
		return d, nil
	}
	copied := *d
	copied.Properties = d.Properties.Clone().Merge(c.Properties)
	return &copied, nil
}
