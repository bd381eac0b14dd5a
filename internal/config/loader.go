package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "lapse"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "LAPSE"
)

// Loader handles loading configuration from files, environment variables and
// bound flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader on v. A nil v uses the global
// viper instance.
func NewLoader(v *viper.Viper) *Loader {
	if v == nil {
		v = viper.GetViper()
	}
	return &Loader{v: v}
}

// Load is equivalent to LoadWithFile("").
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithFile("")
}

// LoadWithFile loads the configuration from configFile, or from the default
// search paths when configFile is empty. A missing file in the search paths
// is not an error.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile != "" {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configFile)
		}
		l.v.SetConfigFile(configFile)
	} else {
		l.v.SetConfigName(ConfigFileName)
		l.v.SetConfigType("yaml")
		l.addConfigPaths()
	}

	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "lapse"))
	}
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	l.v.AutomaticEnv()
}

func (l *Loader) setDefaults() {
	d := DefaultConfig()
	l.v.SetDefault("prefix", d.Prefix)
	l.v.SetDefault("quiet", d.Quiet)
	l.v.SetDefault("end_in_new_line", d.EndInNewLine)
	l.v.SetDefault("log_level", d.LogLevel)
	l.v.SetDefault("repeat", d.Repeat)
	l.v.SetDefault("metrics_namespace", d.MetricsNamespace)
}
