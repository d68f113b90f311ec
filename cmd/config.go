// File: cmd/config.go
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jdtools/pkg/extract"
	"jdtools/pkg/logging"
	"jdtools/pkg/version"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "JDTOOLS"

// bindFlags binds viper keys to the named flags.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %q: %v", name, err))
		}
	}
}

// initConfig layers the config file and JDTOOLS_* environment under the flags,
// then swaps in a debug logger when requested.
func (a *app) initConfig() error {
	defaults := extract.DefaultConfig()
	a.v.SetDefault("max_file_size", defaults.MaxFileSize)
	a.v.SetDefault("max_total_size", defaults.MaxTotalSize)
	a.v.SetDefault("extension", defaults.Extension)
	a.v.SetDefault("recursive", defaults.Recursive)
	a.v.SetDefault("budget_scope", string(defaults.BudgetScope))
	a.v.SetDefault("format", "text")

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "jdtools"))
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			a.logger.Error("Failed to read config file", zap.String("file", a.cfgFile), zap.Error(err))
			return fmt.Errorf("failed to read config file: %w", err)
		}
		a.logger.Debug("No config file found, using defaults and flags")
	} else {
		a.logger.Debug("Using config file", zap.String("file", a.v.ConfigFileUsed()))
	}

	if a.v.GetBool("debug") {
		logger, err := logging.Setup(true, "jdtools", version.Version)
		if err != nil {
			a.logger.Warn("Failed to build debug logger", zap.Error(err))
		} else {
			a.logger = logger
		}
	}
	return nil
}

// collectorConfig assembles the collector configuration from the layered settings.
func (a *app) collectorConfig() (extract.Config, error) {
	scope, err := extract.ParseBudgetScope(a.v.GetString("budget_scope"))
	if err != nil {
		return extract.Config{}, err
	}

	cfg := extract.Config{
		MaxFileSize:  a.v.GetInt64("max_file_size"),
		MaxTotalSize: a.v.GetInt64("max_total_size"),
		Extension:    a.v.GetString("extension"),
		Recursive:    a.v.GetBool("recursive"),
		BudgetScope:  scope,
		KeyByPath:    a.v.GetBool("key_by_path"),
		Exclude:      a.v.GetStringSlice("exclude"),
	}
	if err := cfg.Validate(); err != nil {
		return extract.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
