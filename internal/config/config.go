// Package config loads and saves tool configuration.
// Precedence: flags > env (EDA_*) > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global holds the settings every command shares. Threshold fields feed
// the quality analyzer; the rest shape report output.
type Global struct {
	HighCardinalityThreshold int     `mapstructure:"high_cardinality_threshold" yaml:"high_cardinality_threshold"`
	ZeroThreshold            float64 `mapstructure:"zero_threshold" yaml:"zero_threshold"`

	OutDir          string  `mapstructure:"out_dir" yaml:"out_dir"`
	MaxHistColumns  int     `mapstructure:"max_hist_columns" yaml:"max_hist_columns"`
	TopKCategories  int     `mapstructure:"top_k_categories" yaml:"top_k_categories"`
	MinMissingShare float64 `mapstructure:"min_missing_share" yaml:"min_missing_share"`
	MaxRows         int     `mapstructure:"max_rows" yaml:"max_rows"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Load reads configuration from file, env, and defaults. A missing config
// file is not an error; defaults apply.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDA")
	v.AutomaticEnv()

	v.SetDefault("high_cardinality_threshold", 100)
	v.SetDefault("zero_threshold", 0.5)
	v.SetDefault("out_dir", "reports")
	v.SetDefault("max_hist_columns", 6)
	v.SetDefault("top_k_categories", 10)
	v.SetDefault("min_missing_share", 0.1)
	v.SetDefault("max_rows", 0)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
			v.SetConfigName(".eda")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Global
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to path, or to ~/.eda.yaml when path is
// empty.
func Save(c *Global, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".eda.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
