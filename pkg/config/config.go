// Package config loads scanner and driver settings from a config file and
// the environment, layered under whatever the CLI flags override.
package config

import (
	"github.com/spf13/viper"
)

// Config holds the application configuration for a single scan run.
type Config struct {
	RegexFile       string `mapstructure:"regex_file"`
	CaseInsensitive bool   `mapstructure:"case_insensitive"`
	Entropy         bool   `mapstructure:"entropy"`
	PrettyPrint     bool   `mapstructure:"pretty_print"`
	OutputFile      string `mapstructure:"output_file"`
	SinceCommit     string `mapstructure:"since_commit"`
	SSHKeyPath      string `mapstructure:"ssh_key_path"`
	SSHKeyPhrase    string `mapstructure:"ssh_key_phrase"`
	Verbosity       int    `mapstructure:"verbosity"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RegexFile:       "",
		CaseInsensitive: false,
		Entropy:         false,
		PrettyPrint:     false,
		OutputFile:      "",
		SinceCommit:     "",
		SSHKeyPath:      "",
		SSHKeyPhrase:    "",
		Verbosity:       0,
	}
}

// LoadConfig loads configuration from file and environment. configPath, if
// set, names an explicit config file; otherwise viper searches for
// .secrethog.yaml in the current directory and the user's home directory.
// A missing config file is not an error: defaults apply.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName(".secrethog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetDefault("regex_file", "")
	viper.SetDefault("case_insensitive", false)
	viper.SetDefault("entropy", false)
	viper.SetDefault("pretty_print", false)
	viper.SetDefault("output_file", "")
	viper.SetDefault("since_commit", "")
	viper.SetDefault("ssh_key_path", "")
	viper.SetDefault("ssh_key_phrase", "")
	viper.SetDefault("verbosity", 0)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}
