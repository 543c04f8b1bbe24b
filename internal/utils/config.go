package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ELFHDR_OUTPUT_FORMAT
const EnvPrefix = "ELFHDR"

// Valid enumerated configuration values
var (
	ValidLogLevels     = []string{"debug", "info", "warn", "error"}
	ValidLogFormats    = []string{"text", "json"}
	ValidOutputFormats = []string{"text", "table", "json", "yaml"}
	ValidColorModes    = []string{"auto", "always", "never"}
)

// Config represents the application configuration
type Config struct {
	Log    LoggerConfig `yaml:"log" mapstructure:"log"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// OutputConfig controls how headers are reported
type OutputConfig struct {
	Format       string `yaml:"format" mapstructure:"format"`
	Color        string `yaml:"color" mapstructure:"color"`
	Full         bool   `yaml:"full" mapstructure:"full"`
	PadAddresses bool   `yaml:"pad_addresses" mapstructure:"pad_addresses"`
}

// ConfigManager handles configuration loading and management
type ConfigManager struct {
	config *Config
	viper  *viper.Viper
	logger *Logger
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() *ConfigManager {
	c := &ConfigManager{
		config: &Config{},
		viper:  viper.New(),
		logger: NewDefaultLogger(),
	}
	c.setDefaults()
	c.viper.SetConfigType("yaml")
	c.viper.SetEnvPrefix(EnvPrefix)
	c.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.viper.AutomaticEnv()
	return c
}

// LoadConfig loads configuration from file, environment variables and bound flags
func (c *ConfigManager) LoadConfig(configFile string) error {
	if configFile != "" {
		c.viper.SetConfigFile(configFile)
		if err := c.viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to read config file: %w", err)
			}
			c.logger.WithComponent("config").Warnf("Config file not found: %s", configFile)
		} else {
			c.logger.WithComponent("config").Infof("Loaded config from: %s", c.viper.ConfigFileUsed())
		}
	} else {
		c.viper.SetConfigName("elfhdr")
		c.viper.AddConfigPath(".")
		c.viper.AddConfigPath("$HOME/.config/elfhdr")
		c.viper.AddConfigPath("/etc/elfhdr")

		if err := c.viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("failed to read config file: %w", err)
			}
			c.logger.WithComponent("config").Debug("No config file found, using defaults and environment variables")
		} else {
			c.logger.WithComponent("config").Infof("Loaded config from: %s", c.viper.ConfigFileUsed())
		}
	}

	if err := c.viper.Unmarshal(c.config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := c.validateConfig(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.logger.WithComponent("config").Debug("Configuration loaded successfully")
	return nil
}

// setDefaults sets default configuration values
func (c *ConfigManager) setDefaults() {
	c.viper.SetDefault("log.level", "warn")
	c.viper.SetDefault("log.format", "text")

	c.viper.SetDefault("output.format", "text")
	c.viper.SetDefault("output.color", "auto")
	c.viper.SetDefault("output.full", false)
	c.viper.SetDefault("output.pad_addresses", false)
}

// BindFlag makes a command-line flag override the configuration key when the flag is set
func (c *ConfigManager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind to %s", key)
	}
	return c.viper.BindPFlag(key, flag)
}

// validateConfig validates the loaded configuration
func (c *ConfigManager) validateConfig() error {
	level, err := ParseLogLevel(string(c.config.Log.Level))
	if err != nil {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.config.Log.Level, ValidLogLevels)
	}
	c.config.Log.Level = level

	format, err := ParseLogFormat(string(c.config.Log.Format))
	if err != nil {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.config.Log.Format, ValidLogFormats)
	}
	c.config.Log.Format = format

	c.config.Output.Format = strings.ToLower(c.config.Output.Format)
	if !contains(ValidOutputFormats, c.config.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.config.Output.Format, ValidOutputFormats)
	}

	c.config.Output.Color = strings.ToLower(c.config.Output.Color)
	if !contains(ValidColorModes, c.config.Output.Color) {
		return fmt.Errorf("invalid color mode: %s (valid: %v)", c.config.Output.Color, ValidColorModes)
	}

	return nil
}

// GetConfig returns the loaded configuration
func (c *ConfigManager) GetConfig() *Config {
	return c.config
}

// SetLogger sets the logger for the config manager
func (c *ConfigManager) SetLogger(logger *Logger) {
	c.logger = logger
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
