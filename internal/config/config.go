package config

// Config holds the runtime settings of the command loop.
type Config struct {
	Prompt   string `mapstructure:"prompt" yaml:"prompt"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Prompt:   "> ",
		LogLevel: "info",
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Prompt != "" {
		c.Prompt = other.Prompt
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}
