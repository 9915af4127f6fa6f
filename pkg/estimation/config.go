// Package estimation implements stochastic-block-model parameter estimation
// for partitions of single- and multi-layer graphs, and the iterative
// fixed-point loops that estimate the resolution parameter(s) best matching
// an observed partition's statistics.
package estimation

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages estimator configuration using Viper.
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults.
func NewConfig() *Config {
	v := viper.New()

	// Fixed-point loop parameters
	v.SetDefault("estimation.gamma_start", 1.0)
	v.SetDefault("estimation.omega_start", 1.0)
	v.SetDefault("estimation.gamma_tol", 1e-2)
	v.SetDefault("estimation.omega_tol", 5e-2)
	v.SetDefault("estimation.omega_max", 1000.0)
	v.SetDefault("estimation.max_iter", 25)

	// Logging parameters
	v.SetDefault("logging.level", "info")

	return &Config{v: v}
}

// LoadFromFile loads configuration from file.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Getters for loop parameters
func (c *Config) GammaStart() float64 { return c.v.GetFloat64("estimation.gamma_start") }
func (c *Config) OmegaStart() float64 { return c.v.GetFloat64("estimation.omega_start") }
func (c *Config) GammaTol() float64   { return c.v.GetFloat64("estimation.gamma_tol") }
func (c *Config) OmegaTol() float64   { return c.v.GetFloat64("estimation.omega_tol") }
func (c *Config) OmegaMax() float64   { return c.v.GetFloat64("estimation.omega_max") }
func (c *Config) MaxIter() int        { return c.v.GetInt("estimation.max_iter") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// Set allows dynamic configuration changes.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// CreateLogger creates a zerolog logger based on config.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "estimation").Logger()
}
