package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "GOCUT_CONFIG"

const (
	DefaultJobs           = 4
	DefaultMaxRecordBytes = 1024 * 1024
)

type Config struct {
	Delimiter       string `yaml:"delimiter"`
	OutputDelimiter string `yaml:"output_delimiter"`
	Permute         bool   `yaml:"permute"`
	OnlyDelimited   bool   `yaml:"only_delimited"`
	// OutOfRange is either "error" or "skip".
	OutOfRange     string `yaml:"out_of_range"`
	MultiChar      bool   `yaml:"multi_char"`
	ZeroTerminated bool   `yaml:"zero_terminated"`
	Jobs           int    `yaml:"jobs"`
	MaxRecordBytes int    `yaml:"max_record_bytes"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.OutOfRange == "" {
		c.OutOfRange = "error"
	}
	if c.Jobs <= 0 {
		c.Jobs = DefaultJobs
	}
	if c.MaxRecordBytes <= 0 {
		c.MaxRecordBytes = DefaultMaxRecordBytes
	}
}

func (c Config) Validate() error {
	switch c.OutOfRange {
	case "error", "skip":
	default:
		return fmt.Errorf("out_of_range must be \"error\" or \"skip\", got %q", c.OutOfRange)
	}
	return nil
}

// Load reads the file at path. An empty path falls back to $GOCUT_CONFIG, and
// if that is unset too the defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

func Parse(b []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, errors.New("Failed to parse config: " + err.Error())
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
