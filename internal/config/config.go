package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leengari/chronosql/internal/domain/schema"
)

type Config struct {
	Planner PlannerConfig `yaml:"planner"`
	Logging LoggingConfig `yaml:"logging"`
}

type PlannerConfig struct {
	// TimeColumn overrides the reserved time column name
	TimeColumn string `yaml:"timeColumn"`
	// DefaultJoinable is the join hint for tables whose meta omits it
	DefaultJoinable bool `yaml:"defaultJoinable"`
	// DefaultBroadcast is the broadcast hint for tables whose meta omits it
	DefaultBroadcast bool `yaml:"defaultBroadcast"`
}

type LoggingConfig struct {
	// SeqURL points at a Seq ingestion endpoint; empty disables the handler
	SeqURL string `yaml:"seqUrl"`
}

// Default returns the configuration used when no file is supplied
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			TimeColumn: schema.TimeColumnName,
		},
	}
}

// Load reads and validates a YAML config file
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Planner.TimeColumn == "" {
		return fmt.Errorf("planner.timeColumn must not be empty")
	}
	return nil
}
