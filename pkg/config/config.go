package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config describes one run of the solver. The grid shape is a required
// input: there is no sensible default decomposition, and a guessed one
// would silently change which process owns which region.
type Config struct {
	Nodes           int     `yaml:"nodes"`
	EdgeProbability float64 `yaml:"edge_probability"`
	Seed            int64   `yaml:"seed"`
	Grid            Grid    `yaml:"grid"`
	Procs           int     `yaml:"procs,omitempty"`
	InputPath       string  `yaml:"input,omitempty"`
	AdjacencyPath   string  `yaml:"adjacency_output,omitempty"`
	OutputPath      string  `yaml:"output,omitempty"`
	Verbose         bool    `yaml:"verbose,omitempty"`
}

// Grid is the process-grid shape: npx processes along the row axis, npy
// along the column axis.
type Grid struct {
	NPX int `yaml:"npx"`
	NPY int `yaml:"npy"`
}

// Load reads and validates a YAML configuration file.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	return &config, nil
}

// Validate checks the configuration before anything is launched. It
// fills Procs from the grid shape when unset.
func (c *Config) Validate() error {
	if c.Grid.NPX <= 0 || c.Grid.NPY <= 0 {
		return fmt.Errorf("grid shape is required and must be positive, got %dx%d", c.Grid.NPX, c.Grid.NPY)
	}
	if c.Procs == 0 {
		c.Procs = c.Grid.NPX * c.Grid.NPY
	}
	if c.Procs != c.Grid.NPX*c.Grid.NPY {
		return fmt.Errorf("%dx%d grid needs %d processes, %d configured",
			c.Grid.NPX, c.Grid.NPY, c.Grid.NPX*c.Grid.NPY, c.Procs)
	}
	if c.InputPath == "" && c.Nodes <= 0 {
		return fmt.Errorf("nodes must be positive when generating a graph, got %d", c.Nodes)
	}
	if c.EdgeProbability < 0 || c.EdgeProbability > 1 {
		return fmt.Errorf("edge_probability must be in [0,1], got %g", c.EdgeProbability)
	}
	return nil
}

// FromEnv builds a configuration from environment variables. The grid
// shape is still required; the zero values fail Validate.
func FromEnv() *Config {
	return &Config{
		Nodes:           getEnvInt("APSP_NODES", 0),
		EdgeProbability: getEnvFloat("APSP_EDGE_PROBABILITY", 0.05),
		Seed:            int64(getEnvInt("APSP_SEED", 0)),
		Grid: Grid{
			NPX: getEnvInt("APSP_NPX", 0),
			NPY: getEnvInt("APSP_NPY", 0),
		},
		Procs:         getEnvInt("APSP_PROCS", 0),
		InputPath:     getEnv("APSP_INPUT", ""),
		AdjacencyPath: getEnv("APSP_ADJACENCY_OUTPUT", ""),
		OutputPath:    getEnv("APSP_OUTPUT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
