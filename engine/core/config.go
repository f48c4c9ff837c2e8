package core

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LogConfig struct {
	Level string `toml:"level"`
}

type MeshConfig struct {
	// Capacity of the mesh registry.
	MaxMeshCount uint32 `toml:"max_mesh_count"`
	// Rim segments used when generating discs and cylinders.
	DefaultSegments int `toml:"default_segments"`
}

type AssetsConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

type KernelConfig struct {
	// Marching cubes resolution along the longest axis.
	Cells int `toml:"cells"`
}

type JobsConfig struct {
	// Workers building meshes concurrently.
	Workers int `toml:"workers"`
}

// Config is the module configuration, usually decoded from a TOML file.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Mesh   MeshConfig   `toml:"mesh"`
	Assets AssetsConfig `toml:"assets"`
	Kernel KernelConfig `toml:"kernel"`
	Jobs   JobsConfig   `toml:"jobs"`
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "debug"},
		Mesh: MeshConfig{
			MaxMeshCount:    64,
			DefaultSegments: 16,
		},
		Assets: AssetsConfig{
			Path:  "assets/models",
			Watch: true,
		},
		Kernel: KernelConfig{Cells: 24},
		Jobs:   JobsConfig{Workers: 4},
	}
}

// LoadConfig reads the TOML file at path on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML data on top of DefaultConfig. Keys missing from
// data keep their default value.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("config: log.level %q: %w", c.Log.Level, ErrInvalidArgument)
	}
	if c.Mesh.MaxMeshCount == 0 {
		return fmt.Errorf("config: mesh.max_mesh_count must be > 0: %w", ErrInvalidArgument)
	}
	if c.Mesh.DefaultSegments < 3 {
		return fmt.Errorf("config: mesh.default_segments must be >= 3, got %d: %w", c.Mesh.DefaultSegments, ErrInvalidArgument)
	}
	if c.Kernel.Cells < 1 {
		return fmt.Errorf("config: kernel.cells must be > 0, got %d: %w", c.Kernel.Cells, ErrInvalidArgument)
	}
	if c.Jobs.Workers < 1 {
		return fmt.Errorf("config: jobs.workers must be > 0, got %d: %w", c.Jobs.Workers, ErrInvalidArgument)
	}
	return nil
}
