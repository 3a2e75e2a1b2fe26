// Package config loads the engine configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/scenekit/internal/core/observability/log"
)

// EnvPath names the variable consulted when Load gets no path.
const EnvPath = "SCENEKIT_CONFIG"

var ErrInvalid = errors.New("invalid configuration")

// Store kinds.
const (
	StoreFS     = "fs"
	StoreBadger = "badger"
)

// Config is the root of the configuration file.
type Config struct {
	Log       log.Config      `yaml:"log"`
	Resources ResourcesConfig `yaml:"resources"`
	Inspector InspectorConfig `yaml:"inspector"`
	Engine    EngineConfig    `yaml:"engine"`
}

type ResourcesConfig struct {
	Root      string `yaml:"root"`
	Store     string `yaml:"store"` // fs or badger
	BadgerDir string `yaml:"badger_dir"`
	Compress  bool   `yaml:"compress"`
	Watch     bool   `yaml:"watch"`
}

type InspectorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type EngineConfig struct {
	TickRate int `yaml:"tick_rate"` // frames per second
	// Scene opened at startup, relative to the resource root.
	Scene string `yaml:"scene"`
}

// TickInterval is the duration of one frame.
func (e EngineConfig) TickInterval() time.Duration {
	if e.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(e.TickRate)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: log.Config{Level: "info", Encoding: "console", OutputPaths: []string{"stderr"}},
		Resources: ResourcesConfig{
			Root:      "assets",
			Store:     StoreFS,
			BadgerDir: "assets.db",
			Compress:  true,
		},
		Inspector: InspectorConfig{Addr: "127.0.0.1:7070"},
		Engine:    EngineConfig{TickRate: 60},
	}
}

// Load reads the YAML file at path over Default. An empty path falls back
// to $SCENEKIT_CONFIG, and to the defaults when that is unset too.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.Resources.Store {
	case StoreFS, StoreBadger:
	default:
		return fmt.Errorf("%w: unknown resource store %q", ErrInvalid, c.Resources.Store)
	}
	if c.Resources.Store == StoreFS && c.Resources.Root == "" {
		return fmt.Errorf("%w: resources.root is empty", ErrInvalid)
	}
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("%w: engine.tick_rate must be positive, got %d", ErrInvalid, c.Engine.TickRate)
	}
	if c.Inspector.Enabled && c.Inspector.Addr == "" {
		return fmt.Errorf("%w: inspector.addr is empty", ErrInvalid)
	}
	return nil
}
