// Package config loads the simulator configuration from YAML or JSON files
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/greengrid/simulator/core/metrics"
	"github.com/greengrid/simulator/core/sim"
)

// Config is the root configuration document.
type Config struct {
	Sim     sim.Config     `json:"sim"`
	Metrics metrics.Config `json:"metrics"`
	Output  OutputConfig   `json:"output"`
}

// Load reads the configuration at path. The format is chosen by file
// extension. Environment variables prefixed with GG_ override file values,
// with __ separating nesting levels.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("GG_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "gg_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Sim.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Output.SetDefaults()
	if err := cfg.Sim.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Output.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
