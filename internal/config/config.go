package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/viewbind/internal/table"
	"github.com/san-kum/viewbind/internal/tui"
)

const (
	DefaultDataDir  = "./data"
	DefaultRoster   = "club"
	DefaultCommitOn = "row"
	DefaultTheme    = "ocean"
)

var ErrCommitOn = errors.New("config: invalid commit_on")

type Config struct {
	DataDir  string         `yaml:"data_dir" toml:"data_dir"`
	Roster   string         `yaml:"roster" toml:"roster"`
	CommitOn string         `yaml:"commit_on" toml:"commit_on"`
	Theme    string         `yaml:"theme" toml:"theme"`
	Columns  []table.Column `yaml:"columns" toml:"columns"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir,
		Roster:   DefaultRoster,
		CommitOn: DefaultCommitOn,
		Theme:    DefaultTheme,
		Columns:  slices.Clone(Presets["full"].Columns),
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML config, or TOML when path ends in .toml. Missing keys
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Columns = nil
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Columns == nil {
		cfg.Columns = DefaultConfig().Columns
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := table.ParseCommitOn(c.CommitOn); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitOn, err)
	}
	for i, col := range c.Columns {
		if col.Attribute == "" {
			return fmt.Errorf("config: column %d has no attribute", i+1)
		}
	}
	return nil
}

// Commit returns the parsed commit granularity.
func (c *Config) Commit() table.CommitOn {
	on, err := table.ParseCommitOn(c.CommitOn)
	if err != nil {
		return table.CommitRow
	}
	return on
}

func (c *Config) GetTheme() tui.Theme {
	return tui.GetTheme(c.Theme)
}
