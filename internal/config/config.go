package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"flowshow/internal/domain"
)

const (
	DefaultConfigFile   = "flowshow.yml"
	DefaultDocumentPath = "~/.local/share/flowshow/document.db"
	envPrefix           = "FLOWSHOW_"
)

// Config is the top-level flowshow configuration, corresponding to flowshow.yml
type Config struct {
	Document DocumentConfig `yaml:"document" koanf:"document"`
	Panel    PanelConfig    `yaml:"panel" koanf:"panel"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
	Bridge   BridgeConfig   `yaml:"bridge" koanf:"bridge"`
}

// DocumentConfig locates the host document
type DocumentConfig struct {
	Path string `yaml:"path" koanf:"path"` // SQLite file, or ":memory:"
}

// PanelConfig holds the fixed panel geometry
type PanelConfig struct {
	Width           int `yaml:"width" koanf:"width"`
	CollapsedHeight int `yaml:"collapsed_height" koanf:"collapsed_height"`
	ExpandedHeight  int `yaml:"expanded_height" koanf:"expanded_height"`
}

// LogConfig mirrors logging.Options
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
	File   string `yaml:"file" koanf:"file"`
}

// BridgeConfig configures the websocket panel bridge
type BridgeConfig struct {
	Addr            string `yaml:"addr" koanf:"addr"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{Path: DocumentPath()},
		Panel: PanelConfig{
			Width:           domain.DefaultPanelWidth,
			CollapsedHeight: domain.DefaultCollapsedHeight,
			ExpandedHeight:  domain.DefaultExpandedHeight,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Bridge: BridgeConfig{
			Addr: "127.0.0.1:7420",
		},
	}
}

// DocumentPath returns the document path from FLOWSHOW_DOCUMENT__PATH,
// falling back to DefaultDocumentPath.
func DocumentPath() string {
	if v := os.Getenv("FLOWSHOW_DOCUMENT__PATH"); v != "" {
		return v
	}
	return DefaultDocumentPath
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FLOWSHOW_*). A .env file next to the
// config file is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// FLOWSHOW_LOG__LEVEL -> log.level, FLOWSHOW_PANEL__EXPANDED_HEIGHT -> panel.expanded_height
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Document.Path = ExpandHome(cfg.Document.Path)
	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Document.Path == "" {
		return fmt.Errorf("document.path is required")
	}
	if c.Panel.Width <= 0 {
		return fmt.Errorf("panel.width must be positive")
	}
	if c.Panel.CollapsedHeight <= 0 || c.Panel.ExpandedHeight <= 0 {
		return fmt.Errorf("panel heights must be positive")
	}
	if c.Panel.ExpandedHeight < c.Panel.CollapsedHeight {
		return fmt.Errorf("panel.expanded_height (%d) must not be below panel.collapsed_height (%d)",
			c.Panel.ExpandedHeight, c.Panel.CollapsedHeight)
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be one of trace, debug, info, warn, error", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "console" && f != "json" {
		return fmt.Errorf("invalid log.format %q: must be console or json", c.Log.Format)
	}
	if _, _, err := net.SplitHostPort(c.Bridge.Addr); err != nil {
		return fmt.Errorf("invalid bridge.addr %q: %w", c.Bridge.Addr, err)
	}
	return nil
}

// CollapsedSize returns the collapsed panel dimensions
func (c *Config) CollapsedSize() domain.PanelSize {
	return domain.PanelSize{Width: c.Panel.Width, Height: c.Panel.CollapsedHeight}
}

// ExpandedSize returns the expanded panel dimensions
func (c *Config) ExpandedSize() domain.PanelSize {
	return domain.PanelSize{Width: c.Panel.Width, Height: c.Panel.ExpandedHeight}
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
