package placard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a note wall.
type Config struct {
	Window    WindowConfig  `yaml:"window"`
	Camera    CameraConfig  `yaml:"camera"`
	Placement Box           `yaml:"placement"` // volume new notes spawn in
	Placard   PlacardConfig `yaml:"placard"`
	Label     LabelConfig   `yaml:"label"`
	Input     InputConfig   `yaml:"input"`
	Spawn     SpawnConfig   `yaml:"spawn"`
	Debug     bool          `yaml:"debug"`
	Logging   LoggingConfig `yaml:"logging"`
}

// WindowConfig configures the hosting window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// CameraConfig configures the viewer camera. The camera sits on +Z looking
// toward the origin; at Distance the image scale is one pixel per unit.
type CameraConfig struct {
	Distance float64 `yaml:"distance"`
	Near     float64 `yaml:"near"`
}

// PlacardConfig describes the placard box.
type PlacardConfig struct {
	Size  Vec3  `yaml:"size"`
	Color Color `yaml:"color"`
}

// LabelConfig describes the text label in front of each placard.
type LabelConfig struct {
	Color    Color   `yaml:"color"`
	FontSize float64 `yaml:"font_size"`
	// WrapWidth is the line width the shaper wraps at.
	WrapWidth float64 `yaml:"wrap_width"`
	// Depth is the extrusion depth of glyph cells.
	Depth float64 `yaml:"depth"`
	// Offset is the gap between the placard face and the label plane.
	Offset float64 `yaml:"offset"`
	// MaxHeightRatio is the share of the placard height glyphs may cover
	// before they are clipped.
	MaxHeightRatio float64 `yaml:"max_height_ratio"`
}

// InputConfig configures pointer handling.
type InputConfig struct {
	DragDeadZone float64 `yaml:"drag_dead_zone"` // pixels
}

// SpawnConfig configures the pop-in animation of new placards.
type SpawnConfig struct {
	Duration float64 `yaml:"duration"` // seconds; 0 disables the animation
	Ease     string  `yaml:"ease"`
}

// LoggingConfig configures the zap logger built by NewLogger.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // console or json
	File       string `yaml:"file"`   // optional rotated log file
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Title: "Placard", Width: 1024, Height: 768},
		Camera: CameraConfig{Distance: 900, Near: 10},
		Placement: Box{
			Min: Vec3{-350, -250, -250},
			Max: Vec3{350, 250, 150},
		},
		Placard: PlacardConfig{
			Size:  Vec3{160, 100, 8},
			Color: Color{R: 0.96, G: 0.85, B: 0.35, A: 1},
		},
		Label: LabelConfig{
			Color:          Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
			FontSize:       16,
			WrapWidth:      144,
			Depth:          0.5,
			Offset:         0.5,
			MaxHeightRatio: 0.9,
		},
		Input: InputConfig{DragDeadZone: defaultDragDeadZone},
		Spawn: SpawnConfig{Duration: 0.25, Ease: "outBack"},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.New("window size must be positive")
	case c.Camera.Distance <= 0:
		return errors.New("camera distance must be positive")
	case c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Distance:
		return errors.New("camera near plane must be in (0, distance)")
	case c.Placement.Max.X < c.Placement.Min.X ||
		c.Placement.Max.Y < c.Placement.Min.Y ||
		c.Placement.Max.Z < c.Placement.Min.Z:
		return errors.New("placement volume max must not be below min")
	case c.Placard.Size.X <= 0 || c.Placard.Size.Y <= 0 || c.Placard.Size.Z <= 0:
		return errors.New("placard size must be positive")
	case c.Label.FontSize <= 0:
		return errors.New("label font size must be positive")
	case c.Label.WrapWidth < 0 || c.Label.Depth < 0:
		return errors.New("label wrap width and depth must not be negative")
	case c.Spawn.Duration < 0:
		return errors.New("spawn duration must not be negative")
	}
	if _, ok := easeFuncs[c.Spawn.Ease]; c.Spawn.Ease != "" && !ok {
		return fmt.Errorf("unknown spawn ease %q", c.Spawn.Ease)
	}
	return nil
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their DefaultConfig values. PLACARD_DEBUG=1 forces debug mode.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("placard: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("placard: parse config: %w", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("placard: invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("placard: create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("placard: encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("placard: write config: %w", err)
	}
	return nil
}

// ApplyEnv applies environment overrides: PLACARD_DEBUG=1 forces debug mode.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PLACARD_DEBUG"); v == "1" || v == "true" {
		c.Debug = true
	}
}
