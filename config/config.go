// Package config loads grid calibration and editor defaults from YAML or
// TOML files.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"grid-canvas/errors"
	"grid-canvas/grid"
)

// ConflictPolicy decides what happens when an item is dropped onto cells
// that overlap a sibling.
type ConflictPolicy string

const (
	// PolicyAllow commits the drop and only flags the overlap visually.
	PolicyAllow ConflictPolicy = "allow"
	// PolicyReject refuses to commit overlapping drops.
	PolicyReject ConflictPolicy = "reject"
)

// Window configures the interactive editor window.
type Window struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
}

// Config is the full editor configuration.
type Config struct {
	Columns           int            `yaml:"columns" toml:"columns"`
	EdgePadding       float64        `yaml:"edge_padding" toml:"edge_padding"`
	NestedEdgePadding float64        `yaml:"nested_edge_padding" toml:"nested_edge_padding"`
	BorderWidth       float64        `yaml:"border_width" toml:"border_width"`
	SafeRows          int            `yaml:"safe_rows" toml:"safe_rows"`
	UnitHeight        float64        `yaml:"unit_height" toml:"unit_height"`
	MinWidgetW        int            `yaml:"min_widget_w" toml:"min_widget_w"`
	MinWidgetH        int            `yaml:"min_widget_h" toml:"min_widget_h"`
	ConflictPolicy    ConflictPolicy `yaml:"conflict_policy" toml:"conflict_policy"`
	ScrollStep        float64        `yaml:"scroll_step" toml:"scroll_step"`
	LeftPanelWidth    float64        `yaml:"left_panel_width" toml:"left_panel_width"`
	BottomPanelHeight float64        `yaml:"bottom_panel_height" toml:"bottom_panel_height"`
	Window            Window         `yaml:"window" toml:"window"`
	FontPath          string         `yaml:"font_path" toml:"font_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Columns:           grid.DefaultColumns,
		EdgePadding:       18,
		NestedEdgePadding: 4,
		BorderWidth:       2,
		SafeRows:          0,
		UnitHeight:        8,
		MinWidgetW:        2,
		MinWidgetH:        2,
		ConflictPolicy:    PolicyAllow,
		ScrollStep:        24,
		LeftPanelWidth:    180,
		BottomPanelHeight: 120,
		Window:            Window{Width: 1280, Height: 800, Title: "grid-canvas"},
	}
}

// Calibration returns the calibration of the root canvas.
func (c Config) Calibration() grid.Calibration {
	return grid.Calibration{
		Columns:     c.Columns,
		EdgePadding: c.EdgePadding,
		BorderWidth: c.BorderWidth,
	}
}

// NestedCalibration returns the calibration of canvases hosted inside a
// canvas node. Nested canvases keep SafeRows empty rows below their content.
func (c Config) NestedCalibration() grid.Calibration {
	return grid.Calibration{
		Columns:     c.Columns,
		EdgePadding: c.NestedEdgePadding,
		BorderWidth: c.BorderWidth,
		SafeRows:    c.SafeRows,
	}
}

// Validate checks that the configuration can produce a usable grid.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, format, args...))
	}
	if c.Columns <= 0 {
		bad("columns must be positive, got %d", c.Columns)
	}
	if c.UnitHeight <= 0 {
		bad("unit_height must be positive, got %v", c.UnitHeight)
	}
	if c.EdgePadding < 0 || c.NestedEdgePadding < 0 || c.BorderWidth < 0 {
		bad("paddings and border width must not be negative")
	}
	if c.SafeRows < 0 {
		bad("safe_rows must not be negative, got %d", c.SafeRows)
	}
	if c.MinWidgetW < 1 || c.MinWidgetH < 1 {
		bad("minimum widget size must be at least 1x1, got %dx%d", c.MinWidgetW, c.MinWidgetH)
	}
	switch c.ConflictPolicy {
	case PolicyAllow, PolicyReject:
	default:
		bad("conflict_policy must be %q or %q, got %q", PolicyAllow, PolicyReject, c.ConflictPolicy)
	}
	return errors.Join(errs...)
}

// Load reads a configuration file, choosing the format by extension, and
// fills unset keys from Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Parse decodes configuration data in the given format ("yaml", "yml" or
// "toml") over the defaults and validates the result.
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()
	switch format {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml")
		}
	case "toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown toml keys: %v", undecoded)
		}
	default:
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	return cfg, cfg.Validate()
}
