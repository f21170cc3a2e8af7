// Package config loads the optional papercalc configuration file.
//
// The file is named by the --config flag or, failing that, the
// PAPERCALC_CONFIG environment variable. There is no discovery: with
// neither set, built-in defaults apply.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"papercalc-core/basis"
	"papercalc/internal/display"
)

// EnvVar names the environment variable consulted when --config is empty.
const EnvVar = "PAPERCALC_CONFIG"

// MaxPrecision caps display decimals.
const MaxPrecision = 12

// Config is the on-disk configuration.
type Config struct {
	// DefaultPreset replaces basis.DefaultPreset when --preset is not given.
	DefaultPreset string `yaml:"default_preset"`

	// Precision overrides display rounding per field. Unset fields keep
	// their built-in precision.
	Precision Precision `yaml:"precision"`

	// Presets adds or replaces named basis sizes.
	Presets []Preset `yaml:"presets"`
}

// Precision holds optional decimal places per displayed quantity.
type Precision struct {
	GSM     *int `yaml:"gsm,omitempty"`
	Micron  *int `yaml:"micron,omitempty"`
	Mm      *int `yaml:"mm,omitempty"`
	Tiao    *int `yaml:"tiao,omitempty"`
	Bulk    *int `yaml:"bulk,omitempty"`
	Lb      *int `yaml:"lb,omitempty"`
	Area    *int `yaml:"area,omitempty"`
	Density *int `yaml:"density,omitempty"`
}

// Preset is a named basis size in inches.
type Preset struct {
	Name     string  `yaml:"name"`
	Label    string  `yaml:"label,omitempty"`
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
}

// Path returns flagPath, or the EnvVar value when flagPath is empty.
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvVar)
}

// Load reads the file at path. An empty path yields a zero Config.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML configuration. Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks precision bounds and preset sizes.
func (c *Config) Validate() error {
	for name, p := range c.Precision.fields() {
		if p != nil && (*p < 0 || *p > MaxPrecision) {
			return fmt.Errorf("precision.%s must be between 0 and %d, got %d", name, MaxPrecision, *p)
		}
	}
	seen := make(map[string]bool)
	for i, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("presets[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("presets[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		if !p.size().Valid() {
			return fmt.Errorf("presets[%d] %q: width_in and height_in must be positive", i, p.Name)
		}
	}
	return nil
}

func (p Precision) fields() map[string]*int {
	return map[string]*int{
		"gsm": p.GSM, "micron": p.Micron, "mm": p.Mm, "tiao": p.Tiao,
		"bulk": p.Bulk, "lb": p.Lb, "area": p.Area, "density": p.Density,
	}
}

func (p Preset) size() basis.Size {
	return basis.Size{WidthIn: p.WidthIn, HeightIn: p.HeightIn}
}

// Catalog returns the built-in presets extended with the configured ones.
func (c *Config) Catalog() (*basis.Catalog, error) {
	cat := basis.NewCatalog()
	for _, p := range c.Presets {
		label := p.Label
		if label == "" {
			label = p.Name
		}
		if err := cat.Add(basis.Preset{Name: p.Name, Label: label, Size: p.size()}); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	if c.DefaultPreset != "" {
		if _, ok := cat.Lookup(c.DefaultPreset); !ok {
			return nil, fmt.Errorf("config: default_preset %q is not a known preset", c.DefaultPreset)
		}
	}
	return cat, nil
}

// Preset returns DefaultPreset or the built-in default.
func (c *Config) Preset() string {
	if c.DefaultPreset != "" {
		return c.DefaultPreset
	}
	return basis.DefaultPreset
}

// Apply overlays the configured decimals on d.
func (p Precision) Apply(d display.Precision) display.Precision {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&d.GSM, p.GSM)
	set(&d.Micron, p.Micron)
	set(&d.Mm, p.Mm)
	set(&d.Tiao, p.Tiao)
	set(&d.Bulk, p.Bulk)
	set(&d.Lb, p.Lb)
	set(&d.Area, p.Area)
	set(&d.Density, p.Density)
	return d
}
