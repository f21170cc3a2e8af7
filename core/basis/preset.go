package basis

import (
	"fmt"
	"strings"
)

// Custom is the preset name that takes a user-supplied size.
const Custom = "custom"

// DefaultPreset is used when nothing else is selected.
const DefaultPreset = "woodfree-A"

// Preset binds a grade name to its conventional reference size.
type Preset struct {
	Name  string
	Label string
	Size  Size
}

// Builtin lists the shipped presets in menu order. Custom has no size.
var Builtin = []Preset{
	{Name: "woodfree-A", Label: "Woodfree (模造紙)", Size: Standard},
	{Name: "woodfree-B", Label: "Woodfree (道林紙)", Size: Standard},
	{Name: "coated-gloss", Label: "Coated gloss (銅板紙)", Size: Standard},
	{Name: "coated-matte", Label: "Coated matte (雪銅)", Size: Standard},
	{Name: "text-book", Label: "US Text/Book", Size: Standard},
	{Name: "cover", Label: "US Cover", Size: Cover},
	{Name: Custom, Label: "Custom basis size"},
}

// Catalog is an ordered, case-insensitive preset lookup.
type Catalog struct {
	list  []Preset
	index map[string]int
}

// NewCatalog returns a catalog seeded with Builtin.
func NewCatalog() *Catalog {
	c := &Catalog{index: make(map[string]int)}
	for _, p := range Builtin {
		_ = c.Add(p)
	}
	return c
}

// Add registers p, replacing any preset with the same name. Custom cannot be
// redefined and every other preset needs a valid size.
func (c *Catalog) Add(p Preset) error {
	key := strings.ToLower(strings.TrimSpace(p.Name))
	if key == "" {
		return fmt.Errorf("preset name is empty")
	}
	if key == Custom {
		if _, ok := c.index[key]; ok {
			return fmt.Errorf("preset %q is reserved", Custom)
		}
	} else if !p.Size.Valid() {
		return fmt.Errorf("preset %q: size %s must be positive", p.Name, p.Size)
	}
	if i, ok := c.index[key]; ok {
		c.list[i] = p
		return nil
	}
	c.index[key] = len(c.list)
	c.list = append(c.list, p)
	return nil
}

// Lookup finds a preset by name.
func (c *Catalog) Lookup(name string) (Preset, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, false
	}
	return c.list[i], true
}

// All returns the presets in registration order.
func (c *Catalog) All() []Preset {
	return append([]Preset(nil), c.list...)
}

// Names returns the preset names in registration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.list))
	for i, p := range c.list {
		out[i] = p.Name
	}
	return out
}

// Select resolves the reference size for preset name. For Custom the
// caller's size is returned unchanged (it may be invalid; the engine then
// skips pound-weight conversions).
func (c *Catalog) Select(name string, custom Size) (Size, error) {
	p, ok := c.Lookup(name)
	if !ok {
		return Size{}, fmt.Errorf("unknown preset %q (have: %s)", name, strings.Join(c.Names(), ", "))
	}
	if strings.EqualFold(p.Name, Custom) {
		return custom, nil
	}
	return p.Size, nil
}

var builtin = NewCatalog()

// Lookup finds a built-in preset by name, ignoring case.
func Lookup(name string) (Preset, bool) { return builtin.Lookup(name) }
