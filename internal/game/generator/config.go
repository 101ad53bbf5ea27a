// Package generator turns a mook template and a generation configuration into
// finished statblocks: attributes in dependency order, mandatory-first catalog
// selection, skill and weapon levels, and formatted combat lines.
package generator

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

// Category names a selectable catalog section that carries a level.
type Category string

const (
	Skills Category = "skills"
	Spells Category = "spells"
	Melee  Category = "melee"
	Ranged Category = "ranged"
)

// Categories lists the leveled catalog sections in generation order.
var Categories = []Category{Melee, Ranged, Skills, Spells}

// Range is the random spread configured for one attribute.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
	// Base overrides the default baseline of 10 for st, dx, iq and ht when the
	// template declares none.
	Base *int `yaml:"base,omitempty" json:"base,omitempty"`
}

// Configured reports whether the range can be sampled.
func (r Range) Configured() bool {
	return r.Min <= r.Max
}

// Ints returns the bounds rounded to whole numbers for integer attributes.
func (r Range) Ints() (int, int) {
	return int(math.Round(r.Min)), int(math.Round(r.Max))
}

// Quota sizes one category: how many items to pick and the level spread.
type Quota struct {
	Quantity int `yaml:"quantity" json:"quantity"`
	LevelMin int `yaml:"level_min" json:"level_min"`
	LevelMax int `yaml:"level_max" json:"level_max"`
}

// GenerationConfig is the complete input contract of the generator besides the template.
type GenerationConfig struct {
	Attributes     map[rules.Attribute]Range `yaml:"attributes" json:"attributes"`
	Quotas         map[Category]Quota        `yaml:"quotas" json:"quotas"`
	TraitsQuantity int                       `yaml:"traits_quantity" json:"traits_quantity"`
	CharacterCount int                       `yaml:"character_count" json:"character_count"`
}

// DefaultGenerationConfig returns the spreads used when a template is imported
// without a saved configuration.
func DefaultGenerationConfig() GenerationConfig {
	r := func(min, max float64) Range { return Range{Min: min, Max: max} }
	q := Quota{Quantity: 2, LevelMin: -2, LevelMax: 2}
	return GenerationConfig{
		Attributes: map[rules.Attribute]Range{
			rules.ST:     r(-2, 2),
			rules.DX:     r(-2, 2),
			rules.IQ:     r(-2, 2),
			rules.HT:     r(-2, 2),
			rules.HP:     r(-4, 4),
			rules.Will:   r(-2, 2),
			rules.Per:    r(-2, 2),
			rules.FP:     r(-2, 4),
			rules.Shield: r(-1, 1),
			rules.Parry:  r(-1, 1),
			rules.Speed:  r(-0.25, 0.75),
			rules.Move:   r(-1, 1),
			rules.SM:     r(0, 1),
			rules.DR:     r(0, 3),
			rules.Dodge:  r(-1, 1),
			rules.Coins:  r(0, 100),
		},
		Quotas: map[Category]Quota{
			Skills: q,
			Spells: q,
			Melee:  q,
			Ranged: q,
		},
		TraitsQuantity: 4,
		CharacterCount: 1,
	}
}

// Range returns the configured range for attr.
//
// Postcondition: ok is false when attr has no range or its bounds are inverted.
func (c GenerationConfig) Range(attr rules.Attribute) (Range, bool) {
	r, ok := c.Attributes[attr]
	if !ok || !r.Configured() {
		return Range{}, false
	}
	return r, true
}

// Quota returns the quota for cat; an unconfigured category selects only mandatory items.
func (c GenerationConfig) Quota(cat Category) Quota {
	return c.Quotas[cat]
}

// Validate checks every invariant of the configuration.
//
// Postcondition: Returns nil or one error naming every violation.
func (c GenerationConfig) Validate() error {
	var errs []string
	attrs := make([]string, 0, len(c.Attributes))
	for a := range c.Attributes {
		attrs = append(attrs, string(a))
	}
	sort.Strings(attrs)
	for _, name := range attrs {
		attr := rules.Attribute(name)
		if known, ok := rules.ParseAttribute(name); !ok || known != attr {
			errs = append(errs, fmt.Sprintf("attributes: unknown attribute %q", name))
			continue
		}
		r := c.Attributes[attr]
		if !r.Configured() {
			errs = append(errs, fmt.Sprintf("attributes.%s: min (%g) must be <= max (%g)", name, r.Min, r.Max))
		}
		if r.Base != nil && !attr.IsBase() {
			errs = append(errs, fmt.Sprintf("attributes.%s: base is only allowed for st, dx, iq, ht", name))
		}
	}
	for cat, q := range c.Quotas {
		switch cat {
		case Skills, Spells, Melee, Ranged:
		default:
			errs = append(errs, fmt.Sprintf("quotas: unknown category %q", cat))
			continue
		}
		if q.Quantity < 0 {
			errs = append(errs, fmt.Sprintf("quotas.%s.quantity must be >= 0, got %d", cat, q.Quantity))
		}
		if q.LevelMin > q.LevelMax {
			errs = append(errs, fmt.Sprintf("quotas.%s: level_min (%d) must be <= level_max (%d)", cat, q.LevelMin, q.LevelMax))
		}
	}
	if c.TraitsQuantity < 0 {
		errs = append(errs, fmt.Sprintf("traits_quantity must be >= 0, got %d", c.TraitsQuantity))
	}
	if c.CharacterCount < 1 {
		errs = append(errs, fmt.Sprintf("character_count must be >= 1, got %d", c.CharacterCount))
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("generation config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ParseGenerationConfig decodes a YAML generation configuration. Attribute and
// category keys are case-insensitive; character_count defaults to 1.
//
// Postcondition: Returns a validated config or an error.
func ParseGenerationConfig(data []byte) (GenerationConfig, error) {
	cfg := GenerationConfig{CharacterCount: 1}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GenerationConfig{}, fmt.Errorf("parsing generation config YAML: %w", err)
	}
	if len(cfg.Attributes) > 0 {
		lowered := make(map[rules.Attribute]Range, len(cfg.Attributes))
		for a, r := range cfg.Attributes {
			lowered[rules.Attribute(strings.ToLower(string(a)))] = r
		}
		cfg.Attributes = lowered
	}
	if len(cfg.Quotas) > 0 {
		lowered := make(map[Category]Quota, len(cfg.Quotas))
		for c, q := range cfg.Quotas {
			lowered[Category(strings.ToLower(string(c)))] = q
		}
		cfg.Quotas = lowered
	}
	if err := cfg.Validate(); err != nil {
		return GenerationConfig{}, err
	}
	return cfg, nil
}

// LoadGenerationConfig reads and parses the YAML file at path.
func LoadGenerationConfig(path string) (GenerationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GenerationConfig{}, fmt.Errorf("reading generation config %q: %w", path, err)
	}
	cfg, err := ParseGenerationConfig(data)
	if err != nil {
		return GenerationConfig{}, fmt.Errorf("loading %q: %w", path, err)
	}
	return cfg, nil
}
