// Package npc provides mook template definitions: attribute baselines, the
// skill/spell/trait/weapon catalogs, and the currency a template's characters carry.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/mookgen/internal/game/damage"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

// Template defines a reusable mook archetype loaded from YAML.
//
// A Template is read-only once loaded; generation never mutates it.
type Template struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Notes       []string `yaml:"notes"`
	// Baselines fixes the base value of st, dx, iq or ht before the random offset.
	Baselines map[rules.Attribute]int `yaml:"baselines"`
	Skills    []Skill                 `yaml:"skills"`
	Spells    []Spell                 `yaml:"spells"`
	Traits    []Trait                 `yaml:"traits"`
	Melee     []MeleeWeapon           `yaml:"melee"`
	Ranged    []RangedWeapon          `yaml:"ranged"`
	Currency  []Denomination          `yaml:"currency"`
}

// Baseline returns the template's fixed base for attr, if one is declared.
func (t *Template) Baseline(attr rules.Attribute) (int, bool) {
	v, ok := t.Baselines[attr]
	return v, ok
}

// Denominations returns the template's currency, or DefaultCurrency when it declares none.
func (t *Template) Denominations() []Denomination {
	if len(t.Currency) == 0 {
		return DefaultCurrency()
	}
	return t.Currency
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff every invariant holds; otherwise returns one
// error listing every violation.
func (t *Template) Validate() error {
	var errs []string
	if t.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if t.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	for attr := range t.Baselines {
		if !attr.IsBase() {
			errs = append(errs, fmt.Sprintf("baseline %q must be one of st, dx, iq, ht", attr))
		}
	}
	for i, s := range t.Skills {
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("skills[%d]: name must not be empty", i))
		}
	}
	for i, s := range t.Spells {
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("spells[%d]: name must not be empty", i))
		}
	}
	for i, tr := range t.Traits {
		if tr.Name == "" {
			errs = append(errs, fmt.Sprintf("traits[%d]: name must not be empty", i))
		}
	}
	for i, w := range t.Melee {
		if w.Name == "" {
			errs = append(errs, fmt.Sprintf("melee[%d]: name must not be empty", i))
		}
		if w.DefenseBonus != nil && !w.Shield {
			errs = append(errs, fmt.Sprintf("melee[%d] %q: defense_bonus requires shield: true", i, w.Name))
		}
	}
	for i, w := range t.Ranged {
		if w.Name == "" {
			errs = append(errs, fmt.Sprintf("ranged[%d]: name must not be empty", i))
		}
	}
	for i, d := range t.Currency {
		if d.Name == "" {
			errs = append(errs, fmt.Sprintf("currency[%d]: name must not be empty", i))
		}
		if d.UnitCost < 0 {
			errs = append(errs, fmt.Sprintf("currency[%d] %q: cost must be >= 0, got %g", i, d.Name, d.UnitCost))
		}
		if d.UnitWeight < 0 {
			errs = append(errs, fmt.Sprintf("currency[%d] %q: weight must be >= 0, got %g", i, d.Name, d.UnitWeight))
		}
	}
	if len(errs) > 0 {
		id := t.ID
		if id == "" {
			id = "<unnamed>"
		}
		return fmt.Errorf("mook template %q: %s", id, strings.Join(errs, "; "))
	}
	return nil
}

// inferTags fills every empty BaseDamageTag. A damage text that starts with a
// tag ("sw+2 cut") supplies it directly; otherwise the usage text decides.
func (t *Template) inferTags() {
	for i := range t.Melee {
		for j := range t.Melee[i].Attacks {
			a := &t.Melee[i].Attacks[j]
			if a.BaseDamageTag == "" {
				a.BaseDamageTag = tagFor(a.Damage, a.Usage)
			}
		}
	}
	for i := range t.Ranged {
		w := &t.Ranged[i]
		if w.BaseDamageTag == "" {
			w.BaseDamageTag = tagFor(w.Damage, w.Usage)
		}
	}
}

func tagFor(damageText, usage string) string {
	if fields := strings.Fields(damageText); len(fields) > 0 {
		if tag := damage.ParseTag(fields[0]); tag.OK {
			return tag.String()
		}
	}
	return string(InferBaseDamageTag(usage))
}

// LoadTemplateFromBytes parses a single mook template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template whose attacks all carry a
// BaseDamageTag, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if len(tmpl.Baselines) > 0 {
		lowered := make(map[rules.Attribute]int, len(tmpl.Baselines))
		for attr, v := range tmpl.Baselines {
			lowered[rules.Attribute(strings.ToLower(string(attr)))] = v
		}
		tmpl.Baselines = lowered
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	tmpl.inferTags()
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml and *.yml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading template dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
