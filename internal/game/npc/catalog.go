package npc

import "github.com/cory-johannsen/mookgen/internal/game/rules"

// CatalogItem is the part every catalog entry shares: a display name and
// whether the entry must appear on every generated character.
type CatalogItem interface {
	DisplayName() string
	IsMandatory() bool
}

// Skill is a skill the template's characters may know.
type Skill struct {
	Name      string `yaml:"name"`
	Mandatory bool   `yaml:"mandatory"`
	// Difficulty is a code such as "dx/a"; empty means the level is a pure roll.
	Difficulty string `yaml:"difficulty"`
}

func (s Skill) DisplayName() string { return s.Name }
func (s Skill) IsMandatory() bool   { return s.Mandatory }

// Spell is a spell the template's characters may cast. Spell levels key off IQ.
type Spell struct {
	Name       string `yaml:"name"`
	Mandatory  bool   `yaml:"mandatory"`
	Difficulty string `yaml:"difficulty"`
}

func (s Spell) DisplayName() string { return s.Name }
func (s Spell) IsMandatory() bool   { return s.Mandatory }

// Trait is an advantage, disadvantage or quirk. Value carries an optional
// level or point cost rendered after the name.
type Trait struct {
	Name      string `yaml:"name"`
	Mandatory bool   `yaml:"mandatory"`
	Value     string `yaml:"value"`
}

func (t Trait) DisplayName() string { return t.Name }
func (t Trait) IsMandatory() bool   { return t.Mandatory }

// MeleeAttack is one way of using a melee weapon (a swing, a thrust, a bash).
type MeleeAttack struct {
	// Damage is the free-form damage description, e.g. "sw+2 cut".
	Damage string `yaml:"damage"`
	// BaseDamageTag is "sw" or "thr" with an optional modifier. The loader
	// infers it from Usage when omitted.
	BaseDamageTag string `yaml:"base_damage_tag"`
	Reach         string `yaml:"reach"`
	Usage         string `yaml:"usage"`
	Strength      string `yaml:"strength"`
	Parry         string `yaml:"parry"`
	Block         string `yaml:"block"`
}

// MeleeWeapon is a hand weapon or shield with one or more attacks.
type MeleeWeapon struct {
	Name      string          `yaml:"name"`
	Mandatory bool            `yaml:"mandatory"`
	Defaults  []rules.Default `yaml:"defaults"`
	Attacks   []MeleeAttack   `yaml:"attacks"`
	Shield    bool            `yaml:"shield"`
	// DefenseBonus is the shield's DB; nil means the shield cannot block.
	DefenseBonus *int `yaml:"defense_bonus"`
}

func (w MeleeWeapon) DisplayName() string { return w.Name }
func (w MeleeWeapon) IsMandatory() bool   { return w.Mandatory }

// UsableForBlock reports whether w is a shield with a positive defense bonus.
func (w MeleeWeapon) UsableForBlock() bool {
	return w.Shield && w.DefenseBonus != nil && *w.DefenseBonus > 0
}

// DB returns the shield defense bonus, or 0 when w cannot block.
func (w MeleeWeapon) DB() int {
	if !w.UsableForBlock() {
		return 0
	}
	return *w.DefenseBonus
}

// RangedWeapon is a missile weapon. It has exactly one attack.
type RangedWeapon struct {
	Name          string          `yaml:"name"`
	Mandatory     bool            `yaml:"mandatory"`
	Defaults      []rules.Default `yaml:"defaults"`
	Damage        string          `yaml:"damage"`
	BaseDamageTag string          `yaml:"base_damage_tag"`
	Accuracy      string          `yaml:"accuracy"`
	RateOfFire    string          `yaml:"rate_of_fire"`
	Recoil        string          `yaml:"recoil"`
	Range         string          `yaml:"range"`
	Shots         string          `yaml:"shots"`
	Bulk          string          `yaml:"bulk"`
	Usage         string          `yaml:"usage"`
	Strength      string          `yaml:"strength"`
}

func (w RangedWeapon) DisplayName() string { return w.Name }
func (w RangedWeapon) IsMandatory() bool   { return w.Mandatory }
