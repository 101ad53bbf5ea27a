package generator

import (
	"math"

	"github.com/cory-johannsen/mookgen/internal/game/dice"
	"github.com/cory-johannsen/mookgen/internal/game/npc"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

// DefaultBaseline is the base of st, dx, iq and ht when neither the template
// nor the configuration supplies one.
const DefaultBaseline = 10

// AttributeMap holds one character's attribute values. A missing key means
// the attribute is unavailable, never zero.
type AttributeMap map[rules.Attribute]float64

// Get returns the value of a.
func (m AttributeMap) Get(a rules.Attribute) (float64, bool) {
	v, ok := m[a]
	return v, ok
}

// Int returns the value of a rounded to the nearest whole number.
func (m AttributeMap) Int(a rules.Attribute) (int, bool) {
	v, ok := m[a]
	if !ok {
		return 0, false
	}
	return int(math.Round(v)), true
}

// Clone returns an independent copy of m.
func (m AttributeMap) Clone() AttributeMap {
	out := make(AttributeMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ProvisionalAttributes is the attribute set before weapon selection. Its
// dodge does not yet include a shield's defense bonus.
type ProvisionalAttributes struct {
	values AttributeMap
}

// NewProvisionalAttributes wraps a copy of m, for callers that compute
// attributes elsewhere.
func NewProvisionalAttributes(m AttributeMap) ProvisionalAttributes {
	return ProvisionalAttributes{values: m.Clone()}
}

// Get returns the provisional value of a.
func (p ProvisionalAttributes) Get(a rules.Attribute) (float64, bool) { return p.values.Get(a) }

// Int returns the provisional value of a as a whole number.
func (p ProvisionalAttributes) Int(a rules.Attribute) (int, bool) { return p.values.Int(a) }

// Values returns a copy of the provisional map.
func (p ProvisionalAttributes) Values() AttributeMap { return p.values.Clone() }

// Finalize applies the active shield defense bonus to dodge.
//
// Postcondition: the receiver is unchanged; dodge is absent in the result iff
// it was absent provisionally.
func (p ProvisionalAttributes) Finalize(shieldBonus int) FinalAttributes {
	values := p.values.Clone()
	if d, ok := values[rules.Dodge]; ok {
		values[rules.Dodge] = d + float64(shieldBonus)
	}
	return FinalAttributes{values: values, shieldBonus: shieldBonus}
}

// FinalAttributes is the attribute set of a finished character.
type FinalAttributes struct {
	values      AttributeMap
	shieldBonus int
}

// Get returns the final value of a.
func (f FinalAttributes) Get(a rules.Attribute) (float64, bool) { return f.values.Get(a) }

// Int returns the final value of a as a whole number.
func (f FinalAttributes) Int(a rules.Attribute) (int, bool) { return f.values.Int(a) }

// Values returns a copy of the final map.
func (f FinalAttributes) Values() AttributeMap { return f.values.Clone() }

// ShieldBonus returns the defense bonus that was applied to dodge.
func (f FinalAttributes) ShieldBonus() int { return f.shieldBonus }

// CalculateAttributes rolls a character's attributes in dependency order:
// core (st, dx, iq, ht, parry), then derived (hp, will, per, fp, speed, move,
// dodge), then independent (shield, dr, sm, coins). An attribute whose range or
// prerequisite is missing is left out of the result.
//
// Precondition: tmpl and r must be non-nil; params must have passed Validate.
// Postcondition: every core attribute with a configured range is present;
// dodge == params.Dodge(move, 0) whenever speed was computed.
func CalculateAttributes(tmpl *npc.Template, cfg GenerationConfig, params rules.Params, r *dice.Roller) ProvisionalAttributes {
	m := AttributeMap{}
	rollInt := func(attr rules.Attribute) (int, bool) {
		rng, ok := cfg.Range(attr)
		if !ok {
			return 0, false
		}
		lo, hi := rng.Ints()
		return r.IntRange(lo, hi), true
	}

	for _, attr := range rules.BaseAttributes {
		roll, ok := rollInt(attr)
		if !ok {
			continue
		}
		m[attr] = float64(baseline(tmpl, cfg, attr) + roll)
	}
	if roll, ok := rollInt(rules.Parry); ok {
		m[rules.Parry] = float64(roll)
	}

	derive := func(attr, from rules.Attribute) {
		base, ok := m.Int(from)
		if !ok {
			return
		}
		if roll, ok := rollInt(attr); ok {
			m[attr] = float64(base + roll)
		}
	}
	derive(rules.HP, params.HPBase)
	derive(rules.Will, rules.IQ)
	derive(rules.Per, rules.IQ)
	derive(rules.FP, params.FPBase)

	dx, hasDX := m.Int(rules.DX)
	ht, hasHT := m.Int(rules.HT)
	if spd, ok := cfg.Range(rules.Speed); ok && hasDX && hasHT {
		speed := rules.SpeedFor(dx, ht, r.FloatRange(spd.Min, spd.Max))
		m[rules.Speed] = speed
		moveRoll, _ := rollInt(rules.Move)
		move := rules.MoveFor(speed, moveRoll)
		m[rules.Move] = float64(move)
		m[rules.Dodge] = float64(params.Dodge(move, 0))
	}

	for _, attr := range []rules.Attribute{rules.Shield, rules.DR, rules.SM, rules.Coins} {
		if roll, ok := rollInt(attr); ok {
			m[attr] = float64(roll)
		}
	}
	return ProvisionalAttributes{values: m}
}

// baseline picks the template's value, then the configured override, then DefaultBaseline.
func baseline(tmpl *npc.Template, cfg GenerationConfig, attr rules.Attribute) int {
	if v, ok := tmpl.Baseline(attr); ok {
		return v
	}
	if rng, ok := cfg.Attributes[attr]; ok && rng.Base != nil {
		return *rng.Base
	}
	return DefaultBaseline
}
