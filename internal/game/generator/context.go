package generator

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/mookgen/internal/game/damage"
	"github.com/cory-johannsen/mookgen/internal/game/dice"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

// GenerationContext is the per-character calculation state. A new context is
// built for every character; nothing in it outlives that character.
type GenerationContext struct {
	Attributes ProvisionalAttributes
	// ActiveShieldBonus is the defense bonus of the one shield guaranteed by
	// melee selection, or 0 when the character carries no usable shield.
	ActiveShieldBonus int
	Roller            *dice.Roller
	Params            rules.Params
	Logger            *zap.Logger
}

// strength returns the character's ST, or the damage table's fallback row when ST is unavailable.
func (gc *GenerationContext) strength() int {
	if st, ok := gc.Attributes.Int(rules.ST); ok {
		return st
	}
	return damage.FallbackStrength
}

// shieldAttribute returns the rolled shield attribute, or 0.
func (gc *GenerationContext) shieldAttribute() int {
	v, _ := gc.Attributes.Int(rules.Shield)
	return v
}
