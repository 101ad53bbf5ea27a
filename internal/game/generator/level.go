package generator

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/mookgen/internal/game/npc"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

// ResolveLevel computes the skill level of a selected catalog item.
//
//   - Weapons: value of the best attribute default plus a quota roll.
//   - Skills: value of the difficulty attribute plus its modifier plus a quota roll.
//   - Spells: IQ plus a quota roll.
//
// When the needed attribute is unknown or not positive the level is the quota
// roll alone and a warning is logged.
//
// Precondition: gc must be non-nil.
func ResolveLevel(gc *GenerationContext, item npc.CatalogItem, q Quota) int {
	switch v := item.(type) {
	case npc.MeleeWeapon:
		return weaponLevel(gc, v.Name, v.Defaults, q)
	case npc.RangedWeapon:
		return weaponLevel(gc, v.Name, v.Defaults, q)
	case npc.Skill:
		if v.Difficulty == "" {
			return roll(gc, q)
		}
		d := rules.ParseDifficulty(v.Difficulty)
		if !d.OK() {
			gc.Logger.Debug("unparsed difficulty code",
				zap.String("skill", v.Name),
				zap.String("difficulty", v.Difficulty),
			)
			return roll(gc, q)
		}
		return attributeLevel(gc, v.Name, d.Attribute, d.Modifier, q)
	case npc.Spell:
		return attributeLevel(gc, v.Name, rules.IQ, 0, q)
	}
	return roll(gc, q)
}

func weaponLevel(gc *GenerationContext, name string, defaults []rules.Default, q Quota) int {
	best := rules.BestDefault(defaults)
	return attributeLevel(gc, name, best.Attr(), 0, q)
}

func attributeLevel(gc *GenerationContext, name string, attr rules.Attribute, modifier int, q Quota) int {
	v, ok := gc.Attributes.Int(attr)
	if !ok || v <= 0 {
		gc.Logger.Warn("attribute unavailable for level, using random level",
			zap.String("item", name),
			zap.String("attribute", string(attr)),
		)
		return roll(gc, q)
	}
	return v + modifier + roll(gc, q)
}

func roll(gc *GenerationContext, q Quota) int {
	return gc.Roller.IntRange(q.LevelMin, q.LevelMax)
}
