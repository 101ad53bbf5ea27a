package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/mookgen/internal/game/generator"
	"github.com/cory-johannsen/mookgen/internal/game/npc"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

var levelQuota = generator.Quota{Quantity: 1, LevelMin: -2, LevelMax: 2}

func TestResolveLevel_WeaponUsesBestAttributeDefault(t *testing.T) {
	gc := newContext(minSource(), generator.AttributeMap{rules.ST: 13, rules.DX: 11}, 0)
	w := npc.MeleeWeapon{Name: "Club", Defaults: []rules.Default{
		{Attribute: "dx", Modifier: -4},
		{Attribute: "st", Modifier: -2},
		{Attribute: "Broadsword", Modifier: -1},
	}}
	// st 13 + roll -2; the default's own modifier is not applied.
	assert.Equal(t, 11, generator.ResolveLevel(gc, w, levelQuota))
}

func TestResolveLevel_WeaponFallsBackToDX(t *testing.T) {
	gc := newContext(maxSource(), generator.AttributeMap{rules.DX: 12}, 0)
	r := npc.RangedWeapon{Name: "Sling"}
	assert.Equal(t, 14, generator.ResolveLevel(gc, r, levelQuota))
}

func TestResolveLevel_Skill(t *testing.T) {
	gc := newContext(minSource(), generator.AttributeMap{rules.IQ: 11, rules.DX: 12}, 0)
	assert.Equal(t, 7, generator.ResolveLevel(gc, npc.Skill{Name: "Tactics", Difficulty: "IQ/H"}, levelQuota))
	assert.Equal(t, 10, generator.ResolveLevel(gc, npc.Skill{Name: "Brawling", Difficulty: "dx/e"}, levelQuota))
	assert.Equal(t, -2, generator.ResolveLevel(gc, npc.Skill{Name: "Odd", Difficulty: "will/a"}, levelQuota))
	assert.Equal(t, -2, generator.ResolveLevel(gc, npc.Skill{Name: "Plain"}, levelQuota))
}

func TestResolveLevel_Spell(t *testing.T) {
	gc := newContext(maxSource(), generator.AttributeMap{rules.IQ: 13}, 0)
	assert.Equal(t, 15, generator.ResolveLevel(gc, npc.Spell{Name: "Light", Difficulty: "iq/vh"}, levelQuota))
}

func TestResolveLevel_MissingAttributeWarnsAndRolls(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	gc := newContext(maxSource(), generator.AttributeMap{rules.IQ: 0}, 0)
	gc.Logger = zap.New(core)

	assert.Equal(t, 2, generator.ResolveLevel(gc, npc.Spell{Name: "Light"}, levelQuota), "non-positive IQ counts as unavailable")
	assert.Equal(t, 2, generator.ResolveLevel(gc, npc.MeleeWeapon{Name: "Axe"}, levelQuota))

	entries := logs.FilterMessage("attribute unavailable for level, using random level").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Light", entries[0].ContextMap()["item"])
	assert.Equal(t, "dx", entries[1].ContextMap()["attribute"])
}
