package npc_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mookgen/internal/game/damage"
	"github.com/cory-johannsen/mookgen/internal/game/npc"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

const orcYAML = `
id: orc_warrior
name: Orc Warrior
description: A tusked raider.
notes:
  - Fights to the death when cornered.
baselines:
  ST: 12
  ht: 11
skills:
  - name: Brawling
    difficulty: dx/e
    mandatory: true
  - name: Intimidation
    difficulty: will/a
spells:
  - name: Shield
    difficulty: iq/h
traits:
  - name: Bad Temper
    value: "12"
  - name: Night Vision
melee:
  - name: Axe
    mandatory: true
    defaults:
      - attribute: dx
        modifier: -5
      - attribute: Axe/Mace
        modifier: -3
    attacks:
      - damage: sw+2 cut
        reach: "1"
        usage: Swung
        strength: "11"
        parry: 0U
  - name: Spear
    attacks:
      - damage: 1d+2 imp
        usage: Thrust
        reach: 1-2
        parry: "0"
  - name: Medium Shield
    shield: true
    defense_bonus: 2
    attacks:
      - damage: thr cr
        usage: Shield Bash
        reach: "1"
ranged:
  - name: Short Bow
    damage: thr imp
    accuracy: "1"
    range: x15/x20
    shots: 1(2)
currency:
  - name: silver
    cost: 4
    weight: 0.04
    unit: lbs
`

func TestLoadTemplateFromBytes_FullTemplate(t *testing.T) {
	tmpl, err := npc.LoadTemplateFromBytes([]byte(orcYAML))
	require.NoError(t, err)

	assert.Equal(t, "orc_warrior", tmpl.ID)
	assert.Equal(t, []string{"Fights to the death when cornered."}, tmpl.Notes)

	st, ok := tmpl.Baseline(rules.ST)
	assert.True(t, ok, "upper-case baseline keys are normalised")
	assert.Equal(t, 12, st)
	_, ok = tmpl.Baseline(rules.DX)
	assert.False(t, ok)

	require.Len(t, tmpl.Skills, 2)
	assert.True(t, tmpl.Skills[0].IsMandatory())
	assert.Equal(t, "dx/e", tmpl.Skills[0].Difficulty)

	require.Len(t, tmpl.Melee, 3)
	axe := tmpl.Melee[0]
	assert.Equal(t, "sw+2", axe.Attacks[0].BaseDamageTag, "tag taken from the damage text")
	assert.Len(t, axe.Defaults, 2)
	assert.False(t, axe.UsableForBlock())

	spear := tmpl.Melee[1]
	assert.Equal(t, "thr", spear.Attacks[0].BaseDamageTag, "tag inferred from usage")

	shield := tmpl.Melee[2]
	assert.True(t, shield.UsableForBlock())
	assert.Equal(t, 2, shield.DB())
	assert.Equal(t, "thr", shield.Attacks[0].BaseDamageTag)

	require.Len(t, tmpl.Ranged, 1)
	assert.Equal(t, "thr", tmpl.Ranged[0].BaseDamageTag)

	assert.Equal(t, []npc.Denomination{{Name: "silver", UnitCost: 4, UnitWeight: 0.04, UnitLabel: "lbs"}}, tmpl.Denominations())
}

func TestLoadTemplateFromBytes_ExplicitTagKept(t *testing.T) {
	data := []byte(`
id: a
name: A
melee:
  - name: Knife
    attacks:
      - damage: 1d-1 cut
        base_damage_tag: sw-3
        usage: Thrust
`)
	tmpl, err := npc.LoadTemplateFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "sw-3", tmpl.Melee[0].Attacks[0].BaseDamageTag)
}

func TestTemplate_DefaultCurrencyWhenAbsent(t *testing.T) {
	tmpl, err := npc.LoadTemplateFromBytes([]byte("id: a\nname: A\n"))
	require.NoError(t, err)
	assert.Equal(t, npc.DefaultCurrency(), tmpl.Denominations())
}

func TestTemplate_Validate_ReportsEveryViolation(t *testing.T) {
	db := 1
	tmpl := npc.Template{
		Baselines: map[rules.Attribute]int{rules.HP: 10},
		Skills:    []npc.Skill{{}},
		Melee:     []npc.MeleeWeapon{{Name: "Club", DefenseBonus: &db}},
		Currency:  []npc.Denomination{{Name: "gold", UnitCost: -1}},
	}
	err := tmpl.Validate()
	require.Error(t, err)
	for _, want := range []string{"id must not be empty", "name must not be empty", `baseline "hp"`, "skills[0]", "requires shield", "cost must be >= 0"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadTemplateFromBytes_RejectsBadYAML(t *testing.T) {
	_, err := npc.LoadTemplateFromBytes([]byte("id: [unterminated"))
	assert.Error(t, err)
}

func TestLoadTemplates_ReadsYAMLFilesOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("id: a\nname: A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("id: b\nname: B\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# not a template"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	templates, err := npc.LoadTemplates(dir)
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestLoadTemplates_FailsOnInvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: no id\n"), 0o644))
	_, err := npc.LoadTemplates(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLoadTemplates_MissingDir(t *testing.T) {
	_, err := npc.LoadTemplates(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestInferBaseDamageTag(t *testing.T) {
	tests := map[string]damage.BaseType{
		"":             damage.Swing,
		"Swung":        damage.Swing,
		"Thrust":       damage.Thrust,
		"Stabbing":     damage.Thrust,
		"Armor-Pierce": damage.Thrust,
		"Point first":  damage.Thrust,
		"Shield Bash":  damage.Swing,
	}
	for usage, want := range tests {
		assert.Equal(t, want, npc.InferBaseDamageTag(usage), "usage %q", usage)
	}
}

func TestProperty_Template_InferredTagAlwaysParses(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		usage := rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(rt, "usage")
		data := []byte(fmt.Sprintf("id: a\nname: A\nmelee:\n  - name: W\n    attacks:\n      - damage: 1d cr\n        usage: %q\n", usage))
		tmpl, err := npc.LoadTemplateFromBytes(data)
		require.NoError(rt, err)
		assert.True(rt, damage.ParseTag(tmpl.Melee[0].Attacks[0].BaseDamageTag).OK)
	})
}

func TestProperty_Template_DamagePrefixTagSurvivesLoad(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.SampledFrom([]string{"sw", "thr"}).Draw(rt, "base")
		mod := rapid.IntRange(-6, 6).Draw(rt, "mod")
		prefix := base
		if mod != 0 {
			prefix = fmt.Sprintf("%s%+d", base, mod)
		}
		data := []byte(fmt.Sprintf("id: a\nname: A\nmelee:\n  - name: W\n    attacks:\n      - damage: %s cut\nranged:\n  - name: R\n    damage: %s imp\n", prefix, prefix))
		tmpl, err := npc.LoadTemplateFromBytes(data)
		require.NoError(rt, err)

		for _, got := range []string{tmpl.Melee[0].Attacks[0].BaseDamageTag, tmpl.Ranged[0].BaseDamageTag} {
			assert.Equal(rt, prefix, got)
			tag := damage.ParseTag(got)
			require.True(rt, tag.OK, "stored tag %q must parse", got)
			assert.Equal(rt, mod, tag.Modifier)
		}
	})
}
