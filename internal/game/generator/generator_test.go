package generator_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mookgen/internal/game/dice"
	"github.com/cory-johannsen/mookgen/internal/game/generator"
	"github.com/cory-johannsen/mookgen/internal/game/npc"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

func guardTemplate() *npc.Template {
	return &npc.Template{
		ID:        "guard",
		Name:      "Town Guard",
		Notes:     []string{"Calls for help at half HP."},
		Baselines: map[rules.Attribute]int{rules.ST: 11},
		Skills: []npc.Skill{
			{Name: "Brawling", Difficulty: "dx/e", Mandatory: true},
			{Name: "Savoir-Faire", Difficulty: "iq/e"},
			{Name: "Observation", Difficulty: "per/a"},
		},
		Traits: []npc.Trait{{Name: "Duty", Value: "12"}, {Name: "Fit"}},
		Melee: []npc.MeleeWeapon{
			{Name: "Broadsword", Mandatory: true,
				Defaults: []rules.Default{{Attribute: "dx", Modifier: -5}, {Attribute: "st", Modifier: -3}},
				Attacks: []npc.MeleeAttack{
					{Damage: "sw+1 cut", BaseDamageTag: "sw+1", Reach: "1", Parry: "0"},
					{Damage: "thr+1 cr", BaseDamageTag: "thr+1", Reach: "1", Parry: "0"},
				}},
			{Name: "Medium Shield", Shield: true, DefenseBonus: intPtr(2),
				Attacks: []npc.MeleeAttack{{Damage: "thr cr", BaseDamageTag: "thr", Usage: "Shield Bash"}}},
			{Name: "Buckler", Shield: true, DefenseBonus: intPtr(1),
				Attacks: []npc.MeleeAttack{{Damage: "thr cr", BaseDamageTag: "thr"}}},
		},
		Ranged: []npc.RangedWeapon{
			{Name: "Light Crossbow", Damage: "thr+4 imp", BaseDamageTag: "thr+4", Accuracy: "4"},
		},
	}
}

func newGenerator(t *testing.T, cfg generator.GenerationConfig, src dice.Source) *generator.Generator {
	t.Helper()
	g, err := generator.New(cfg, rules.DefaultParams(), src, zap.NewNop())
	require.NoError(t, err)
	return g
}

func TestGenerate_AtMinimum(t *testing.T) {
	g := newGenerator(t, generator.DefaultGenerationConfig(), minSource())
	sb, err := g.Generate(guardTemplate())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, sb.ID)
	assert.Equal(t, "guard", sb.TemplateID)
	assert.Equal(t, "Town Guard", sb.Name)

	// st 11-2, dx/iq/ht 10-2
	assert.Equal(t, 9.0, sb.Attributes[rules.ST])
	assert.Equal(t, 2, sb.ShieldBonus)
	// provisional dodge: floor(3.75) - 1 + 3 = 5, plus shield bonus 2
	assert.Equal(t, 7.0, sb.Attributes[rules.Dodge])

	// Broadsword level: st 9 + roll -2 = 7; parry 7/2 + 3 + 0 + 2 = 8.
	require.Len(t, sb.Melee, 3)
	assert.Equal(t, "Broadsword(7) 1d cut reach 1 parry 8", sb.Melee[0])
	assert.Equal(t, "Broadsword(7) 1d-1 cr reach 1 parry 8", sb.Melee[1])
	// Medium Shield is index 0 of the usable shields; shield attribute -1.
	// No defaults: dx 8 + roll -2 = 6; block 6/2 + 3 + 2 - 1 = 7.
	assert.Equal(t, "Medium Shield(6) 1d-2 cr usage shield-bash block 7", sb.Melee[2])

	assert.Equal(t, []string{"Light Crossbow(6) 1d+2 imp acc 4"}, sb.Ranged)
	assert.Equal(t, "Brawling-6", sb.Skills[0])
	assert.Len(t, sb.Skills, 2)
	assert.Empty(t, sb.Spells)
	assert.Len(t, sb.Traits, 2)
	assert.True(t, sb.Coins.IsEmpty(), "coins rolled 0")
	assert.Equal(t, []string{"Calls for help at half HP."}, sb.Notes)
}

func TestGenerate_CoinsDistributedFromRolledValue(t *testing.T) {
	g := newGenerator(t, generator.DefaultGenerationConfig(), maxSource())
	sb, err := g.Generate(guardTemplate())
	require.NoError(t, err)
	assert.Equal(t, 100.0, sb.Attributes[rules.Coins])
	assert.False(t, sb.Coins.IsEmpty())
	assert.LessOrEqual(t, sb.Coins.Value(), 100.0)
}

func TestGenerate_RejectsInvalidTemplate(t *testing.T) {
	g := newGenerator(t, generator.DefaultGenerationConfig(), minSource())
	_, err := g.Generate(&npc.Template{})
	assert.Error(t, err)
	_, err = g.Generate(nil)
	assert.Error(t, err)
}

func TestNew_ValidatesInputs(t *testing.T) {
	_, err := generator.New(generator.GenerationConfig{}, rules.DefaultParams(), minSource(), zap.NewNop())
	assert.ErrorContains(t, err, "character_count")

	bad := rules.DefaultParams()
	bad.ParryDivisor = 0
	_, err = generator.New(generator.DefaultGenerationConfig(), bad, minSource(), zap.NewNop())
	assert.ErrorContains(t, err, "parry_divisor")

	_, err = generator.New(generator.DefaultGenerationConfig(), rules.DefaultParams(), nil, zap.NewNop())
	assert.Error(t, err)
}

func TestGenerateBatch(t *testing.T) {
	cfg := generator.DefaultGenerationConfig()
	cfg.CharacterCount = 4
	g := newGenerator(t, cfg, dice.NewSeededSource(9))

	res := g.GenerateBatch(guardTemplate())
	require.Len(t, res.Statblocks, 4)
	assert.Empty(t, res.Failures)
	ids := map[uuid.UUID]bool{}
	for _, sb := range res.Statblocks {
		ids[sb.ID] = true
	}
	assert.Len(t, ids, 4)

	failed := g.GenerateBatch(&npc.Template{ID: "broken"})
	assert.Empty(t, failed.Statblocks)
	require.Len(t, failed.Failures, 4)
	assert.Equal(t, 3, failed.Failures[3].Index)
}

func TestGenerate_SameSeedReplaysSameCharacter(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		a, err := generator.New(generator.DefaultGenerationConfig(), rules.DefaultParams(), dice.NewSeededSource(seed), zap.NewNop())
		require.NoError(rt, err)
		b, err := generator.New(generator.DefaultGenerationConfig(), rules.DefaultParams(), dice.NewSeededSource(seed), zap.NewNop())
		require.NoError(rt, err)

		x, err := a.Generate(guardTemplate())
		require.NoError(rt, err)
		y, err := b.Generate(guardTemplate())
		require.NoError(rt, err)

		assert.Equal(rt, x.Attributes, y.Attributes)
		assert.Equal(rt, x.Melee, y.Melee)
		assert.Equal(rt, x.Skills, y.Skills)
		assert.Equal(rt, x.Coins, y.Coins)
	})
}

func TestProperty_Generate_Invariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g, err := generator.New(generator.DefaultGenerationConfig(), rules.DefaultParams(),
			dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), zap.NewNop())
		require.NoError(rt, err)
		sb, err := g.Generate(guardTemplate())
		require.NoError(rt, err)

		assert.Contains(rt, sb.Skills[0], "Brawling-")
		assert.Contains(rt, sb.Melee[0], "Broadsword(")
		assert.Positive(rt, sb.ShieldBonus, "one usable shield is always guaranteed")

		shieldLines := 0
		for _, l := range sb.Melee {
			if len(l) >= 6 && (l[:6] == "Medium" || l[:6] == "Buckle") {
				shieldLines++
			}
		}
		assert.Equal(rt, 1, shieldLines)

		move, _ := sb.Attributes.Int(rules.Move)
		dodge, _ := sb.Attributes.Int(rules.Dodge)
		assert.Equal(rt, move+3+sb.ShieldBonus, dodge)

		coins, _ := sb.Attributes.Get(rules.Coins)
		assert.LessOrEqual(rt, sb.Coins.Value(), coins)
	})
}

func TestStatblock_RenderAndJSON(t *testing.T) {
	g := newGenerator(t, generator.DefaultGenerationConfig(), maxSource())
	sb, err := g.Generate(guardTemplate())
	require.NoError(t, err)

	out := sb.Render()
	for _, want := range []string{"Town Guard [", "ST 13; DX 12; IQ 12; HT 12", "Speed 6.75", "Melee:\n  Broadsword(", "Skills:\n  Brawling-", "Traits:", "Coins:\n  ", "Notes:"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Spells:")

	data, err := json.Marshal(sb)
	require.NoError(t, err)
	var back generator.Statblock
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, sb.ID, back.ID)
	assert.Equal(t, sb.Melee, back.Melee)
	assert.Equal(t, sb.Attributes, back.Attributes)
	assert.WithinDuration(t, sb.CreatedAt, back.CreatedAt, time.Second)
}

func TestGenerate_BundledContentResolvesEveryLine(t *testing.T) {
	lib, err := npc.NewLibrary(npc.NewDirSource("../../../content/templates"))
	require.NoError(t, err)
	require.Positive(t, lib.Len())

	cfg := generator.DefaultGenerationConfig()
	for _, cat := range generator.Categories {
		cfg.Quotas[cat] = generator.Quota{Quantity: 20, LevelMin: -2, LevelMax: 2}
	}
	cfg.TraitsQuantity = 20

	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		g, err := generator.New(cfg, rules.DefaultParams(), dice.NewSeededSource(seed), zap.NewNop())
		require.NoError(rt, err)

		for _, id := range lib.IDs() {
			tmpl, err := lib.Get(id)
			require.NoError(rt, err)
			sb, err := g.Generate(tmpl)
			require.NoError(rt, err)

			lines := append(append([]string{}, sb.Melee...), sb.Ranged...)
			require.NotEmpty(rt, lines, "template %s has weapons", id)
			for _, l := range lines {
				assert.NotContains(rt, l, "#ERROR", "template %s", id)
			}
		}
	})
}
