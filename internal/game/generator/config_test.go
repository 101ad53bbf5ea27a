package generator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/mookgen/internal/game/generator"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

func TestDefaultGenerationConfig_IsValid(t *testing.T) {
	cfg := generator.DefaultGenerationConfig()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Attributes, len(rules.AllAttributes))
	for _, cat := range generator.Categories {
		assert.Equal(t, generator.Quota{Quantity: 2, LevelMin: -2, LevelMax: 2}, cfg.Quota(cat))
	}
}

func TestParseGenerationConfig(t *testing.T) {
	cfg, err := generator.ParseGenerationConfig([]byte(`
attributes:
  ST: {min: -1, max: 1, base: 12}
  speed: {min: -0.25, max: 0.5}
quotas:
  Melee: {quantity: 3, level_min: 0, level_max: 4}
traits_quantity: 2
`))
	require.NoError(t, err)

	st, ok := cfg.Range(rules.ST)
	require.True(t, ok)
	require.NotNil(t, st.Base)
	assert.Equal(t, 12, *st.Base)
	lo, hi := st.Ints()
	assert.Equal(t, -1, lo)
	assert.Equal(t, 1, hi)

	_, ok = cfg.Range(rules.HP)
	assert.False(t, ok)

	assert.Equal(t, 3, cfg.Quota(generator.Melee).Quantity)
	assert.Equal(t, generator.Quota{}, cfg.Quota(generator.Spells))
	assert.Equal(t, 2, cfg.TraitsQuantity)
	assert.Equal(t, 1, cfg.CharacterCount, "character_count defaults to 1")
}

func TestGenerationConfig_Validate_ReportsEveryViolation(t *testing.T) {
	cfg := generator.GenerationConfig{
		Attributes: map[rules.Attribute]generator.Range{
			"luck":     {Min: 0, Max: 1},
			rules.HP:   {Min: 2, Max: 1, Base: intPtr(3)},
			rules.Move: {Min: 0, Max: 0},
		},
		Quotas: map[generator.Category]generator.Quota{
			"psionics":      {},
			generator.Melee: {Quantity: -1, LevelMin: 3, LevelMax: 1},
		},
		TraitsQuantity: -2,
	}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		`unknown attribute "luck"`,
		"attributes.hp: min (2) must be <= max (1)",
		"attributes.hp: base is only allowed",
		`unknown category "psionics"`,
		"quotas.melee.quantity must be >= 0",
		"quotas.melee: level_min (3) must be <= level_max (1)",
		"traits_quantity must be >= 0",
		"character_count must be >= 1",
	} {
		assert.Contains(t, err.Error(), want)
	}
	assert.NotContains(t, err.Error(), "attributes.move")
}

func TestParseGenerationConfig_Errors(t *testing.T) {
	_, err := generator.ParseGenerationConfig([]byte("attributes: [1, 2"))
	assert.Error(t, err)

	_, err = generator.ParseGenerationConfig([]byte("character_count: 0\n"))
	assert.ErrorContains(t, err, "character_count")
}

func TestLoadGenerationConfig(t *testing.T) {
	cfg, err := generator.LoadGenerationConfig("../../../content/generation/default.yaml")
	require.NoError(t, err)
	assert.Equal(t, generator.DefaultGenerationConfig(), cfg)

	path := filepath.Join(t.TempDir(), "gen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("character_count: 3\n"), 0o644))
	cfg, err = generator.LoadGenerationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.CharacterCount)

	_, err = generator.LoadGenerationConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
