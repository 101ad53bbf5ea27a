package generator_test

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/mookgen/internal/game/dice"
	"github.com/cory-johannsen/mookgen/internal/game/generator"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

// fixedSource always returns val for any Intn call, clamped to n-1.
type fixedSource struct{ val int }

func (f *fixedSource) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

// minSource makes every ranged draw return its minimum.
func minSource() dice.Source { return &fixedSource{val: 0} }

// maxSource makes every ranged draw return its maximum.
func maxSource() dice.Source { return &fixedSource{val: 1 << 30} }

func newContext(src dice.Source, attrs generator.AttributeMap, shieldBonus int) *generator.GenerationContext {
	logger := zap.NewNop()
	return &generator.GenerationContext{
		Attributes:        generator.NewProvisionalAttributes(attrs),
		ActiveShieldBonus: shieldBonus,
		Roller:            dice.NewLoggedRoller(src, logger),
		Params:            rules.DefaultParams(),
		Logger:            logger,
	}
}

func intPtr(v int) *int { return &v }
