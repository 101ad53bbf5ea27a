package dice

import (
	"math"

	"go.uber.org/zap"
)

// Roller wraps a Source and logger to provide the ranged draws the generator
// needs. Every draw is logged at debug level so a seeded run can be audited.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs each draw to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn returns a value in [0, n), so a Roller can stand in wherever a Source is expected.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

// IntRange returns a uniform integer in [min, max].
//
// Precondition: min <= max.
// Postcondition: min <= result <= max.
func (r *Roller) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	v := min + r.src.Intn(max-min+1)
	r.logger.Debug("int range draw",
		zap.Int("min", min),
		zap.Int("max", max),
		zap.Int("value", v),
	)
	return v
}

// FloatRange returns a uniform value in [min, max] at 0.01 resolution.
//
// Precondition: min <= max.
// Postcondition: min <= result <= max (within rounding to two decimals).
func (r *Roller) FloatRange(min, max float64) float64 {
	steps := int(math.Round((max - min) * 100))
	if steps <= 0 {
		return min
	}
	v := math.Round((min+float64(r.src.Intn(steps+1))/100)*100) / 100
	r.logger.Debug("float range draw",
		zap.Float64("min", min),
		zap.Float64("max", max),
		zap.Float64("value", v),
	)
	return v
}

// Chance returns true with probability p, resolved in whole percent.
//
// Precondition: 0 <= p <= 1.
func (r *Roller) Chance(p float64) bool {
	hit := r.src.Intn(100) < int(math.Round(p*100))
	r.logger.Debug("chance draw", zap.Float64("p", p), zap.Bool("hit", hit))
	return hit
}

// Roll rolls expr and logs the result at debug level.
//
// Postcondition: result logged; result.Total() == sum(result.Dice) + result.Modifier.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Precondition: expr must be a valid dice expression string.
// Postcondition: Returns a RollResult or a parse error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := ParseExpressionStrict(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}
