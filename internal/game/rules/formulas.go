package rules

import (
	"fmt"
	"math"
	"strings"
)

// Params holds the tunable constants of the defense and derived-attribute
// formulas. Historical rule revisions disagree on several of these, so they are
// configuration rather than code.
type Params struct {
	// DefenseBase is added to half skill for parry and block.
	DefenseBase int `mapstructure:"defense_base" yaml:"defense_base"`
	// ParryDivisor divides skill level in the parry formula.
	ParryDivisor int `mapstructure:"parry_divisor" yaml:"parry_divisor"`
	// BlockDivisor divides skill level in the block formula.
	BlockDivisor int `mapstructure:"block_divisor" yaml:"block_divisor"`
	// DodgeBase is added to Move for dodge.
	DodgeBase int `mapstructure:"dodge_base" yaml:"dodge_base"`
	// HPBase is the attribute hit points are rolled on top of.
	HPBase Attribute `mapstructure:"hp_base" yaml:"hp_base"`
	// FPBase is the attribute fatigue points are rolled on top of.
	FPBase Attribute `mapstructure:"fp_base" yaml:"fp_base"`
}

// DefaultParams returns the current rule revision: parry and block use
// floor(level/2)+3, dodge is Move+3, HP derives from HT and FP from ST.
func DefaultParams() Params {
	return Params{
		DefenseBase:  3,
		ParryDivisor: 2,
		BlockDivisor: 2,
		DodgeBase:    3,
		HPBase:       HT,
		FPBase:       ST,
	}
}

// Validate checks the divisors are positive and the base attributes are core attributes.
//
// Postcondition: Returns nil or one error naming every violation.
func (p Params) Validate() error {
	var errs []string
	if p.ParryDivisor < 1 {
		errs = append(errs, fmt.Sprintf("rules.parry_divisor must be >= 1, got %d", p.ParryDivisor))
	}
	if p.BlockDivisor < 1 {
		errs = append(errs, fmt.Sprintf("rules.block_divisor must be >= 1, got %d", p.BlockDivisor))
	}
	if !p.HPBase.IsBase() {
		errs = append(errs, fmt.Sprintf("rules.hp_base must be one of [st, dx, iq, ht], got %q", p.HPBase))
	}
	if !p.FPBase.IsBase() {
		errs = append(errs, fmt.Sprintf("rules.fp_base must be one of [st, dx, iq, ht], got %q", p.FPBase))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Parry computes floor(level/ParryDivisor) + DefenseBase + code.Numeric + shieldBonus,
// keeping the code's letter suffix.
func (p Params) Parry(level int, code ParryCode, shieldBonus int) ParryCode {
	return ParryCode{
		Numeric: FloorDiv(level, p.ParryDivisor) + p.DefenseBase + code.Numeric + shieldBonus,
		Letter:  code.Letter,
	}
}

// Block computes floor(level/BlockDivisor) + DefenseBase + defenseBonus + shieldAttr.
//
// Precondition: defenseBonus > 0; callers omit block entirely for unusable shields.
func (p Params) Block(level, defenseBonus, shieldAttr int) int {
	return FloorDiv(level, p.BlockDivisor) + p.DefenseBase + defenseBonus + shieldAttr
}

// Dodge computes Move + DodgeBase + shieldBonus.
func (p Params) Dodge(move, shieldBonus int) int {
	return move + p.DodgeBase + shieldBonus
}

// SpeedFor computes (dx+ht)/4 plus a rolled adjustment, rounded to the nearest quarter.
func SpeedFor(dx, ht int, roll float64) float64 {
	return RoundToQuarter(float64(dx+ht)/4 + roll)
}

// MoveFor computes floor(speed) plus a rolled adjustment.
func MoveFor(speed float64, roll int) int {
	return int(math.Floor(speed)) + roll
}

// RoundToQuarter rounds v to the nearest 0.25, halves rounding up.
func RoundToQuarter(v float64) float64 {
	return math.Floor(v*4+0.5) / 4
}

// FloorDiv divides rounding toward negative infinity, so a level of -3 halves to -2.
//
// Precondition: d > 0.
func FloorDiv(n, d int) int {
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}
