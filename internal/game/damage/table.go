// Package damage derives weapon damage from strength: the GURPS thrust/swing
// table, weapon base-damage tags ("sw+2"), and the damage-type suffix of a
// damage description ("1d+2 cut").
package damage

import (
	"sort"

	"github.com/cory-johannsen/mookgen/internal/game/dice"
)

// BaseType is one of the two strength-derived damage categories.
type BaseType string

const (
	// Thrust is "thr" damage.
	Thrust BaseType = "thr"
	// Swing is "sw" damage.
	Swing BaseType = "sw"
)

// BaseDamage is a table row: the thrust and swing dice for one ST value.
type BaseDamage struct {
	Thrust dice.Expression
	Swing  dice.Expression
}

// For returns the dice of the given base type.
//
// Postcondition: unknown base types return the zero Expression.
func (b BaseDamage) For(base BaseType) dice.Expression {
	switch base {
	case Thrust:
		return b.Thrust
	case Swing:
		return b.Swing
	}
	return dice.Expression{}
}

// FallbackStrength is the row used for strengths the table does not list.
const FallbackStrength = 10

func row(thr, sw string) BaseDamage {
	return BaseDamage{Thrust: dice.MustParseExpression(thr), Swing: dice.MustParseExpression(sw)}
}

var table = map[int]BaseDamage{
	1:   row("1d-6", "1d-5"),
	2:   row("1d-6", "1d-5"),
	3:   row("1d-5", "1d-4"),
	4:   row("1d-5", "1d-4"),
	5:   row("1d-4", "1d-3"),
	6:   row("1d-4", "1d-3"),
	7:   row("1d-3", "1d-2"),
	8:   row("1d-3", "1d-2"),
	9:   row("1d-2", "1d-1"),
	10:  row("1d-2", "1d"),
	11:  row("1d-1", "1d+1"),
	12:  row("1d-1", "1d+2"),
	13:  row("1d", "2d-1"),
	14:  row("1d", "2d"),
	15:  row("1d+1", "2d+1"),
	16:  row("1d+1", "2d+2"),
	17:  row("1d+2", "3d-1"),
	18:  row("1d+2", "3d"),
	19:  row("2d-1", "3d+1"),
	20:  row("2d-1", "3d+2"),
	21:  row("2d", "4d-1"),
	22:  row("2d", "4d"),
	23:  row("2d+1", "4d+1"),
	24:  row("2d+1", "4d+2"),
	25:  row("2d+2", "5d-1"),
	26:  row("2d+2", "5d"),
	27:  row("3d-1", "5d+1"),
	28:  row("3d-1", "5d+1"),
	29:  row("3d", "5d+2"),
	30:  row("3d", "5d+2"),
	31:  row("3d+1", "6d-1"),
	32:  row("3d+1", "6d-1"),
	33:  row("3d+2", "6d"),
	34:  row("3d+2", "6d"),
	35:  row("4d-1", "6d+1"),
	36:  row("4d-1", "6d+1"),
	37:  row("4d", "6d+2"),
	38:  row("4d", "6d+2"),
	39:  row("4d+1", "7d-1"),
	40:  row("4d+1", "7d-1"),
	45:  row("5d", "7d+1"),
	50:  row("5d+2", "8d-1"),
	55:  row("6d", "8d+1"),
	60:  row("7d-1", "9d"),
	65:  row("7d+1", "9d+2"),
	70:  row("8d", "10d"),
	75:  row("8d+2", "10d+2"),
	80:  row("9d", "11d"),
	85:  row("9d+2", "11d+2"),
	90:  row("10d", "12d"),
	95:  row("10d+2", "12d+2"),
	100: row("11d", "13d"),
}

// Lookup returns the thrust/swing row for st.
//
// Postcondition: strengths absent from the table return the ST 10 row.
func Lookup(st int) BaseDamage {
	if b, ok := table[st]; ok {
		return b
	}
	return table[FallbackStrength]
}

// TableStrengths returns every ST value the table lists, ascending.
func TableStrengths() []int {
	keys := make([]int, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
