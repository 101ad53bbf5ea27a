package npc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Denomination is one coin type a template's characters may carry.
type Denomination struct {
	Name       string  `yaml:"name" json:"name"`
	UnitCost   float64 `yaml:"cost" json:"cost"`
	UnitWeight float64 `yaml:"weight" json:"weight"`
	UnitLabel  string  `yaml:"unit" json:"unit"`
}

// DefaultCurrency returns the standard gold/silver/copper set.
func DefaultCurrency() []Denomination {
	return []Denomination{
		{Name: "gold", UnitCost: 80, UnitWeight: 0.04, UnitLabel: "lbs"},
		{Name: "silver", UnitCost: 4, UnitWeight: 0.04, UnitLabel: "lbs"},
		{Name: "copper", UnitCost: 1, UnitWeight: 0.008, UnitLabel: "lbs"},
	}
}

// CoinRoller is the randomness DistributeCurrency needs. *dice.Roller satisfies it.
type CoinRoller interface {
	IntRange(min, max int) int
	Chance(p float64) bool
}

// skipChance is the probability that a non-final denomination is left out.
const skipChance = 0.3

// maxStack bounds the count drawn for a non-final denomination.
const maxStack = 9

// CoinStack is one denomination's share of a distribution.
type CoinStack struct {
	Denomination Denomination `json:"denomination"`
	Quantity     int          `json:"quantity"`
	TotalCost    float64      `json:"total_cost"`
	TotalWeight  float64      `json:"total_weight"`
}

var titleCaser = cases.Title(language.English)

// String renders the stack as "Gold Coins; 3; $240; 0.12 lbs".
func (c CoinStack) String() string {
	return fmt.Sprintf("%s Coins; %d; $%s; %.2f %s",
		titleCaser.String(c.Denomination.Name),
		c.Quantity,
		strconv.FormatFloat(c.TotalCost, 'f', -1, 64),
		c.TotalWeight,
		c.Denomination.UnitLabel,
	)
}

// Distribution is the result of DistributeCurrency. An empty Distribution is
// the explicit "no coins" result.
type Distribution []CoinStack

// IsEmpty reports whether the distribution holds no coins.
func (d Distribution) IsEmpty() bool { return len(d) == 0 }

// Value returns the summed cost of every stack.
func (d Distribution) Value() float64 {
	var total float64
	for _, s := range d {
		total += s.TotalCost
	}
	return total
}

// Lines renders one line per stack, or the single line "No coins".
func (d Distribution) Lines() []string {
	if d.IsEmpty() {
		return []string{"No coins"}
	}
	out := make([]string, len(d))
	for i, s := range d {
		out[i] = s.String()
	}
	return out
}

// String joins Lines with newlines.
func (d Distribution) String() string {
	return strings.Join(d.Lines(), "\n")
}

// DistributeCurrency spreads target across denoms, most valuable first. Every
// denomination but the cheapest is skipped with 30% probability or otherwise
// receives a random count of at most 9 that the remaining value can afford; the
// cheapest receives as many coins as the remainder affords.
//
// Precondition: r must be non-nil.
// Postcondition: Value() <= target. target <= 0, an empty denomination list,
// or a list with no positive unit cost yields an empty Distribution.
func DistributeCurrency(target float64, denoms []Denomination, r CoinRoller) Distribution {
	if target <= 0 {
		return nil
	}
	sorted := make([]Denomination, 0, len(denoms))
	for _, d := range denoms {
		if d.UnitCost > 0 {
			sorted = append(sorted, d)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].UnitCost > sorted[j].UnitCost })

	var out Distribution
	remaining := target
	for i, d := range sorted {
		if remaining <= 0 {
			break
		}
		affordable := int(remaining / d.UnitCost)
		qty := 0
		if i == len(sorted)-1 {
			qty = affordable
		} else if affordable > 0 && !r.Chance(skipChance) {
			qty = r.IntRange(0, min(affordable, maxStack))
		}
		if qty <= 0 {
			continue
		}
		cost := float64(qty) * d.UnitCost
		remaining -= cost
		out = append(out, CoinStack{
			Denomination: d,
			Quantity:     qty,
			TotalCost:    cost,
			TotalWeight:  float64(qty) * d.UnitWeight,
		})
	}
	return out
}
