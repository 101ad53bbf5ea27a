package damage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/mookgen/internal/game/dice"
)

var (
	// ErrTypeNotFound is returned when no damage-type token occurs in the damage text.
	ErrTypeNotFound = errors.New("damage type not found")
	// ErrMalformedTag is returned when the base-damage tag is not "sw"/"thr" with an optional modifier.
	ErrMalformedTag = errors.New("malformed base damage tag")
)

// Result is the final damage of one attack.
type Result struct {
	Dice dice.Expression
	Type Type
	// Base is the strength-derived category the dice came from.
	Base BaseType
}

// String renders the result as "<dice> <type>", e.g. "1d+2 cut".
func (r Result) String() string {
	d := r.Dice.String()
	if d == "" {
		d = "0"
	}
	return d + " " + string(r.Type)
}

// Resolve computes the damage of an attack for a wielder of strength st.
// The damage type is extracted from text; the dice are the table's thrust or
// swing entry for st combined with the tag's modifier.
//
// Postcondition: on success Result.Dice == Lookup(st).For(tag.Base) + tag.Modifier.
// Errors wrap ErrTypeNotFound or ErrMalformedTag.
func Resolve(st int, tag string, text string) (Result, error) {
	typ, ok := ExtractType(text)
	if !ok {
		return Result{}, fmt.Errorf("%w in %q", ErrTypeNotFound, strings.TrimSpace(text))
	}
	parsed := ParseTag(tag)
	if !parsed.OK {
		return Result{}, fmt.Errorf("%w: %q", ErrMalformedTag, tag)
	}
	base := Lookup(st).For(parsed.Base)
	return Result{
		Dice: base.Add(dice.Expression{Modifier: parsed.Modifier}),
		Type: typ,
		Base: parsed.Base,
	}, nil
}
