package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	dicePattern     = regexp.MustCompile(`^(\d+)d([+-]\d+)?$`)
	modifierPattern = regexp.MustCompile(`^[+-]\d+$`)
	numberPattern   = regexp.MustCompile(`^\d+$`)
)

// Expression is a GURPS damage expression: a count of d6 plus a flat modifier.
// The zero Expression means "no damage".
type Expression struct {
	Dice     int
	Modifier int
}

// ParseExpressionStrict parses "<N>d[+|-]<M>", "[+|-]<M>" or "<N>".
//
// Postcondition: Returns the parsed Expression, or an error for any other input
// including the empty string.
func ParseExpressionStrict(s string) (Expression, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	if m := dicePattern.FindStringSubmatch(str); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", s, err)
		}
		mod := 0
		if m[2] != "" {
			mod, err = strconv.Atoi(m[2])
			if err != nil {
				return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", s, err)
			}
		}
		return Expression{Dice: n, Modifier: mod}, nil
	}
	if modifierPattern.MatchString(str) || numberPattern.MatchString(str) {
		mod, err := strconv.Atoi(str)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", s, err)
		}
		return Expression{Modifier: mod}, nil
	}
	return Expression{}, fmt.Errorf("dice: unrecognised expression %q", s)
}

// ParseExpression is the lenient form of ParseExpressionStrict.
//
// Postcondition: unparsable or empty input yields the zero Expression.
func ParseExpression(s string) Expression {
	e, err := ParseExpressionStrict(s)
	if err != nil {
		return Expression{}
	}
	return e
}

// MustParseExpression parses s and panics on error. Useful for package-level tables.
//
// Precondition: s must be a valid expression.
func MustParseExpression(s string) Expression {
	e, err := ParseExpressionStrict(s)
	if err != nil {
		panic("dice: MustParseExpression failed for expression " + s + ": " + err.Error())
	}
	return e
}

// IsZero reports whether e has neither dice nor modifier.
func (e Expression) IsZero() bool {
	return e.Dice == 0 && e.Modifier == 0
}

// Add returns the pointwise sum of e and o.
func (e Expression) Add(o Expression) Expression {
	return Expression{Dice: e.Dice + o.Dice, Modifier: e.Modifier + o.Modifier}
}

// String formats e in GURPS notation: "" for zero, "+2"/"-1" without dice,
// "3d" without modifier, otherwise "3d+1" or "3d-1".
func (e Expression) String() string {
	switch {
	case e.IsZero():
		return ""
	case e.Dice == 0:
		return fmt.Sprintf("%+d", e.Modifier)
	case e.Modifier == 0:
		return fmt.Sprintf("%dd", e.Dice)
	default:
		return fmt.Sprintf("%dd%+d", e.Dice, e.Modifier)
	}
}

// Combine parses both expressions leniently, adds them and formats the result.
//
// Postcondition: Combine is commutative and associative over valid expressions.
func Combine(a, b string) string {
	return ParseExpression(a).Add(ParseExpression(b)).String()
}
