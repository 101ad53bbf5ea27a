package rules

import "strings"

// difficultyModifiers maps a skill difficulty letter code to its level modifier.
var difficultyModifiers = map[string]int{
	"e":  0,
	"a":  -1,
	"h":  -2,
	"vh": -3,
}

// Difficulty is a parsed skill difficulty code such as "iq/a".
//
// Attribute is empty when the code did not parse; Modifier is then 0.
type Difficulty struct {
	Attribute Attribute
	Modifier  int
}

// OK reports whether the code named a base attribute.
func (d Difficulty) OK() bool {
	return d.Attribute != ""
}

// ParseDifficulty parses "<attr>/<code>" where attr is one of st, dx, iq, ht and
// code is one of e, a, h, vh. Matching is case-insensitive.
//
// Postcondition: any other shape returns the zero Difficulty.
func ParseDifficulty(code string) Difficulty {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(code)), "/")
	if len(parts) != 2 {
		return Difficulty{}
	}
	attr := Attribute(strings.TrimSpace(parts[0]))
	if !attr.IsBase() {
		return Difficulty{}
	}
	mod, ok := difficultyModifiers[strings.TrimSpace(parts[1])]
	if !ok {
		return Difficulty{}
	}
	return Difficulty{Attribute: attr, Modifier: mod}
}
