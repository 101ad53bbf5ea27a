package damage

import "strings"

// Type is a canonical GURPS damage-type tag.
type Type string

const (
	PiercingHuge  Type = "pi++"
	PiercingLarge Type = "pi+"
	PiercingSmall Type = "pi-"
	Piercing      Type = "pi"
	Cutting       Type = "cut"
	Impaling      Type = "imp"
	Crushing      Type = "cr"
	Burning       Type = "burn"
	Corrosion     Type = "cor"
	Fatigue       Type = "fat"
	Toxic         Type = "tox"
	Special       Type = "spec"
)

// typesLongestFirst is ordered so that "pi++" is tried before "pi+" before "pi".
var typesLongestFirst = []Type{
	PiercingHuge, PiercingLarge, PiercingSmall, Piercing,
	Cutting, Impaling, Crushing,
	Burning, Corrosion, Fatigue, Toxic,
	Special,
}

// Types returns the recognised damage types in match order.
func Types() []Type {
	out := make([]Type, len(typesLongestFirst))
	copy(out, typesLongestFirst)
	return out
}

// ExtractType finds the damage type in a damage description such as "1d+2 cut".
// A token anchored at the end of the text wins; otherwise the first token found
// anywhere as a separate word is returned.
//
// Postcondition: ok is false when no token matches. There is no default type.
func ExtractType(text string) (Type, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return "", false
	}
	for _, t := range typesLongestFirst {
		tok := string(t)
		if strings.HasSuffix(s, tok) && wordStart(s, len(s)-len(tok)) {
			return t, true
		}
	}
	for _, t := range typesLongestFirst {
		tok := string(t)
		for from := 0; from < len(s); {
			i := strings.Index(s[from:], tok)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(tok)
			if wordStart(s, start) && tokenEnd(s, end) {
				return t, true
			}
			from = start + 1
		}
	}
	return "", false
}

// wordStart reports whether a token beginning at i is not glued to a preceding word.
func wordStart(s string, i int) bool {
	return i == 0 || !isWordByte(s[i-1])
}

// tokenEnd reports whether a token ending at i is followed by the end of the
// text or by a separator. A following '+' or '-' would extend a "pi" token.
func tokenEnd(s string, i int) bool {
	if i == len(s) {
		return true
	}
	c := s[i]
	return !isWordByte(c) && c != '+' && c != '-'
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
