package rules

import "strings"

// Default is one entry of a weapon's default list. Attribute is either a base
// attribute ("dx") or the name of another skill ("Broadsword").
type Default struct {
	Attribute string `yaml:"attribute" json:"attribute"`
	Modifier  int    `yaml:"modifier" json:"modifier"`
}

// FallbackDefault is used when a weapon has no attribute-based default.
var FallbackDefault = Default{Attribute: string(DX), Modifier: -4}

// Attr returns the default's attribute, or "" when it is skill-based.
func (d Default) Attr() Attribute {
	a := Attribute(strings.ToLower(strings.TrimSpace(d.Attribute)))
	if !a.IsBase() {
		return ""
	}
	return a
}

// BestDefault selects the attribute-based default with the largest modifier.
// Skill-based entries are ignored; ties go to the first entry seen.
//
// Postcondition: the returned Attribute is always a lower-case base attribute;
// FallbackDefault is returned when no attribute-based entry exists.
func BestDefault(defaults []Default) Default {
	best := Default{}
	found := false
	for _, d := range defaults {
		attr := d.Attr()
		if attr == "" {
			continue
		}
		if !found || d.Modifier > best.Modifier {
			best = Default{Attribute: string(attr), Modifier: d.Modifier}
			found = true
		}
	}
	if !found {
		return FallbackDefault
	}
	return best
}
