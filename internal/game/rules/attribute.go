// Package rules holds the GURPS vocabulary shared by the generator: attribute
// names, the small string grammars found in character data (difficulty codes,
// weapon defaults, parry codes) and the active-defense formulas.
package rules

import "strings"

// Attribute names one entry of a generated character's attribute set.
type Attribute string

const (
	ST     Attribute = "st"
	DX     Attribute = "dx"
	IQ     Attribute = "iq"
	HT     Attribute = "ht"
	HP     Attribute = "hp"
	Will   Attribute = "will"
	Per    Attribute = "per"
	FP     Attribute = "fp"
	Parry  Attribute = "parry"
	Speed  Attribute = "speed"
	Move   Attribute = "move"
	SM     Attribute = "sm"
	DR     Attribute = "dr"
	Dodge  Attribute = "dodge"
	Shield Attribute = "shield"
	Coins  Attribute = "coins"
)

// AllAttributes lists the fixed attribute set in display order.
var AllAttributes = []Attribute{
	ST, DX, IQ, HT, HP, Will, Per, FP, Parry, Speed, Move, SM, DR, Dodge, Shield, Coins,
}

// BaseAttributes are the four attributes a skill or weapon default may key off.
var BaseAttributes = []Attribute{ST, DX, IQ, HT}

// ParseAttribute normalises s and reports whether it names a known attribute.
func ParseAttribute(s string) (Attribute, bool) {
	a := Attribute(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllAttributes {
		if a == known {
			return a, true
		}
	}
	return "", false
}

// IsBase reports whether a is one of st, dx, iq or ht.
func (a Attribute) IsBase() bool {
	switch a {
	case ST, DX, IQ, HT:
		return true
	}
	return false
}

// Label returns the upper-case sheet label, e.g. "ST".
func (a Attribute) Label() string {
	switch a {
	case Will, Per, Speed, Move, Dodge, Parry, Shield, Coins:
		return strings.ToUpper(string(a[:1])) + string(a[1:])
	}
	return strings.ToUpper(string(a))
}
