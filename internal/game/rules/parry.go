package rules

import (
	"regexp"
	"strconv"
	"strings"
)

var parryCodePattern = regexp.MustCompile(`^([+-]?\d*)([A-Za-z]?)$`)

// ParryCode is a weapon's parry entry split into its numeric bonus and its
// letter suffix ("U" unbalanced, "F" fencing).
type ParryCode struct {
	Numeric int
	Letter  string
}

// String renders the code as "<numeric><letter>".
func (p ParryCode) String() string {
	return strconv.Itoa(p.Numeric) + p.Letter
}

// ParseParryCode parses "<digits><letter>", "<letter>" or "<digits>". The
// numeric part may carry a sign, as in "-1" or "-2U".
//
// Postcondition: unmatched input (including "") returns the zero ParryCode.
func ParseParryCode(s string) ParryCode {
	m := parryCodePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || (m[1] == "" && m[2] == "") {
		return ParryCode{}
	}
	n := 0
	if m[1] != "" {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return ParryCode{}
		}
		n = v
	}
	return ParryCode{Numeric: n, Letter: m[2]}
}
