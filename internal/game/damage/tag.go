package damage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var tagPattern = regexp.MustCompile(`^(sw|thr)([+-]\d+)?$`)

// Tag is a parsed weapon base-damage tag such as "sw+2".
type Tag struct {
	Base     BaseType
	Modifier int
	// OK is false when the input did not parse; Base and Modifier are then zero.
	OK bool
}

// String renders the tag back into "sw+2" form, or "" when the tag is not OK.
func (t Tag) String() string {
	if !t.OK {
		return ""
	}
	if t.Modifier == 0 {
		return string(t.Base)
	}
	return fmt.Sprintf("%s%+d", t.Base, t.Modifier)
}

// ParseTag splits "sw", "sw+2" or "thr-1" into base type and modifier.
// Matching is case-insensitive and ignores surrounding whitespace.
//
// Postcondition: malformed input returns the zero Tag with OK false.
func ParseTag(s string) Tag {
	m := tagPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return Tag{}
	}
	t := Tag{Base: BaseType(m[1]), OK: true}
	if m[2] != "" {
		// The pattern guarantees a signed integer.
		t.Modifier, _ = strconv.Atoi(m[2])
	}
	return t
}
