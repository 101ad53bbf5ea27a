package npc

import (
	"strings"

	"github.com/cory-johannsen/mookgen/internal/game/damage"
)

var thrustKeywords = []string{"thrust", "stab", "pierce", "point"}

// InferBaseDamageTag classifies an attack as thrust or swing from its usage text.
//
// Postcondition: returns damage.Thrust when usage mentions thrust, stab, pierce
// or point (case-insensitive); damage.Swing otherwise, including for "".
func InferBaseDamageTag(usage string) damage.BaseType {
	u := strings.ToLower(usage)
	for _, kw := range thrustKeywords {
		if strings.Contains(u, kw) {
			return damage.Thrust
		}
	}
	return damage.Swing
}
