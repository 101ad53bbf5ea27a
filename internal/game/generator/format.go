package generator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mookgen/internal/game/damage"
	"github.com/cory-johannsen/mookgen/internal/game/npc"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

// FormatMelee renders one line per attack of w at the given level:
//
//	Name(level) <dice> <type> [reach r] [usage u] [parry p] [st s] [block b]
//
// Shields show block (when able to block) instead of parry. An attack whose
// damage cannot be resolved renders as an #ERROR line; the other attacks are
// unaffected.
func FormatMelee(gc *GenerationContext, w npc.MeleeWeapon, level int) []string {
	head := fmt.Sprintf("%s(%d)", w.Name, level)
	if len(w.Attacks) == 0 {
		gc.Logger.Error("melee weapon has no attacks", zap.String("weapon", w.Name))
		return []string{head + " #ERROR - No attack data"}
	}
	lines := make([]string, 0, len(w.Attacks))
	for _, a := range w.Attacks {
		dmg, errLine := resolveDamage(gc, w.Name, a.BaseDamageTag, a.Damage)
		if errLine != "" {
			lines = append(lines, head+" "+errLine)
			continue
		}
		fields := []string{head, dmg.String()}
		fields = appendField(fields, "reach", formatReach(a.Reach))
		fields = appendField(fields, "usage", formatUsage(a.Usage))
		if w.Shield {
			fields = appendField(fields, "st", a.Strength)
			if w.UsableForBlock() {
				block := gc.Params.Block(level, w.DB(), gc.shieldAttribute())
				fields = appendField(fields, "block", strconv.Itoa(block))
			}
		} else {
			fields = appendField(fields, "parry", formatParry(gc, level, a.Parry))
			fields = appendField(fields, "st", a.Strength)
			fields = appendField(fields, "block", strings.TrimSpace(a.Block))
		}
		lines = append(lines, strings.Join(fields, " "))
	}
	return lines
}

// FormatRanged renders a ranged weapon at the given level:
//
//	Name(level) <dice> <type> [acc a] [rof r] [rcl c] [usage u] [range r] [shots s] [bulk b] [st s]
func FormatRanged(gc *GenerationContext, w npc.RangedWeapon, level int) string {
	head := fmt.Sprintf("%s(%d)", w.Name, level)
	dmg, errLine := resolveDamage(gc, w.Name, w.BaseDamageTag, w.Damage)
	if errLine != "" {
		return head + " " + errLine
	}
	fields := []string{head, dmg.String()}
	fields = appendField(fields, "acc", w.Accuracy)
	fields = appendField(fields, "rof", w.RateOfFire)
	fields = appendField(fields, "rcl", w.Recoil)
	fields = appendField(fields, "usage", formatUsage(w.Usage))
	fields = appendField(fields, "range", w.Range)
	fields = appendField(fields, "shots", w.Shots)
	fields = appendField(fields, "bulk", w.Bulk)
	fields = appendField(fields, "st", w.Strength)
	return strings.Join(fields, " ")
}

// FormatSkill renders a skill or spell as "Name-level".
func FormatSkill(name string, level int) string {
	return name + "-" + strconv.Itoa(level)
}

// FormatTrait renders a trait as "Name Value", or "Name" without a value.
func FormatTrait(t npc.Trait) string {
	if v := strings.TrimSpace(t.Value); v != "" {
		return t.Name + " " + v
	}
	return t.Name
}

// resolveDamage returns the resolved damage, or the #ERROR text to print in
// place of the attack's fields.
func resolveDamage(gc *GenerationContext, weapon, tag, text string) (damage.Result, string) {
	if strings.TrimSpace(text) == "" {
		gc.Logger.Error("attack has no damage data", zap.String("weapon", weapon))
		return damage.Result{}, "#ERROR - No damage data"
	}
	res, err := damage.Resolve(gc.strength(), tag, text)
	switch {
	case err == nil:
		return res, ""
	case errors.Is(err, damage.ErrTypeNotFound):
		gc.Logger.Error("damage type not found",
			zap.String("weapon", weapon),
			zap.String("damage", text),
		)
		return damage.Result{}, fmt.Sprintf("#ERROR - Damage type not found in %q", text)
	default:
		gc.Logger.Error("damage not computable",
			zap.String("weapon", weapon),
			zap.String("tag", tag),
			zap.Error(err),
		)
		return damage.Result{}, fmt.Sprintf("#ERROR - Malformed damage tag %q", tag)
	}
}

// formatParry applies the parry formula to a weapon's parry code. "No" (the
// weapon cannot parry) is printed as is.
func formatParry(gc *GenerationContext, level int, code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if strings.EqualFold(code, "no") {
		return "No"
	}
	return gc.Params.Parry(level, rules.ParseParryCode(code), gc.ActiveShieldBonus).String()
}

// formatReach turns "1-2" into "1,2".
func formatReach(reach string) string {
	return strings.ReplaceAll(strings.TrimSpace(reach), "-", ",")
}

// formatUsage turns "Shield Bash" into "shield-bash".
func formatUsage(usage string) string {
	return strings.Join(strings.Fields(strings.ToLower(usage)), "-")
}

func appendField(fields []string, label, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fields
	}
	return append(fields, label+" "+value)
}
