package generator

import (
	"github.com/cory-johannsen/mookgen/internal/game/dice"
	"github.com/cory-johannsen/mookgen/internal/game/npc"
)

// Select returns every mandatory item followed by pool items drawn uniformly
// without replacement until quota is reached or the pool runs out.
//
// Postcondition: every mandatory item is present even when there are more
// than quota; no input element is returned twice; items is not modified.
func Select[T npc.CatalogItem](items []T, quota int, src dice.Source) []T {
	mandatory, pool := partition(items)
	return fill(mandatory, pool, quota, src)
}

// MeleeSelection is the outcome of melee selection.
type MeleeSelection struct {
	Weapons []npc.MeleeWeapon
	// ShieldBonus is the defense bonus of the guaranteed shield, 0 if none.
	ShieldBonus int
}

// SelectMelee selects melee weapons like Select, but first settles the
// character's shield. A mandatory shield is that shield, and its bonus is the
// active bonus (0 when it cannot block). Otherwise one shield able to block is
// drawn from the pool when the catalog has one. Once a shield is settled, other
// optional shields leave the pool.
func SelectMelee(weapons []npc.MeleeWeapon, quota int, src dice.Source) MeleeSelection {
	mandatory, pool := partition(weapons)
	sel := MeleeSelection{Weapons: mandatory}

	guaranteed := false
	for _, w := range mandatory {
		if !w.Shield {
			continue
		}
		guaranteed = true
		if w.UsableForBlock() {
			sel.ShieldBonus = w.DB()
			break
		}
	}
	if !guaranteed {
		var usable []int
		for i, w := range pool {
			if w.UsableForBlock() {
				usable = append(usable, i)
			}
		}
		if len(usable) > 0 {
			pick := usable[src.Intn(len(usable))]
			sel.Weapons = append(sel.Weapons, pool[pick])
			sel.ShieldBonus = pool[pick].DB()
			guaranteed = true
		}
	}
	if guaranteed {
		kept := pool[:0]
		for _, w := range pool {
			if !w.Shield {
				kept = append(kept, w)
			}
		}
		pool = kept
	}

	sel.Weapons = fill(sel.Weapons, pool, quota, src)
	return sel
}

func partition[T npc.CatalogItem](items []T) (mandatory, pool []T) {
	mandatory = make([]T, 0, len(items))
	for _, it := range items {
		if it.IsMandatory() {
			mandatory = append(mandatory, it)
		} else {
			pool = append(pool, it)
		}
	}
	return mandatory, pool
}

// fill draws from pool by swap-remove, so pool must be owned by the caller.
func fill[T any](selected, pool []T, quota int, src dice.Source) []T {
	for len(selected) < quota && len(pool) > 0 {
		i := src.Intn(len(pool))
		selected = append(selected, pool[i])
		last := len(pool) - 1
		pool[i] = pool[last]
		pool = pool[:last]
	}
	return selected
}
