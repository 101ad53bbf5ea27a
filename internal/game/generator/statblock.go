package generator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/mookgen/internal/game/npc"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

// Statblock is one finished character.
type Statblock struct {
	ID          uuid.UUID        `json:"id"`
	TemplateID  string           `json:"template_id"`
	Name        string           `json:"name"`
	CreatedAt   time.Time        `json:"created_at"`
	Attributes  AttributeMap     `json:"attributes"`
	ShieldBonus int              `json:"shield_bonus"`
	Melee       []string         `json:"melee"`
	Ranged      []string         `json:"ranged"`
	Skills      []string         `json:"skills"`
	Spells      []string         `json:"spells"`
	Traits      []string         `json:"traits"`
	Coins       npc.Distribution `json:"coins"`
	Notes       []string         `json:"notes,omitempty"`
}

// attributeRows groups the sheet header the way the character sheet lays it out.
var attributeRows = [][]rules.Attribute{
	{rules.ST, rules.DX, rules.IQ, rules.HT},
	{rules.HP, rules.Will, rules.Per, rules.FP},
	{rules.Speed, rules.Move, rules.Dodge, rules.Parry},
	{rules.SM, rules.DR, rules.Shield},
}

// Render prints the statblock as a plain-text sheet.
func (s *Statblock) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n", s.Name, s.ID)
	for _, row := range attributeRows {
		var cells []string
		for _, a := range row {
			if v, ok := s.Attributes.Get(a); ok {
				cells = append(cells, a.Label()+" "+strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		if len(cells) > 0 {
			b.WriteString(strings.Join(cells, "; "))
			b.WriteByte('\n')
		}
	}
	section(&b, "Melee", s.Melee)
	section(&b, "Ranged", s.Ranged)
	section(&b, "Skills", s.Skills)
	section(&b, "Spells", s.Spells)
	section(&b, "Traits", s.Traits)
	if _, ok := s.Attributes.Get(rules.Coins); ok {
		section(&b, "Coins", s.Coins.Lines())
	}
	section(&b, "Notes", s.Notes)
	return b.String()
}

func section(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString(":\n")
	for _, l := range lines {
		b.WriteString("  ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
}
