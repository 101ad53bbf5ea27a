package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mookgen/internal/game/dice"
	"github.com/cory-johannsen/mookgen/internal/game/npc"
	"github.com/cory-johannsen/mookgen/internal/game/rules"
)

// Generator produces statblocks from templates. It holds no per-character
// state; a Generator must not be shared between goroutines because its Source
// is not safe for concurrent use.
type Generator struct {
	cfg    GenerationConfig
	params rules.Params
	src    dice.Source
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Generator.
//
// Precondition: src and logger must be non-nil.
// Postcondition: Returns an error if cfg or params fail validation.
func New(cfg GenerationConfig, params rules.Params, src dice.Source, logger *zap.Logger) (*Generator, error) {
	if src == nil {
		return nil, errors.New("generator: source must not be nil")
	}
	if logger == nil {
		return nil, errors.New("generator: logger must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("rule params: %w", err)
	}
	return &Generator{cfg: cfg, params: params, src: src, logger: logger, now: time.Now}, nil
}

// Config returns the generation configuration.
func (g *Generator) Config() GenerationConfig { return g.cfg }

// Generate produces one character from tmpl.
//
// Precondition: tmpl must be non-nil.
// Postcondition: Returns a complete Statblock, or an error if tmpl is invalid.
// Per-line damage failures are rendered into the statblock, not returned.
func (g *Generator) Generate(tmpl *npc.Template) (*Statblock, error) {
	if tmpl == nil {
		return nil, errors.New("generator: template must not be nil")
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	logger := g.logger.With(
		zap.String("statblock_id", id.String()),
		zap.String("template", tmpl.ID),
	)
	roller := dice.NewLoggedRoller(g.src, logger)
	gc := &GenerationContext{
		Attributes: CalculateAttributes(tmpl, g.cfg, g.params, roller),
		Roller:     roller,
		Params:     g.params,
		Logger:     logger,
	}

	meleeQuota := g.cfg.Quota(Melee)
	melee := SelectMelee(tmpl.Melee, meleeQuota.Quantity, roller)
	gc.ActiveShieldBonus = melee.ShieldBonus
	final := gc.Attributes.Finalize(gc.ActiveShieldBonus)

	sb := &Statblock{
		ID:          id,
		TemplateID:  tmpl.ID,
		Name:        tmpl.Name,
		CreatedAt:   g.now().UTC(),
		Attributes:  final.Values(),
		ShieldBonus: final.ShieldBonus(),
		Notes:       tmpl.Notes,
	}

	for _, w := range melee.Weapons {
		sb.Melee = append(sb.Melee, FormatMelee(gc, w, ResolveLevel(gc, w, meleeQuota))...)
	}

	rangedQuota := g.cfg.Quota(Ranged)
	for _, w := range Select(tmpl.Ranged, rangedQuota.Quantity, roller) {
		sb.Ranged = append(sb.Ranged, FormatRanged(gc, w, ResolveLevel(gc, w, rangedQuota)))
	}

	skillQuota := g.cfg.Quota(Skills)
	for _, s := range Select(tmpl.Skills, skillQuota.Quantity, roller) {
		sb.Skills = append(sb.Skills, FormatSkill(s.Name, ResolveLevel(gc, s, skillQuota)))
	}

	spellQuota := g.cfg.Quota(Spells)
	for _, s := range Select(tmpl.Spells, spellQuota.Quantity, roller) {
		sb.Spells = append(sb.Spells, FormatSkill(s.Name, ResolveLevel(gc, s, spellQuota)))
	}

	for _, t := range Select(tmpl.Traits, g.cfg.TraitsQuantity, roller) {
		sb.Traits = append(sb.Traits, FormatTrait(t))
	}

	if coins, ok := final.Get(rules.Coins); ok {
		sb.Coins = npc.DistributeCurrency(coins, tmpl.Denominations(), roller)
	}

	logger.Info("statblock generated",
		zap.Int("melee_lines", len(sb.Melee)),
		zap.Int("ranged_lines", len(sb.Ranged)),
		zap.Int("skills", len(sb.Skills)),
		zap.Int("spells", len(sb.Spells)),
		zap.Int("traits", len(sb.Traits)),
		zap.Int("shield_bonus", sb.ShieldBonus),
	)
	return sb, nil
}

// Failure records a character of a batch that could not be generated.
type Failure struct {
	Index int
	Err   error
}

// BatchResult is the outcome of GenerateBatch.
type BatchResult struct {
	Statblocks []*Statblock
	Failures   []Failure
}

// GenerateBatch produces CharacterCount characters one after another. A
// failed character is recorded and the batch continues.
//
// Postcondition: len(Statblocks) + len(Failures) == CharacterCount.
func (g *Generator) GenerateBatch(tmpl *npc.Template) BatchResult {
	var res BatchResult
	for i := 0; i < g.cfg.CharacterCount; i++ {
		sb, err := g.Generate(tmpl)
		if err != nil {
			g.logger.Error("character generation failed", zap.Int("index", i), zap.Error(err))
			res.Failures = append(res.Failures, Failure{Index: i, Err: err})
			continue
		}
		res.Statblocks = append(res.Statblocks, sb)
	}
	return res
}
