package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mookgen/internal/game/generator"
)

type generateOptions struct {
	template string
	count    int
	seed     uint64
	asJSON   bool
	save     bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate statblocks from a template",
		Long: `Generate one or more characters from a mook template.

  Example: mookgen generate --template orc_warrior --count 3 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = a.cfg.Generator.Seed
			}
			return a.generate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template id")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of characters (overrides character_count)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for reproducible output (0 = random)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print statblocks as JSON")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store the statblocks in the history database")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func (a *app) generate(cmd *cobra.Command, opts *generateOptions) error {
	lib, err := a.library()
	if err != nil {
		return err
	}
	tmpl, err := lib.Get(opts.template)
	if err != nil {
		return err
	}

	genCfg, err := a.generationConfig()
	if err != nil {
		return err
	}
	if opts.count < 0 {
		return fmt.Errorf("--count must be >= 0, got %d", opts.count)
	}
	if opts.count > 0 {
		genCfg.CharacterCount = opts.count
	}

	g, err := generator.New(genCfg, a.cfg.Rules, a.source(opts.seed), a.logger)
	if err != nil {
		return err
	}
	res := g.GenerateBatch(tmpl)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Statblocks); err != nil {
			return fmt.Errorf("encoding statblocks: %w", err)
		}
	} else {
		for i, sb := range res.Statblocks {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, sb.Render())
		}
	}

	if opts.save && len(res.Statblocks) > 0 {
		repo, closeFn, err := a.repository(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		for _, sb := range res.Statblocks {
			if err := repo.Save(cmd.Context(), sb); err != nil {
				return fmt.Errorf("saving statblock %s: %w", sb.ID, err)
			}
		}
		a.logger.Info("statblocks saved", zap.Int("count", len(res.Statblocks)))
	}

	if len(res.Failures) > 0 {
		return fmt.Errorf("%d of %d characters failed: %w", len(res.Failures), genCfg.CharacterCount, res.Failures[0].Err)
	}
	return nil
}
