package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/mookgen/internal/game/dice"
)

func newRollCmd(a *app) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "roll [expression]...",
		Short: "Roll GURPS dice expressions",
		Long: `Roll one or more dice expressions such as 3d, 2d+1 or 1d-2.

  Example: mookgen roll 3d 1d+2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Generator.Seed
			}
			roller := dice.NewLoggedRoller(a.source(seed), a.logger)
			for _, expr := range args {
				res, err := roller.RollExpr(expr)
				if err != nil {
					return fmt.Errorf("rolling %q: %w", expr, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.String())
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible rolls (0 = random)")
	return cmd
}
