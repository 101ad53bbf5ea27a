package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		template string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved statblocks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeFn, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			rows, err := repo.List(cmd.Context(), template, limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTEMPLATE\tNAME\tCREATED")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.TemplateID, r.Name, r.CreatedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", "only list statblocks of this template")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows")
	cmd.AddCommand(newHistoryShowCmd(a))
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show [statblock-id]",
		Short: "Print a saved statblock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid statblock id %q: %w", args[0], err)
			}
			repo, closeFn, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			sb, err := repo.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sb)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), sb.Render())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
