package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kinescope/internal/config"
	"kinescope/internal/recording"
)

func newPathCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "path <recording.db>",
		Short: "Dump the smoothed cursor path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRecording(args[0], func(cfg *config.Config, store *recording.Store) error {
				proj, err := store.Projections(cmd.Context(), cfg)
				if err != nil {
					return err
				}

				samples := proj.Mouse
				if limit > 0 && len(samples) > limit {
					samples = samples[:limit]
				}

				rows := make([][]string, 0, len(samples))
				for _, sample := range samples {
					rows = append(rows, []string{
						fmt.Sprintf("%.3f", sample.Time),
						fmt.Sprintf("%.4f", sample.X),
						fmt.Sprintf("%.4f", sample.Y),
						fmt.Sprintf("%.4f", sample.Velocity),
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Time", "X", "Y", "Velocity"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
					isTerminal(out),
				))
				if limit > 0 && len(proj.Mouse) > limit {
					fmt.Fprintf(out, "(%d of %d samples shown)\n", limit, len(proj.Mouse))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum samples to print (0 for all)")
	return cmd
}
