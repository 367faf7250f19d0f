package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kinescope/internal/config"
	"kinescope/internal/recording"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <recording.db>",
		Short: "Show a recording's session metadata and event counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRecording(args[0], func(_ *config.Config, store *recording.Store) error {
				session, err := store.Session(cmd.Context())
				if err != nil {
					return err
				}
				counts, err := store.Counts(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, struct {
						Session *recording.Session    `json:"session"`
						Counts  recording.EventCounts `json:"counts"`
					}{session, counts})
				}

				out := cmd.OutOrStdout()
				rows := [][]string{}
				if session != nil {
					rows = append(rows,
						[]string{"title", session.Title},
						[]string{"capture size", fmt.Sprintf("%dx%d", session.Width, session.Height)},
						[]string{"native fps", fmt.Sprintf("%.2f", session.NativeFPS)},
						[]string{"duration", fmt.Sprintf("%.2fs", session.Duration)},
						[]string{"created", session.CreatedAt},
					)
				} else {
					rows = append(rows, []string{"session", "(not set)"})
				}
				rows = append(rows,
					[]string{"mouse samples", fmt.Sprintf("%d", counts.MouseSamples)},
					[]string{"clicks", fmt.Sprintf("%d", counts.Clicks)},
					[]string{"keys", fmt.Sprintf("%d", counts.Keys)},
				)
				fmt.Fprintln(out, renderTable(
					[]string{"Field", "Value"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
					isTerminal(out),
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
