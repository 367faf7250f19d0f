package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kinescope/internal/config"
	"kinescope/internal/evaluate"
	"kinescope/internal/recording"
	"kinescope/internal/timeline"
)

// buildEvaluator assembles an evaluator from a recording's projections and
// the configured render settings. The CLI has no authored camera track, so
// the camera stays at identity.
func buildEvaluator(cfg *config.Config, proj *recording.Projection, mode evaluate.RenderMode) (*evaluate.Evaluator, error) {
	tl, err := timeline.New(nil, nil, proj.Keystrokes)
	if err != nil {
		return nil, fmt.Errorf("build timeline: %w", err)
	}
	opts := evaluate.DefaultOptions()
	opts.Mode = mode
	opts.Tension = cfg.Smoothing.CatmullRomTension
	opts.PressScale = cfg.Cursor.PressScale
	opts.PressDuration = float64(cfg.Cursor.PressDurationMs) / 1000
	return evaluate.New(tl, proj.Mouse, proj.Clicks, nil, opts), nil
}

func parseMode(mode string) (evaluate.RenderMode, error) {
	switch mode {
	case "", "screen":
		return evaluate.ModeScreen, nil
	case "window":
		return evaluate.ModeWindow, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q (screen or window)", mode)
	}
}

func newEvaluateCommand(ctx *commandContext) *cobra.Command {
	var (
		at     float64
		mode   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <recording.db>",
		Short: "Evaluate the full frame state at a timestamp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderMode, err := parseMode(mode)
			if err != nil {
				return err
			}
			return ctx.withRecording(args[0], func(cfg *config.Config, store *recording.Store) error {
				proj, err := store.Projections(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				evaluator, err := buildEvaluator(cfg, proj, renderMode)
				if err != nil {
					return err
				}
				state := evaluator.Evaluate(at)

				if asJSON {
					return writeJSON(cmd, state)
				}

				out := cmd.OutOrStdout()
				rows := [][]string{
					{"time", fmt.Sprintf("%.3fs", state.Time)},
					{"zoom", fmt.Sprintf("%.4f", state.Transform.Zoom)},
					{"center", fmt.Sprintf("(%.4f, %.4f)", state.Transform.CenterX, state.Transform.CenterY)},
					{"zoom velocity", fmt.Sprintf("%.4f/s", state.Transform.ZoomVelocity)},
					{"cursor", fmt.Sprintf("(%.4f, %.4f)", state.Cursor.X, state.Cursor.Y)},
					{"cursor velocity", fmt.Sprintf("%.4f", state.Cursor.Velocity)},
					{"press scale", fmt.Sprintf("%.3f", state.Cursor.PressScale)},
					{"clicking", fmt.Sprintf("%t", state.Cursor.IsClicking)},
				}
				for _, ks := range state.Keystrokes {
					rows = append(rows, []string{"keystroke", fmt.Sprintf("%s (opacity %.2f)", ks.Label, ks.Opacity)})
				}
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

	cmd.Flags().Float64Var(&at, "at", 0, "Timestamp in seconds")
	cmd.Flags().StringVar(&mode, "mode", "screen", "Render mode: screen or window")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
