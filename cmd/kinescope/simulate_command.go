package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"kinescope/internal/config"
	"kinescope/internal/evaluate"
	"kinescope/internal/logging"
	"kinescope/internal/recording"
	"kinescope/internal/render"
	"kinescope/internal/source"
)

func newSimulateCommand(ctx *commandContext) *cobra.Command {
	var (
		duration float64
		scrubs   int
	)

	cmd := &cobra.Command{
		Use:   "simulate <recording.db>",
		Short: "Drive the render coordinator over synthetic frames",
		Long: `Simulates a playback pass followed by a scrub burst against synthetic
frame sources, using the recording's projections for evaluation. Reports
delivered and dropped frames plus cache and buffer pool statistics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRecording(args[0], func(cfg *config.Config, store *recording.Store) error {
				proj, err := store.Projections(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				evaluator, err := buildEvaluator(cfg, proj, evaluate.ModeScreen)
				if err != nil {
					return err
				}

				logger, err := logging.New(logging.Options{
					Level:  cfg.Logging.Level,
					Format: cfg.Logging.Format,
				})
				if err != nil {
					return err
				}

				nativeFPS := proj.Session.NativeFPS
				if nativeFPS <= 0 {
					nativeFPS = 30
				}
				coordinator, err := render.New(render.Options{
					Sequential:       source.NewSynthetic(duration, nativeFPS, 160, 90),
					RandomAccess:     source.NewSynthetic(duration, nativeFPS, 160, 90),
					Evaluator:        evaluator,
					Compositor:       render.PassthroughCompositor{},
					CacheEntries:     cfg.Cache.MaxEntries,
					QuantizationRate: float64(cfg.Playback.CacheQuantizationFPS),
					Logger:           logger,
				})
				if err != nil {
					return err
				}
				defer coordinator.Close()

				interval := cfg.FrameInterval()
				budget := time.Duration(float64(time.Second) * interval)
				delivered := make(chan render.Result, 4)
				deliver := func(r render.Result) { delivered <- r }

				ticks := int(duration / interval)
				for i := 0; i < ticks; i++ {
					coordinator.RequestPlaybackFrame(float64(i)*interval, deliver)
					select {
					case <-delivered:
					case <-time.After(budget):
						// Late frame; the next tick supersedes it.
					}
				}

				rng := rand.New(rand.NewSource(1))
				for i := 0; i < scrubs; i++ {
					coordinator.RequestScrubFrame(rng.Float64()*duration, deliver)
				}
				// Let the coalesced scrub render finish, then drain.
				deadline := time.Now().Add(time.Second)
				for time.Now().Before(deadline) {
					select {
					case <-delivered:
						continue
					case <-time.After(20 * time.Millisecond):
					}
					break
				}

				stats := coordinator.Stats()
				out := cmd.OutOrStdout()
				styled := isTerminal(out)
				fmt.Fprintf(out, "session %s\n", coordinator.SessionID())
				fmt.Fprintln(out, renderTable(
					[]string{"Counter", "Value"},
					[][]string{
						{"playback ticks", fmt.Sprintf("%d", ticks)},
						{"scrub requests", fmt.Sprintf("%d", scrubs)},
						{"delivered", fmt.Sprintf("%d", stats.Delivered)},
						{"dropped ticks", fmt.Sprintf("%d", stats.DroppedTicks)},
						{"pool reused", fmt.Sprintf("%d", stats.PoolReused)},
						{"pool allocated", fmt.Sprintf("%d", stats.PoolAllocated)},
					},
					[]columnAlignment{alignLeft, alignRight},
					styled,
				))
				fmt.Fprintln(out, renderTable(
					[]string{"Cache", "Value"},
					[][]string{
						{"size", fmt.Sprintf("%d / %d", stats.Cache.Size, stats.Cache.MaxSize)},
						{"hits", fmt.Sprintf("%d", stats.Cache.Hits)},
						{"misses", fmt.Sprintf("%d", stats.Cache.Misses)},
						{"evictions", fmt.Sprintf("%d", stats.Cache.Evictions)},
					},
					[]columnAlignment{alignLeft, alignRight},
					styled,
				))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&duration, "duration", 10, "Simulated playback duration in seconds")
	cmd.Flags().IntVar(&scrubs, "scrubs", 20, "Random scrub requests after playback")
	return cmd
}
