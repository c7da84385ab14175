package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"golang.org/x/sync/errgroup"
)

func newSyncCmd() *cobra.Command {
	var (
		watch bool
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Drain the pending-operations queue",
		Long: "Run one drain pass over the pending queue. With --watch, keep running: " +
			"probe connectivity and drain on every reconnect until interrupted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			if reset {
				if err := app.Store.ClearPending(cmd.Context()); err != nil {
					return err
				}

				statusf("Pending queue cleared\n")

				return nil
			}

			if watch {
				return runWatch(cmd.Context(), app)
			}

			if !app.Monitor.Status().Online {
				return errors.New("server unreachable; queued operations kept for later")
			}

			report, err := app.Processor.Drain(cmd.Context())
			if err != nil {
				return err
			}

			statusf("Synced %d of %d pending operations (%d failed)\n",
				report.Succeeded, report.Processed, report.Failed)

			if report.Dropped > 0 {
				statusf("Dropped %d unrecognized operation(s)\n", report.Dropped)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and sync on reconnect")
	cmd.Flags().BoolVar(&reset, "reset", false, "discard all pending operations without syncing")

	return cmd
}

// runWatch runs the connectivity prober and the queue processor together
// until SIGINT/SIGTERM.
func runWatch(ctx context.Context, app *App) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statusf("Watching for connectivity; press Ctrl-C to stop\n")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return app.Prober.Run(gctx) })
	g.Go(func() error { return app.Processor.Run(gctx) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return fmt.Errorf("watch loop: %w", err)
}
