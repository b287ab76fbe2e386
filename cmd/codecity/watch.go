package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codecity/internal/highlight"
	"codecity/internal/source"
	"codecity/internal/watch"

	"github.com/spf13/cobra"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Print a layer summary every time the repository changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, args, mode, true)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSummary(out, s.store, 0)

			daemon, err := newDaemon(s.provider, opts.cfg)
			if err != nil {
				return err
			}
			daemon.SetCallback(func(snap source.Snapshot, changes []watch.Change, err error) {
				if err != nil {
					fmt.Fprintf(out, "reload failed: %v\n", err)
					return
				}
				snap.Apply(s.store)
				printSummary(out, s.store, len(changes))
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := daemon.Start(ctx); err != nil {
				return err
			}
			defer daemon.Stop()

			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", s.provider.Root)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "colour mode (defaults to display.default_mode)")

	return cmd
}

// printSummary writes one line per enabled layer with its item count.
func printSummary(w io.Writer, store *highlight.Store, changes int) {
	stamp := time.Now().Format("15:04:05")
	if changes > 0 {
		fmt.Fprintf(w, "[%s] %d change(s), mode %s\n", stamp, changes, store.ActiveMode())
	} else {
		fmt.Fprintf(w, "[%s] mode %s, %d entities\n", stamp, store.ActiveMode(), len(store.Entities()))
	}
	for _, l := range highlight.DrawOrder(store.ActiveLayerSet()) {
		fmt.Fprintf(w, "  %-28s %4d  %s\n", l.ID, len(l.Items), l.Name)
	}
}
