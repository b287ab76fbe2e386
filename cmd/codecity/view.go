package main

import (
	"io"
	"os/signal"
	"syscall"
	"time"

	"codecity/internal/config"
	"codecity/internal/log"
	"codecity/internal/source"
	"codecity/internal/tui"
	"codecity/internal/tui/messages"
	"codecity/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newViewCmd(opts *rootOptions) *cobra.Command {
	var (
		mode    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "view [directory]",
		Short: "Browse the repository with its highlight layers in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, args, mode, false)
			if err != nil {
				return err
			}

			// The terminal belongs to the UI; logs only go to the log file.
			log.Configure(append([]log.Option{log.WithOutput(io.Discard)}, opts.logOptions()...)...)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			model := tui.New(ctx, s.store, s.provider)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

			if !noWatch {
				daemon, err := newDaemon(s.provider, opts.cfg)
				if err != nil {
					return err
				}
				daemon.SetCallback(func(snap source.Snapshot, changes []watch.Change, err error) {
					program.Send(messages.SnapshotMsg{Snapshot: snap, Err: err, Changes: len(changes)})
				})
				if err := daemon.Start(ctx); err != nil {
					log.LogWithError(err).Warn("Live reload disabled")
					go program.Send(messages.ErrorMsg{Err: err})
				} else {
					defer daemon.Stop()
				}
			}

			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "colour mode (defaults to display.default_mode)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable live reload on file changes")

	return cmd
}

// newDaemon creates a reloader for the provider's repository.
func newDaemon(p *source.Provider, cfg *config.Config) (*watch.Daemon, error) {
	ignore, err := config.CompileIgnore(cfg.Scan.Ignore)
	if err != nil {
		return nil, err
	}
	return watch.NewDaemon(p.Root, ignore, p, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond), nil
}
