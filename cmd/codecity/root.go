package main

import (
	"os"

	"codecity/internal/config"
	"codecity/internal/errors"
	"codecity/internal/highlight"
	"codecity/internal/log"
	"codecity/internal/source"
	"codecity/internal/tui/styles"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags and the configuration they load.
type rootOptions struct {
	cfgFile string
	debug   bool
	logFile string
	logJSON bool

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "codecity",
		Short: "Highlight layers for a code city view of a repository",
		Long: `codecity colours the files of a repository by type, git status,
coverage or lint results, and draws agent highlight layers on top.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.configureLogging(cmd)
			return opts.loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/codecity/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "also write logs to this file (rotated)")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "log as JSON lines")

	// Add subcommands
	rootCmd.AddCommand(newModesCmd(opts))
	rootCmd.AddCommand(newLayersCmd(opts))
	rootCmd.AddCommand(newViewCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (o *rootOptions) logOptions() []log.Option {
	var lo []log.Option
	if o.logJSON {
		lo = append(lo, log.WithJSON())
	}
	if o.logFile != "" {
		lo = append(lo, log.WithFile(o.logFile))
	}
	return lo
}

// configureLogging sends logs to stderr so command output stays parseable.
func (o *rootOptions) configureLogging(cmd *cobra.Command) {
	log.SetDebug(o.debug)
	log.Configure(append([]log.Option{log.WithOutput(cmd.ErrOrStderr())}, o.logOptions()...)...)
}

func (o *rootOptions) loadConfig() error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		if errors.IsInvalidConfig(err) {
			return err
		}
		log.LogWithError(err).Warn("Could not load config, using default settings")
		o.cfg = config.New()
	}
	styles.SetTheme(o.cfg.Theme.Name)
	return nil
}

// targetDir returns the repository argument or the working directory.
func targetDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "error getting current directory")
	}
	return wd, nil
}

// resolveMode parses the --mode flag, falling back to the configured mode.
func (o *rootOptions) resolveMode(flag string) (highlight.ModeID, error) {
	if flag == "" {
		return o.cfg.Mode(), nil
	}
	id, ok := highlight.ParseMode(flag)
	if !ok {
		return "", errors.NewConfigError("unknown mode", "--mode", errors.InvalidConfig, errors.Newf("%q", flag))
	}
	return id, nil
}

// session is a loaded repository ready for rendering.
type session struct {
	provider  *source.Provider
	store     *highlight.Store
	requested highlight.ModeID
}

func (o *rootOptions) open(cmd *cobra.Command, args []string, modeFlag string, load bool) (*session, error) {
	dir, err := targetDir(args)
	if err != nil {
		return nil, err
	}
	mode, err := o.resolveMode(modeFlag)
	if err != nil {
		return nil, err
	}
	provider, err := source.NewProvider(dir, o.cfg)
	if err != nil {
		return nil, err
	}
	s := &session{
		provider:  provider,
		store:     highlight.NewStore(mode, o.cfg.FileTypeOptions()),
		requested: mode,
	}
	if load {
		snap, err := provider.Load(cmd.Context())
		if err != nil {
			return nil, err
		}
		snap.Apply(s.store)
	}
	return s, nil
}
