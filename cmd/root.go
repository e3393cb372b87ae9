// Package cmd implements the CLI command structure for simplydone.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nibzard/simplydone/internal/config"
	"github.com/nibzard/simplydone/internal/logging"
	"github.com/nibzard/simplydone/internal/persist"
	"github.com/nibzard/simplydone/internal/slot"
	"github.com/nibzard/simplydone/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the simplydone CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(&app{out: stdout, errOut: stderr})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// app carries state shared by all commands of one invocation.
type app struct {
	out     io.Writer
	errOut  io.Writer
	noColor bool
	cfg     *config.Config
	sources *config.ConfigWithSources
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "simplydone",
		Short: "A small task list for the terminal",
		Long: `simplydone keeps a single ordered list of tasks.

Run it without a command to open the interactive list, or use the
subcommands to script it.`,
		Args:              cobra.NoArgs,
		RunE:              a.runTUI,
		PersistentPreRunE: a.loadConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           Version,
	}
	root.SetVersionTemplate("simplydone version {{.Version}}\n")

	config.BindFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	root.Flags().String("filter", "all", "Initial filter: all, active, completed")

	root.AddCommand(
		newTUICmd(a),
		newAddCmd(a),
		newLsCmd(a),
		newToggleCmd(a),
		newEditCmd(a),
		newRmCmd(a),
		newExportCmd(a),
		newDoctorCmd(a),
		newConfigCmd(a),
		newLogsCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	if a.noColor {
		color.NoColor = true
	}
	cws, err := config.LoadWithSources(cmd.Root().PersistentFlags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.sources = cws
	a.cfg = cws.Config
	return nil
}

// workspace is an opened slot with the store seeded from it.
type workspace struct {
	slot    slot.Slot
	adapter *persist.Adapter
	store   *store.Store
	logger  *log.Logger
}

func (w *workspace) Close() error {
	return w.slot.Close()
}

// open validates the config, opens the slot and loads the task list.
func (a *app) open(ctx context.Context, logger *log.Logger) (*workspace, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = a.stderrLogger()
	}

	s, err := slot.Open(ctx, a.cfg.SlotOptions())
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", a.cfg.Backend, err)
	}
	adapter := persist.New(s, a.cfg.StorageKey, logger)
	st := store.New(adapter.Load(ctx),
		store.WithPersister(adapter),
		store.WithLogger(logger),
	)
	return &workspace{slot: s, adapter: adapter, store: st, logger: logger}, nil
}

// stderrLogger returns the logger used by one-shot commands.
func (a *app) stderrLogger() *log.Logger {
	return logging.New(a.errOut, a.cfg.LoggingOptions())
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.out, "simplydone version %s\n", Version)
			return nil
		},
	}
}
