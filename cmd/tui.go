package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nibzard/simplydone/internal/logging"
	"github.com/nibzard/simplydone/internal/todo"
	"github.com/nibzard/simplydone/internal/ui"
)

func newTUICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list (default command)",
		Args:  cobra.NoArgs,
		RunE:  a.runTUI,
	}
	cmd.Flags().String("filter", "all", "Initial filter: all, active, completed")
	return cmd
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("filter")
	filter, err := todo.ParseFilter(name)
	if err != nil {
		return err
	}
	if !ui.IsTTY(a.out) {
		return fmt.Errorf("tui requires a TTY")
	}

	// The TUI owns the terminal, so logs go to a file.
	runLog, err := logging.NewRunLogger(a.cfg.LogDir, a.cfg.LoggingOptions())
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer runLog.Close()

	ctx := cmd.Context()
	ws, err := a.open(ctx, runLog.Logger())
	if err != nil {
		return err
	}
	defer ws.Close()

	ws.logger.Info("tui started", "backend", a.cfg.Backend, "key", ws.adapter.Key(), "tasks", ws.store.Len())
	err = ui.RunTUI(ctx, ws.store, ui.WithFilter(filter), ui.WithLogger(ws.logger))
	ws.logger.Info("tui stopped", "tasks", ws.store.Len(), "err", err)
	return err
}
