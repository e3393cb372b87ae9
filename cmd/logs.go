package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nibzard/simplydone/internal/logging"
)

func newLogsCmd(a *app) *cobra.Command {
	var (
		follow bool
		lines  int
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the latest log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logPath, err := logging.FindLatestLog(a.cfg.LogDir)
			if err != nil {
				return fmt.Errorf("finding latest log: %w", err)
			}
			if logPath == "" {
				fmt.Fprintln(a.out, "No log files found.")
				return nil
			}

			fmt.Fprintf(a.errOut, "Tailing: %s\n", logPath)
			if follow {
				fmt.Fprintln(a.errOut, "(Ctrl+C to stop)")
			}
			return logging.TailLog(cmd.Context(), a.out, logPath, lines, follow)
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow the log (like tail -f)")
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines to show (0 = all)")
	return cmd
}
