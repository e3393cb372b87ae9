package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nibzard/simplydone/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var example bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if example {
				fmt.Fprint(a.out, config.ExampleConfig())
				return nil
			}

			for _, file := range a.sources.Files {
				fmt.Fprintf(a.out, "%s %s\n", dim("# read"), file)
			}
			cfg := a.cfg
			rows := []struct {
				key   string
				value any
			}{
				{"data_dir", cfg.DataDir},
				{"storage_key", cfg.StorageKey},
				{"backend", cfg.Backend},
				{"dsn", redact(cfg.DSN)},
				{"log_dir", cfg.LogDir},
				{"log_level", cfg.LogLevel},
				{"log_format", cfg.LogFormat},
				{"log_timestamps", cfg.LogTimestamps},
				{"log_caller", cfg.LogCaller},
			}
			for _, r := range rows {
				fmt.Fprintf(a.out, "%-15s = %-30v %s\n", r.key, quoteString(r.value), dim("("+string(a.sources.Sources[r.key])+")"))
			}
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(a.out, "\n%s %v\n", red("invalid:"), err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&example, "example", false, "Print an example config file")
	return cmd
}

func quoteString(v any) any {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return v
}

func redact(dsn string) string {
	if dsn == "" {
		return ""
	}
	return "<set>"
}
