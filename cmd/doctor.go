package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nibzard/simplydone/internal/slot"
	"github.com/nibzard/simplydone/internal/todo"
)

func newDoctorCmd(a *app) *cobra.Command {
	var schema bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the config and the stored task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if schema {
				fmt.Fprintln(a.out, todo.SchemaJSON())
				return nil
			}
			return a.runDoctor(cmd, args)
		},
	}
	cmd.Flags().BoolVar(&schema, "schema", false, "print the JSON Schema stored lists must satisfy")
	return cmd
}

func (a *app) runDoctor(cmd *cobra.Command, args []string) error {
	w := a.out
	fmt.Fprintln(w, bold("simplydone doctor"))
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	ok := func(format string, args ...any) {
		fmt.Fprintf(w, "  %s %s\n", green("✓"), fmt.Sprintf(format, args...))
	}
	fail := func(format string, args ...any) {
		fmt.Fprintf(w, "  %s %s\n", red("✗"), fmt.Sprintf(format, args...))
	}

	fmt.Fprintln(w, "Config:")
	if file := a.sources.ConfigFile(); file != "" {
		ok("file: %s", file)
	} else {
		ok("file: none (using defaults)")
	}
	if err := a.cfg.Validate(); err != nil {
		fail("%v", err)
		fmt.Fprintln(w)
		return fmt.Errorf("doctor checks failed")
	}
	ok("backend: %s", a.cfg.Backend)
	ok("storage key: %s", a.cfg.StorageKey)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Storage:")
	ws, err := a.open(cmd.Context(), nil)
	if err != nil {
		fail("%v", err)
		fmt.Fprintln(w)
		return fmt.Errorf("doctor checks failed")
	}
	defer ws.Close()
	ok("location: %s", a.slotLocation())

	allOK := true
	l, err := ws.adapter.Inspect(cmd.Context())
	switch {
	case errors.Is(err, slot.ErrNotFound):
		ok("task list: nothing saved yet")
	case err != nil:
		allOK = false
		fail("task list unreadable, it will load as empty and be replaced on the next change")
		var decErr *todo.DecodeError
		if errors.As(err, &decErr) {
			for _, e := range decErr.Errors {
				fmt.Fprintf(w, "      %s\n", e)
			}
		} else {
			fmt.Fprintf(w, "      %s\n", err)
		}
	default:
		active, completed := l.Counts()
		ok("task list: %d tasks (%d active, %d completed)", len(l), active, completed)
	}
	fmt.Fprintln(w)

	if !allOK {
		return fmt.Errorf("doctor checks failed")
	}
	fmt.Fprintln(w, green("All checks passed!"))
	return nil
}

// slotLocation describes where the configured backend keeps the list.
func (a *app) slotLocation() string {
	switch a.cfg.Backend {
	case slot.BackendFile:
		return slot.NewFile(a.cfg.DataDir).Path(a.cfg.StorageKey)
	case slot.BackendSQLite:
		if a.cfg.DSN != "" {
			return a.cfg.DSN
		}
		return filepath.Join(a.cfg.DataDir, slot.SQLiteFile)
	case slot.BackendPostgres:
		return "postgres (dsn from " + string(a.sources.Sources["dsn"]) + ")"
	default:
		return "memory (not persisted)"
	}
}
