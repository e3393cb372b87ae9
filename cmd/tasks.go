package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/nibzard/simplydone/internal/todo"
)

// checkText rejects text the TUI could not edit back in full.
func checkText(text string) error {
	if !todo.ValidText(text) {
		return fmt.Errorf("task text is empty")
	}
	if n := utf8.RuneCountInString(text); n > todo.MaxTextLen {
		return fmt.Errorf("task text is too long (%d characters, max %d)", n, todo.MaxTextLen)
	}
	return nil
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the end of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if err := checkText(text); err != nil {
				return err
			}

			ws, err := a.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer ws.Close()

			t, ok := ws.store.Add(cmd.Context(), text)
			if !ok {
				return fmt.Errorf("task not added")
			}
			if err := ws.store.SaveErr(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added %s %s\n", bold(fmt.Sprintf("%d.", ws.store.Len())), t.Text)
			return nil
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	var (
		filterName string
		asJSON     bool
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := todo.ParseFilter(filterName)
			if err != nil {
				return err
			}

			ws, err := a.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer ws.Close()

			all := ws.store.Tasks()
			if asJSON {
				data, err := todo.Encode(all.Filter(filter))
				if err != nil {
					return err
				}
				_, err = a.out.Write(data)
				return err
			}
			printTaskList(a, all, filter, verbose)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filterName, "filter", "f", "all", "Show all, active or completed tasks")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the tasks as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show task ids")
	return cmd
}

// printTaskList prints the tasks kept by filter, numbered by their position
// in the full list so the numbers work as references.
func printTaskList(a *app, all todo.List, filter todo.Filter, verbose bool) {
	shown := 0
	for i, t := range all {
		if !filter.Keep(t) {
			continue
		}
		shown++

		num := fmt.Sprintf("%3d.", i+1)
		box, text := "[ ]", t.Text
		if t.Completed {
			box, text = green("[x]"), dim(t.Text)
		}
		line := fmt.Sprintf("%s %s %s", bold(num), box, text)
		if verbose {
			line += " " + cyan(t.ID)
		}
		fmt.Fprintln(a.out, line)
	}

	if len(all) == 0 {
		fmt.Fprintln(a.out, "No tasks yet!")
		return
	}
	if shown == 0 {
		fmt.Fprintf(a.out, "No %s tasks.\n", strings.ToLower(filter.Label()))
	}
	active, completed := all.Counts()
	fmt.Fprintln(a.out, dim(fmt.Sprintf("%d active, %d completed", active, completed)))
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <ref>",
		Short: "Mark a task done, or not done again",
		Long:  "Mark a task done, or not done again. <ref> is the number shown by ls or a task id.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTask(cmd, args, func(ws *workspace, t todo.Task) error {
				ws.store.Toggle(cmd.Context(), t.ID)
				if err := ws.store.SaveErr(); err != nil {
					return err
				}
				state := "active"
				if !t.Completed {
					state = green("completed")
				}
				fmt.Fprintf(a.out, "%s is now %s\n", t.Text, state)
				return nil
			})
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace the text of a task",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				if len(args) == 0 {
					return ErrTaskRefRequired
				}
				return fmt.Errorf("task text is empty")
			}
			text := strings.Join(args[1:], " ")
			if err := checkText(text); err != nil {
				return err
			}
			return a.withTask(cmd, args[:1], func(ws *workspace, t todo.Task) error {
				if !ws.store.Edit(cmd.Context(), t.ID, text) {
					fmt.Fprintln(a.out, "No change.")
					return nil
				}
				if err := ws.store.SaveErr(); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Updated: %s\n", text)
				return nil
			})
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTask(cmd, args, func(ws *workspace, t todo.Task) error {
				ws.store.Delete(cmd.Context(), t.ID)
				if err := ws.store.SaveErr(); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Deleted: %s\n", t.Text)
				return nil
			})
		},
	}
}

// withTask opens the workspace, resolves args[0] and calls fn.
func (a *app) withTask(cmd *cobra.Command, args []string, fn func(*workspace, todo.Task) error) error {
	if len(args) == 0 {
		return ErrTaskRefRequired
	}
	ws, err := a.open(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	t, err := resolveTaskRef(ws.store.Tasks(), args[0])
	if err != nil {
		return err
	}
	return fn(ws, t)
}
