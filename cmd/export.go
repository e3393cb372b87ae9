package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/simplydone/internal/todo"
)

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole task list to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer ws.Close()

			data, err := encodeList(ws.store.Tasks(), format)
			if err != nil {
				return err
			}
			_, err = a.out.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	return cmd
}

func encodeList(l todo.List, format string) ([]byte, error) {
	switch format {
	case "json":
		return todo.Encode(l)
	case "yaml", "yml":
		data, err := yaml.Marshal(l.Clone())
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q, must be json or yaml", format)
	}
}
