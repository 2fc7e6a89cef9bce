package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newShowCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [rc.<key>=<value>...]",
		Short: "Print the parsed configuration tree",
		Example: `  # Flat key=value listing
  taskrc show

  # Nested view as YAML
  taskrc show --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := opts.load(args)
			if err != nil {
				return err
			}
			return writeTree(cmd.OutOrStdout(), rc.Tree().ToMap(), rc.Tree().Flatten(), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "flat", "output format: flat, json or yaml")

	return cmd
}

func writeTree(w io.Writer, nested map[string]any, flat map[string]string, format string) error {
	switch format {
	case "flat":
		keys := make([]string, 0, len(flat))
		for k := range flat {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "%s=%s\n", k, flat[k]); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nested)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nested); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
