package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/lixenwraith/taskrc"
	"github.com/spf13/cobra"
)

func newUDAsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "udas",
		Short: "List user-defined attributes and their types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := opts.load(nil)
			if err != nil {
				return err
			}
			return writeFields(cmd.OutOrStdout(), rc.TypedFields())
		},
	}
}

// writeFields prints one line per field: name, kind, label and choices.
func writeFields(w io.Writer, fields map[string]taskrc.FieldDescriptor) error {
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		f := fields[name]
		line := fmt.Sprintf("%s\t%s", name, f.Kind())
		if label, ok := f.Label(); ok {
			line += "\t" + label
		}
		if f.Kind() == taskrc.KindChoice {
			line += "\t[" + strings.Join(f.Choices(), ",") + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
