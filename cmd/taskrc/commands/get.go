package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCommand(opts *options) *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "get <key> [rc.<key>=<value>...]",
		Short: "Print a single setting",
		Example: `  taskrc get data.location
  taskrc get verbose rc.verbose=off --source`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := opts.load(args[1:])
			if err != nil {
				return err
			}

			value, source, ok := rc.SettingSource(args[0])
			if !ok {
				return fmt.Errorf("setting not found: %s", args[0])
			}
			if showSource {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", value, source)
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}

	cmd.Flags().BoolVar(&showSource, "source", false, "also print where the value came from")

	return cmd
}
