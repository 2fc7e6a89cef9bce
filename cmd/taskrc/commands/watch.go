package commands

import (
	"fmt"

	"github.com/lixenwraith/taskrc"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newWatchCommand(opts *options) *cobra.Command {
	watchOpts := taskrc.DefaultWatchOptions()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint user-defined attributes whenever the taskrc changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := opts.builder(nil)
			updates, err := b.Watch(cmd.Context(), watchOpts)
			if err != nil {
				return err
			}

			for rc := range updates {
				log.Debug().Str("path", rc.Path()).Msg("Snapshot received")
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", rc); err != nil {
					return err
				}
				if err := writeFields(cmd.OutOrStdout(), rc.TypedFields()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&watchOpts.Debounce, "debounce", taskrc.DefaultDebounce, "delay before reloading after a change")

	return cmd
}
