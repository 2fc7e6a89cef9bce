package commands

import (
	"context"
	"errors"

	"github.com/lixenwraith/taskrc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by all subcommands.
type options struct {
	taskrcPath string
	verbose    bool
}

// Execute runs the root command
func Execute(ctx context.Context, version string) error {
	return newRootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "taskrc",
		Short: "Inspect Taskwarrior configuration files",
		Long: `taskrc parses a Taskwarrior .taskrc file and prints its settings and
user-defined attributes.

Without --taskrc the file is located through $TASKRC, ~/.taskrc and
$XDG_CONFIG_HOME/task/taskrc. Arguments of the form rc.<key>=<value> are
applied as overrides without changing the parsed file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.taskrcPath, "taskrc", "f", "", "taskrc file path")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newShowCommand(opts))
	rootCmd.AddCommand(newGetCommand(opts))
	rootCmd.AddCommand(newUDAsCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))

	return rootCmd
}

// builder prepares a taskrc builder from the flags and rc.* arguments.
func (o *options) builder(args []string) *taskrc.Builder {
	b := taskrc.NewBuilder().
		WithLogger(log.Logger).
		WithArgs(args)
	if o.taskrcPath != "" {
		return b.WithFile(o.taskrcPath)
	}
	return b.WithFileDiscovery(taskrc.DefaultDiscoveryOptions())
}

// load builds the taskrc; a missing file is reported but not fatal.
func (o *options) load(args []string) (*taskrc.TaskRc, error) {
	rc, err := o.builder(args).Build()
	if errors.Is(err, taskrc.ErrConfigNotFound) {
		log.Warn().Str("path", rc.Path()).Msg("Taskrc file not found, using empty configuration")
		return rc, nil
	}
	return rc, err
}
