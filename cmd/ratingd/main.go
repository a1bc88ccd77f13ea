package main

import (
	"fmt"
	"os"
	"ratingd/internal"
	"ratingd/internal/di"
	"ratingd/internal/services"
	"ratingd/internal/structures"

	"github.com/spf13/cobra"
)

type serviceFactory func(flags *structures.CliFlags, presenter services.Presenter) (services.PromptServiceInterface, func(), error)

type appFactory func(flags *structures.CliFlags) (*internal.App, func(), error)

// cli holds the parsed global flags and the constructors the commands use.
type cli struct {
	flags      structures.CliFlags
	newService serviceFactory
	newApp     appFactory
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ratingd",
		Short: "Decide when to ask users for an app store rating",
		Long: `ratingd keeps a small ledger of app usage and decides when a
"rate this app" prompt should be shown.

It runs as an HTTP daemon (serve) or as one-shot commands that
prompt on the terminal.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&c.flags.ConfigPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&c.flags.DebugMode, "debug", "d", false, "Debug mode: log to the console as well")

	rootCmd.AddCommand(
		newServeCmd(c),
		newUsageCmd(c, "use", "Record an app use and prompt when due", recordUse),
		newUsageCmd(c, "event", "Record a positive interaction and prompt when due", recordEvent),
		newCheckCmd(c),
		newPromptCmd(c),
		newReviewCmd(c),
		newStatusCmd(c),
	)
	return rootCmd
}

func main() {
	c := &cli{
		newService: di.InitPromptService,
		newApp:     di.InitApp,
	}
	if err := newRootCmd(c).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
