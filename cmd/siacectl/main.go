// siacectl is a diagnostic console for go-siace instrument channels.
//
// It sends one command over either the file-based ChemStation channel or
// the serial pump/valve channel and prints the instrument's reply, which is
// handy when bringing up a new bench setup or debugging a macro.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Xixaus/go-siace/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "siacectl",
		Short:         "Diagnostic console for go-siace instrument channels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML channel tuning file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newSendCommand(opts))
	cmd.AddCommand(newSerialCommand(opts))

	return cmd
}
