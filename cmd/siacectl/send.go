package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Xixaus/go-siace/chemlink"
)

func newSendCommand(root *rootOptions) *cobra.Command {
	var (
		dir      string
		timeout  time.Duration
		selfTest bool
	)

	cmd := &cobra.Command{
		Use:   "send <command>",
		Short: "Send one command over the file channel and print the response",
		Long: `Send one command to the control application through the shared
command/response file pair and print the correlated response.

Example:
  siacectl send --dir "C:\Chem32\comm" 'response$ = ACQSTATUS$'
  siacectl send --dir ./comm --timeout 10s --self-test 'LoadMethod "test.M"'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTuning(root.configPath)
			if err != nil {
				return err
			}

			opts, err := t.chemlinkOptions()
			if err != nil {
				return err
			}
			if selfTest {
				opts = append(opts, chemlink.WithConnectionTest(true))
			}

			cfg, err := chemlink.NewConfig(dir, opts...)
			if err != nil {
				return err
			}

			engine, err := chemlink.NewEngine(cfg)
			if err != nil {
				return err
			}

			value, hasValue, err := engine.Send(args[0], timeout)
			if err != nil {
				return err
			}

			if !hasValue {
				fmt.Fprintln(cmd.OutOrStdout(), "(no value)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "communication directory shared with the control application (required)")
	cmd.Flags().DurationVar(&timeout, "timeout", chemlink.DefaultTimeout, "response timeout")
	cmd.Flags().BoolVar(&selfTest, "self-test", false, "run the connection echo test before sending")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}
