package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Xixaus/go-siace/serlink"
)

func newSerialCommand(root *rootOptions) *cobra.Command {
	var (
		portName        string
		wantResponse    bool
		responseTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serial <command>",
		Short: "Send one command over the serial channel",
		Long: `Send one raw command to a serial instrument and optionally print its
reply. Prefix, address, and timing come from the tuning file.

Example:
  siacectl serial --port COM4 ZR
  siacectl serial --port /dev/ttyUSB0 --response '?'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTuning(root.configPath)
			if err != nil {
				return err
			}

			opts, err := t.serlinkOptions()
			if err != nil {
				return err
			}

			cfg, err := serlink.NewConfig(portName, opts...)
			if err != nil {
				return err
			}

			ch, err := serlink.NewChannel(cfg)
			if err != nil {
				return err
			}

			var sendOpts []serlink.SendOption
			if wantResponse {
				sendOpts = append(sendOpts, serlink.WithResponseTimeout(responseTimeout))
			}

			resp, err := ch.SendCommand(args[0], sendOpts...)
			if err != nil {
				return err
			}

			if wantResponse {
				if resp == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "(no response)")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), resp)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&portName, "port", "", "serial port name (required)")
	cmd.Flags().BoolVar(&wantResponse, "response", false, "wait for and print the instrument's reply")
	cmd.Flags().DurationVar(&responseTimeout, "response-timeout", serlink.DefaultResponseTimeout, "how long to wait for a reply")
	_ = cmd.MarkFlagRequired("port")

	return cmd
}
