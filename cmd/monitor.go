/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	flash "github.com/allbin/fluidnc-flash"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch the board's serial log",
	Long: `Attach "pio device monitor" to the upload port.

The port is chosen the same way as for flashing: --port or FLUIDNC_PORT when
given, otherwise auto-detected. Press Ctrl+C to stop.

Examples:
  fluidnc-flash monitor
  fluidnc-flash monitor --port /dev/ttyUSB0 --baud 921600`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMonitor(cmd.Context(), loadSettings(v), stdioOf(cmd))
	},
}

// attachMonitor is replaced in tests
var attachMonitor = (*flash.Toolchain).Monitor

// runMonitor resolves the port like the flash command and attaches the monitor.
func runMonitor(ctx context.Context, s settings, stdio flash.Stdio) error {
	report := flash.NewReporter(stdio.Out)
	fail := func(err error) error {
		report.Error(err)
		return err
	}

	log, err := s.logger(stdio)
	if err != nil {
		return fail(err)
	}

	tc, err := s.toolchain(log)
	if err != nil {
		return fail(err)
	}

	port, err := s.resolver(tc, stdio, report, log).ResolvePort(ctx, strings.TrimSpace(s.Port))
	if err != nil {
		return fail(err)
	}

	report.Info("Monitoring %s at %d baud", port, s.Baud)
	if err := attachMonitor(tc, ctx, port, s.Baud, stdio); err != nil {
		return fail(err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().IntP("baud", "b", flash.DefaultMonitorBaud, "Baud rate")
	_ = v.BindPFlag("baud", monitorCmd.Flags().Lookup("baud"))
}
