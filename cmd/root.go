/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	flash "github.com/allbin/fluidnc-flash"
)

var cfgFile string

// exit is replaced in tests
var exit = os.Exit

// v holds flags, FLUIDNC_* environment variables and the optional config file
var v = newViper()

// rootCmd runs the full build, erase and upload sequence
var rootCmd = &cobra.Command{
	Use:   "fluidnc-flash",
	Short: "Build, erase and flash FluidNC with PlatformIO",
	Long: `Build FluidNC and flash it to an ESP32 using PlatformIO.

The following pio steps run in order, stopping at the first failure:
  1. pio run -e <env>
  2. pio run -e <env> -t erase --upload-port <port>     (skip with --no-erase)
  3. pio run -e <env> -t upload --upload-port <port>
  4. pio run -e <env> -t uploadfs --upload-port <port>  (skip with --no-fs, or when the data directory is missing)

When --port is omitted the upload port is auto-detected. USB-serial bridges
(CP210x, CH340, FTDI, ...) are preferred; with several candidates you are
prompted to pick one.

Every flag can also be set through a FLUIDNC_* environment variable
(FLUIDNC_ENV, FLUIDNC_PORT, FLUIDNC_NO_ERASE, ...) or a .fluidnc-flash.yaml
file in the working directory.

Example usage:
  fluidnc-flash
  fluidnc-flash --env wifi_s3 --port COM7
  fluidnc-flash --no-erase --no-fs`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return readConfig(v, cfgFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlash(cmd.Context(), loadSettings(v), stdioOf(cmd))
	},
}

// Execute adds all child commands to the root command and runs it.
// Any error exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ./.fluidnc-flash.yaml)")
	pf.StringP("port", "p", "", "Serial upload port (e.g. COM7). If omitted, auto-detect; if multiple, prompt")
	pf.String("pio", "", "Path to the pio executable (default: PATH, then ~/.platformio/penv)")
	pf.String("log-level", "warn", "Diagnostic log level: debug, info, warn, error")
	pf.Bool("log-json", false, "Write diagnostic logs as JSON")

	f := rootCmd.Flags()
	f.StringP("env", "e", flash.DefaultEnvironment, "PlatformIO environment (e.g. wifi_s3 for ESP32-S3)")
	f.Bool("no-erase", false, "Skip erase step")
	f.Bool("no-fs", false, "Skip filesystem upload even if the data directory exists")
	f.String("data-dir", flash.DefaultDataDir, "Directory holding the filesystem image contents")

	for _, key := range []string{"port", "pio", "log-level", "log-json"} {
		_ = v.BindPFlag(key, pf.Lookup(key))
	}
	for _, key := range []string{"env", "no-erase", "no-fs", "data-dir"} {
		_ = v.BindPFlag(key, f.Lookup(key))
	}
}
